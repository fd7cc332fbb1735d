package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreyxaxa/Media-Service/internal/entity"
	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/pkg/mongodb"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	// Fields
	fileKeyField      = "file_key"
	thumbnailKeyField = "thumbnail_key"
	webpKeyField      = "webp_key"

	fileKeyIndexName = "file_key_unique"
)

type AssetMongoRepo struct {
	coll *mongo.Collection
}

var _ repo.AssetRepo = (*AssetMongoRepo)(nil)

func NewAssetMongoRepo(m *mongodb.Mongo, collection string) *AssetMongoRepo {
	return &AssetMongoRepo{coll: m.DB.Collection(collection)}
}

func (r *AssetMongoRepo) Insert(ctx context.Context, asset *entity.MediaAsset) error {
	_, err := r.coll.InsertOne(ctx, asset)
	if err != nil {
		return fmt.Errorf("AssetMongoRepo - Insert - r.coll.InsertOne: %w", err)
	}

	return nil
}

func (r *AssetMongoRepo) UpdateDerivedKeys(ctx context.Context, fileKey, thumbnailKey, webpKey string) (int64, error) {
	filter := bson.D{{Key: fileKeyField, Value: fileKey}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: thumbnailKeyField, Value: thumbnailKey},
		{Key: webpKeyField, Value: webpKey},
	}}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("AssetMongoRepo - UpdateDerivedKeys - r.coll.UpdateOne: %w", err)
	}

	return res.MatchedCount, nil
}

func (r *AssetMongoRepo) FindByKey(ctx context.Context, fileKey string) (*entity.MediaAsset, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 0}})

	var asset entity.MediaAsset
	err := r.coll.FindOne(ctx, bson.D{{Key: fileKeyField, Value: fileKey}}, opts).Decode(&asset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("AssetMongoRepo - FindByKey: %w", errs.ErrMetadataNotFound)
		}
		return nil, fmt.Errorf("AssetMongoRepo - FindByKey - r.coll.FindOne: %w", err)
	}

	return &asset, nil
}

// EnsureIndexes creates the unique index on file_key. Safe to call on every start.
func (r *AssetMongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fileKeyField, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(fileKeyIndexName),
	})
	if err != nil {
		return fmt.Errorf("AssetMongoRepo - EnsureIndexes - r.coll.Indexes().CreateOne: %w", err)
	}

	return nil
}
