package mongodb

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
	_defaultPingTimeout  = 10 * time.Second
	_defaultMaxPoolSize  = 100
)

type Mongo struct {
	connAttempts int
	connTimeout  time.Duration
	pingTimeout  time.Duration
	maxPoolSize  uint64

	Client *mongo.Client
	DB     *mongo.Database
}

func New(ctx context.Context, uri, dbName string, opts ...Option) (*Mongo, error) {
	m := &Mongo{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		pingTimeout:  _defaultPingTimeout,
		maxPoolSize:  _defaultMaxPoolSize,
	}

	for _, opt := range opts {
		opt(m)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetMaxPoolSize(m.maxPoolSize))
	if err != nil {
		return nil, fmt.Errorf("mongodb - New - mongo.Connect: %w", err)
	}

	for m.connAttempts > 0 {
		err = m.ping(ctx, client)
		if err == nil {
			break
		}

		log.Printf("MongoDB is trying to connect, attempts left: %d", m.connAttempts)

		time.Sleep(m.connTimeout)

		m.connAttempts--
	}

	if err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("mongodb - New - connAttempts == 0: %w", err)
	}

	m.Client = client
	m.DB = client.Database(dbName)

	return m, nil
}

func (m *Mongo) ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, m.pingTimeout)
	defer cancel()

	return client.Ping(pingCtx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}

	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb - Close - m.Client.Disconnect: %w", err)
	}

	return nil
}
