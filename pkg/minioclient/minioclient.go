package minioclient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
	_defaultRegion       = "us-east-1"
)

type MinioClient struct {
	connAttempts int
	connTimeout  time.Duration

	endpoint  string
	region    string
	accessKey string
	secretKey string
	secure    bool

	Client *minio.Client
}

// New connects to a MinIO server. endpoint is "host:port" without a scheme.
func New(ctx context.Context, endpoint, accessKey, secretKey string, opts ...Option) (*MinioClient, error) {
	mc := &MinioClient{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		region:       _defaultRegion,
		endpoint:     endpoint,
		accessKey:    accessKey,
		secretKey:    secretKey,
	}

	for _, opt := range opts {
		opt(mc)
	}

	client, err := minio.New(mc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.accessKey, mc.secretKey, ""),
		Secure: mc.secure,
		Region: mc.region,
	})
	if err != nil {
		return nil, fmt.Errorf("MinioClient - New - minio.New: %w", err)
	}
	mc.Client = client

	for mc.connAttempts > 0 {
		_, err = mc.Client.ListBuckets(ctx)
		if err == nil {
			break
		}

		log.Printf("MinIO is trying to connect, attempts left: %d", mc.connAttempts)

		time.Sleep(mc.connTimeout)

		mc.connAttempts--
	}

	if err != nil {
		return nil, fmt.Errorf("MinioClient - New - connAttempts == 0: %w", err)
	}

	return mc, nil
}
