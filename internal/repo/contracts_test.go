package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bucketStore struct {
	ObjectStore

	exists    bool
	existsErr error
	createErr error
	created   int
}

func (s *bucketStore) BucketExists(context.Context) (bool, error) { return s.exists, s.existsErr }

func (s *bucketStore) CreateBucket(context.Context) error {
	s.created++
	return s.createErr
}

func TestEnsureBucket(t *testing.T) {
	t.Run("existing bucket is left alone", func(t *testing.T) {
		s := &bucketStore{exists: true}

		created, err := EnsureBucket(context.Background(), s)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Zero(t, s.created)
	})

	t.Run("missing bucket is created once", func(t *testing.T) {
		s := &bucketStore{}

		created, err := EnsureBucket(context.Background(), s)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 1, s.created)
	})

	t.Run("errors propagate", func(t *testing.T) {
		boom := errors.New("boom")

		_, err := EnsureBucket(context.Background(), &bucketStore{existsErr: boom})
		assert.ErrorIs(t, err, boom)

		_, err = EnsureBucket(context.Background(), &bucketStore{createErr: boom})
		assert.ErrorIs(t, err, boom)
	})
}
