package vectorstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

//nolint:gochecknoglobals // bucket names
var (
	bucketRepositories = []byte("repositories")
	bucketPoints       = []byte("points")
	keyDocument        = []byte("document")
)

// storedPoint is the value stored for one token in the points bucket.
type storedPoint struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	Vector []byte `json:"vector"`
}

// BboltVectorStoreRepository keeps snapshots in a single bbolt file. Each
// repository owns a nested bucket holding its compressed document and a
// points bucket keyed by token position.
type BboltVectorStoreRepository struct {
	db *bolt.DB
}

// NewBboltVectorStoreRepository opens (or creates) the database file.
func NewBboltVectorStoreRepository(settings entities.StoreSettings) (repositories.VectorStoreRepository, error) {
	if dir := filepath.Dir(settings.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := bolt.Open(settings.Path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt store %q: %w", settings.Path, err)
	}
	if err = db.Update(func(tx *bolt.Tx) error {
		_, bucketErr := tx.CreateBucketIfNotExists(bucketRepositories)
		return bucketErr
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialise bbolt store: %w", err)
	}
	return &BboltVectorStoreRepository{db: db}, nil
}

func (r *BboltVectorStoreRepository) Name() string { return "bbolt" }

func (r *BboltVectorStoreRepository) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	name := snapshot.Repository.Name
	document, err := encodeDocument(snapshot.Repository)
	if err != nil {
		return err
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketRepositories)
		if root.Bucket([]byte(name)) != nil {
			if deleteErr := root.DeleteBucket([]byte(name)); deleteErr != nil {
				return deleteErr
			}
		}
		repoBucket, createErr := root.CreateBucket([]byte(name))
		if createErr != nil {
			return createErr
		}
		if putErr := repoBucket.Put(keyDocument, document); putErr != nil {
			return putErr
		}

		points, createErr := repoBucket.CreateBucket(bucketPoints)
		if createErr != nil {
			return createErr
		}
		for i, token := range snapshot.Tokens {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			value, marshalErr := json.Marshal(storedPoint{
				ID:     pointID(name, i, token),
				Token:  token,
				Vector: encodeVector(snapshot.Vectors[i]),
			})
			if marshalErr != nil {
				return marshalErr
			}
			if putErr := points.Put(indexKey(i), value); putErr != nil {
				return putErr
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot of %q: %w", name, err)
	}

	logger.Debugf("Stored %d points for %s in bbolt", len(snapshot.Tokens), name)
	return nil
}

func (r *BboltVectorStoreRepository) Load(_ context.Context, repository string) (*entities.Snapshot, error) {
	var (
		repo    *entities.RepositoryInfo
		tokens  []string
		vectors [][]float32
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		repoBucket := tx.Bucket(bucketRepositories).Bucket([]byte(repository))
		if repoBucket == nil {
			return entities.ErrSnapshotNotFound
		}

		var decodeErr error
		if repo, decodeErr = decodeDocument(repoBucket.Get(keyDocument)); decodeErr != nil {
			return decodeErr
		}

		points := repoBucket.Bucket(bucketPoints)
		if points == nil {
			return nil
		}
		return points.ForEach(func(_, value []byte) error {
			var point storedPoint
			if unmarshalErr := json.Unmarshal(value, &point); unmarshalErr != nil {
				return unmarshalErr
			}
			vector, vectorErr := decodeVector(point.Vector)
			if vectorErr != nil {
				return vectorErr
			}
			tokens = append(tokens, point.Token)
			vectors = append(vectors, vector)
			return nil
		})
	})
	if errors.Is(err, entities.ErrSnapshotNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot of %q: %w", repository, err)
	}
	return entities.NewSnapshot(repo, tokens, vectors)
}

func (r *BboltVectorStoreRepository) Close() error {
	return r.db.Close()
}

// indexKey encodes a token position so bbolt's byte ordering matches index
// order.
func indexKey(i int) []byte {
	key := make([]byte, 8) //nolint:mnd // uint64 width
	binary.BigEndian.PutUint64(key, uint64(i)) //nolint:gosec // index is never negative
	return key
}
