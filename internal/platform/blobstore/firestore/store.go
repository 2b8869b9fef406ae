package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
)

var _ blobstore.Backend = (*Store)(nil)

// DefaultCollection holds one document per snapshot key.
const DefaultCollection = "storefront_snapshots"

// Store keeps snapshot payloads in a Firestore collection.
type Store struct {
	client     *firestore.Client
	collection string
	now        func() time.Time
}

// NewStore wraps an existing Firestore client. Caller owns client lifecycle.
func NewStore(client *firestore.Client, collection string) *Store {
	if strings.TrimSpace(collection) == "" {
		collection = DefaultCollection
	}
	return &Store{client: client, collection: collection, now: time.Now}
}

type snapshotDoc struct {
	Key       string    `firestore:"key"`
	Payload   []byte    `firestore:"payload"`
	Revision  int64     `firestore:"revision"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	snap, err := s.client.Collection(s.collection).Doc(DocumentID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	var doc snapshotDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.Payload, nil
}

// Put writes the payload in a transaction that leaves a document with a
// higher revision untouched.
func (s *Store) Put(ctx context.Context, key string, revision int64, payload []byte) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	if err := blobstore.ValidateKey(key); err != nil {
		return err
	}
	ref := s.client.Collection(s.collection).Doc(DocumentID(key))
	doc := snapshotDoc{Key: key, Payload: payload, Revision: revision, UpdatedAt: s.now().UTC()}
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			var current snapshotDoc
			if err := snap.DataTo(&current); err != nil {
				return err
			}
			if current.Revision > revision {
				return nil
			}
		}
		return tx.Set(ref, doc)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	_, err := s.client.Collection(s.collection).Doc(DocumentID(key)).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

// DocumentID maps a snapshot key to a Firestore document id; slashes would
// otherwise be read as subcollection paths.
func DocumentID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}

func (s *Store) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("firestore snapshot store not configured")
	}
	return nil
}
