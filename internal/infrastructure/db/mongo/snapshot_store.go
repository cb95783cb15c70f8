package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/infrastructure/snapshot"
)

const defaultTimeout = 10 * time.Second

// snapshotID is the _id of the single document holding the state.
const snapshotID = "rolodex"

// Config names the deployment and collection that hold the snapshot.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// SnapshotStore keeps the JSON snapshot as the payload of one document.
// Participant records are free-form, so the payload stays in its JSON form
// rather than being mapped to BSON fields.
type SnapshotStore struct {
	coll *mongo.Collection
}

func NewSnapshotStore(db *mongo.Database, collection string) *SnapshotStore {
	return &SnapshotStore{coll: db.Collection(collection)}
}

// Open connects to MongoDB and returns a store on cfg.Collection once the
// deployment answers a ping. Every operation on the client is bounded by
// cfg.Timeout.
func Open(ctx context.Context, cfg Config) (*SnapshotStore, error) {
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, errors.New("mongo snapshot: database and collection are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo snapshot connect: %w", err)
	}

	store := NewSnapshotStore(client.Database(cfg.Database), cfg.Collection)
	if err := store.Ping(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo snapshot %s.%s: %w", cfg.Database, cfg.Collection, err)
	}
	return store, nil
}

type snapshotDoc struct {
	ID      string `bson:"_id"`
	Payload string `bson:"payload"`
	SavedAt int64  `bson:"saved_at"`
}

func (s *SnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	doc := snapshotDoc{ID: snapshotID, Payload: string(data), SavedAt: time.Now().Unix()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	var doc snapshotDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return snapshot.Decode([]byte(doc.Payload))
}

func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client().Ping(ctx, nil)
}

func (s *SnapshotStore) Close(ctx context.Context) error {
	return s.client().Disconnect(ctx)
}

func (s *SnapshotStore) client() *mongo.Client {
	return s.coll.Database().Client()
}
