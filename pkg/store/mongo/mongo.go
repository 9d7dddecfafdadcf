// Package mongo persists the member store in MongoDB.
//
// The whole family is one document {_id, members, version, updatedAt}.
// Saves replace it with an upsert, so a save is atomic without
// multi-document transactions.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/store"
)

// Defaults applied to empty Config fields.
const (
	DefaultDatabase   = "familytree"
	DefaultCollection = "families"
	DefaultDocumentID = "default"
)

// Config holds the connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	// DocumentID selects the family document, so one collection can hold
	// several trees.
	DocumentID string
}

// WithDefaults fills empty fields.
func (c Config) WithDefaults() Config {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.DocumentID == "" {
		c.DocumentID = DefaultDocumentID
	}
	return c
}

// document is the stored shape.
type document struct {
	ID        string          `bson:"_id"`
	Members   []family.Member `bson:"members"`
	Version   int64           `bson:"version"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

// Backend implements [store.Backend] on a MongoDB collection.
type Backend struct {
	client *mongo.Client
	coll   *mongo.Collection
	docID  string
}

var _ store.Backend = (*Backend)(nil)

// New connects to MongoDB and pings the primary.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	cfg = cfg.WithDefaults()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Backend{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		docID:  cfg.DocumentID,
	}, nil
}

func (b *Backend) Load(ctx context.Context) ([]family.Member, int64, error) {
	var doc document
	err := b.coll.FindOne(ctx, bson.M{"_id": b.docID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []family.Member{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load family %s: %w", b.docID, err)
	}
	return family.CloneAll(doc.Members), doc.Version, nil
}

func (b *Backend) Save(ctx context.Context, members []family.Member, version int64) error {
	doc := newDocument(b.docID, members, version, time.Now().UTC())
	opts := options.Replace().SetUpsert(true)
	if _, err := b.coll.ReplaceOne(ctx, bson.M{"_id": b.docID}, doc, opts); err != nil {
		return fmt.Errorf("save family %s: %w", b.docID, err)
	}
	return nil
}

func (b *Backend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

func newDocument(id string, members []family.Member, version int64, now time.Time) document {
	return document{
		ID:        id,
		Members:   family.CloneAll(members),
		Version:   version,
		UpdatedAt: now,
	}
}
