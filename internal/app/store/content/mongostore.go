// internal/app/store/content/mongostore.go
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/dipu67/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollectionName is the MongoDB collection holding the content document.
const CollectionName = "content"

// contentRecord wraps the document for storage. Only one record exists per
// deployment (singleton filter). The revision counter is stored alongside
// the content, outside the document's own field set, so the at-rest shape
// of the content itself is unchanged.
type contentRecord struct {
	Singleton bool                   `bson:"singleton"`
	Revision  uint64                 `bson:"revision"`
	UpdatedAt time.Time              `bson:"updated_at"`
	Content   models.ContentDocument `bson:"content"`
}

// MongoStore persists the content document as a singleton record, the same
// pattern used for site-wide settings in other deployments: one document,
// upserted whole.
type MongoStore struct {
	c   *mongo.Collection
	log *zap.Logger
}

// NewMongoStore creates a mongo-backed content store.
func NewMongoStore(db *mongo.Database, log *zap.Logger) *MongoStore {
	return &MongoStore{c: db.Collection(CollectionName), log: log}
}

var singletonFilter = bson.M{"singleton": true}

// Load returns the full current document and its revision.
func (s *MongoStore) Load(ctx context.Context) (*models.ContentDocument, Revision, error) {
	var rec contentRecord
	err := s.c.FindOne(ctx, singletonFilter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, 0, fmt.Errorf("%w: no content document", ErrUnavailable)
	}
	if err != nil {
		s.log.Error("content load failed", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	doc := rec.Content
	doc.Normalize()
	return &doc, Revision(rec.Revision), nil
}

// Replace overwrites the stored document. When rev is not AnyRevision the
// update filter includes the revision, so a concurrent replace since this
// caller's load surfaces as ErrStaleWrite instead of silently losing.
func (s *MongoStore) Replace(ctx context.Context, doc *models.ContentDocument, rev Revision) (Revision, error) {
	filter := bson.M{"singleton": true}
	if rev != AnyRevision {
		filter["revision"] = uint64(rev)
	}

	update := bson.M{
		"$set": bson.M{
			"singleton":  true,
			"content":    doc,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"revision": 1},
	}

	opts := options.Update().SetUpsert(rev == AnyRevision)
	res, err := s.c.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		s.log.Error("content replace failed", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if rev != AnyRevision && res.MatchedCount == 0 {
		return 0, ErrStaleWrite
	}

	return s.currentRevision(ctx)
}

// EnsureSeed inserts doc only when no content record exists yet.
func (s *MongoStore) EnsureSeed(ctx context.Context, doc *models.ContentDocument) (bool, error) {
	count, err := s.c.CountDocuments(ctx, singletonFilter)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count > 0 {
		return false, nil
	}

	rec := contentRecord{
		Singleton: true,
		Revision:  1,
		UpdatedAt: time.Now().UTC(),
		Content:   *doc,
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	s.log.Info("seeded default content document", zap.String("collection", CollectionName))
	return true, nil
}

func (s *MongoStore) currentRevision(ctx context.Context) (Revision, error) {
	var rec struct {
		Revision uint64 `bson:"revision"`
	}
	if err := s.c.FindOne(ctx, singletonFilter).Decode(&rec); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return Revision(rec.Revision), nil
}
