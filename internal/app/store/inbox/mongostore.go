// internal/app/store/inbox/mongostore.go
package inbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dipu67/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCollectionName is the MongoDB collection for contact messages.
const MongoCollectionName = "messages"

// MongoStore persists each message as its own document, keyed by the
// numeric id field. ReplaceAll clears and rewrites the collection, which
// keeps the whole-collection-replace contract identical across backends.
// A process-level mutex serializes writes for the same reason as the file
// backend: an append must not interleave with a replace.
type MongoStore struct {
	c        *mongo.Collection
	notifier Notifier
	log      *zap.Logger

	mu sync.Mutex
}

// NewMongoStore creates a mongo-backed inbox. notifier may be nil.
func NewMongoStore(db *mongo.Database, notifier Notifier, log *zap.Logger) *MongoStore {
	return &MongoStore{
		c:        db.Collection(MongoCollectionName),
		notifier: notifier,
		log:      log,
	}
}

// List returns all messages.
func (s *MongoStore) List(ctx context.Context) ([]models.ContactMessage, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return messages, nil
}

// Append validates, persists, and returns the new message, then fires the
// notifier.
func (s *MongoStore) Append(ctx context.Context, sub Submission) (*models.ContactMessage, error) {
	if err := validate(sub); err != nil {
		return nil, err
	}

	s.mu.Lock()
	msg := newMessage(sub, time.Now())
	_, err := s.c.InsertOne(ctx, msg)
	s.mu.Unlock()
	if err != nil {
		s.log.Error("inbox append failed", zap.Error(err))
		return nil, wrapWrite(err)
	}

	s.log.Info("contact message stored",
		zap.Int64("message_id", msg.ID),
		zap.String("subject", msg.Subject))

	if s.notifier != nil {
		if ok := s.notifier.NotifyNewContact(ctx, msg); !ok {
			s.log.Warn("contact notification failed",
				zap.Int64("message_id", msg.ID))
		}
	}
	return &msg, nil
}

// ReplaceAll clears the collection and inserts the given messages.
func (s *MongoStore) ReplaceAll(ctx context.Context, messages []models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
		s.log.Error("inbox replace failed", zap.Error(err))
		return wrapWrite(err)
	}
	if len(messages) == 0 {
		return nil
	}

	docs := make([]any, len(messages))
	for i, m := range messages {
		docs[i] = m
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		s.log.Error("inbox replace failed", zap.Error(err))
		return wrapWrite(err)
	}
	return nil
}

// DeleteByID removes exactly one message.
func (s *MongoStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		s.log.Error("inbox delete failed", zap.Int64("message_id", id), zap.Error(err))
		return wrapWrite(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
