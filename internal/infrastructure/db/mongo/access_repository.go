package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitpass/gym-system/internal/core/domain"
)

const collectionAccessLog = "access_log"

// AccessRepository appends entry decisions to the access_log collection.
// The collection is append-only: there are no update or delete paths.
type AccessRepository struct {
	col *mongo.Collection
}

func NewAccessRepository(db *mongo.Database) *AccessRepository {
	return &AccessRepository{col: db.Collection(collectionAccessLog)}
}

func (r *AccessRepository) Append(ctx context.Context, entry *domain.AccessEntry) error {
	doc := bson.M{
		"_id":        primitive.NewObjectID(),
		"member_id":  entry.MemberID,
		"discipline": entry.Discipline,
		"type":       string(entry.Type),
		"granted":    entry.Granted,
		"timestamp":  entry.Timestamp.UTC(),
	}
	if entry.Reason != "" {
		doc["reason"] = entry.Reason
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *AccessRepository) ListByMember(ctx context.Context, memberID string, limit int) ([]*domain.AccessEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	cursor, err := r.col.Find(ctx,
		bson.M{"member_id": memberID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.AccessEntry
	for cursor.Next(ctx) {
		var doc struct {
			ID         primitive.ObjectID `bson:"_id"`
			MemberID   string             `bson:"member_id"`
			Discipline string             `bson:"discipline"`
			Type       string             `bson:"type"`
			Granted    bool               `bson:"granted"`
			Reason     string             `bson:"reason"`
			Timestamp  time.Time          `bson:"timestamp"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &domain.AccessEntry{
			ID:         doc.ID.Hex(),
			MemberID:   doc.MemberID,
			Discipline: doc.Discipline,
			Type:       domain.AccessType(doc.Type),
			Granted:    doc.Granted,
			Reason:     doc.Reason,
			Timestamp:  doc.Timestamp,
		})
	}
	return out, cursor.Err()
}
