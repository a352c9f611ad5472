package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// MembershipRepository reads membership documents. Balances are written only
// by the ReservationStore transactions.
type MembershipRepository struct {
	col *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) *MembershipRepository {
	return &MembershipRepository{col: db.Collection(collectionMemberships)}
}

type membershipDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	MemberID         string             `bson:"member_id"`
	DisciplineID     string             `bson:"discipline_id"`
	PlanID           string             `bson:"plan_id"`
	TotalCredits     int                `bson:"total_credits"`
	RemainingCredits int                `bson:"remaining_credits"`
	IsUnlimited      bool               `bson:"is_unlimited"`
	Status           string             `bson:"status"`
	ExpirationDate   time.Time          `bson:"expiration_date"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d *membershipDoc) toDomain() *domain.Membership {
	return &domain.Membership{
		ID:               d.ID.Hex(),
		MemberID:         d.MemberID,
		DisciplineID:     d.DisciplineID,
		PlanID:           d.PlanID,
		TotalCredits:     d.TotalCredits,
		RemainingCredits: d.RemainingCredits,
		IsUnlimited:      d.IsUnlimited,
		Status:           domain.MembershipStatus(d.Status),
		ExpirationDate:   d.ExpirationDate,
		CreatedAt:        d.CreatedAt,
	}
}

func (r *MembershipRepository) FindByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	id, err := primitive.ObjectIDFromHex(membershipID)
	if err != nil {
		return nil, domain.ErrMembershipNotFound
	}
	var doc membershipDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MembershipRepository) FindUsable(ctx context.Context, memberID, disciplineID string, now time.Time) (*domain.Membership, error) {
	var doc membershipDoc
	err := r.col.FindOne(ctx, bson.M{
		"member_id":       memberID,
		"discipline_id":   disciplineID,
		"status":          string(domain.MembershipActive),
		"expiration_date": bson.M{"$gt": now},
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNoActiveMembership
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MembershipRepository) FindUsableAny(ctx context.Context, memberID string, now time.Time) (*domain.Membership, error) {
	var doc membershipDoc
	err := r.col.FindOne(ctx, bson.M{
		"member_id":       memberID,
		"status":          string(domain.MembershipActive),
		"expiration_date": bson.M{"$gt": now},
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNoActiveMembership
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MembershipRepository) CountActiveByDiscipline(ctx context.Context, disciplineID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"discipline_id": disciplineID,
		"status":        string(domain.MembershipActive),
	})
}
