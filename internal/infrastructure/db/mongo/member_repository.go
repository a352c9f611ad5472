package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitpass/gym-system/internal/core/domain"
)

const collectionMembers = "members"

type MemberRepository struct {
	col *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{col: db.Collection(collectionMembers)}
}

type memberDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (d *memberDoc) toDomain() *domain.Member {
	return &domain.Member{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func (r *MemberRepository) FindByID(ctx context.Context, memberID string) (*domain.Member, error) {
	id, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	var doc memberDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	var doc memberDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	doc := memberDoc{
		ID:           primitive.NewObjectID(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt.Unix(),
		UpdatedAt:    m.UpdatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	out := *m
	out.ID = doc.ID.Hex()
	return &out, nil
}

// EnsureIndexes creates the unique email index.
func (r *MemberRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := true
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
