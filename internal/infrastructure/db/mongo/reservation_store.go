package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

const (
	collectionReservations = "reservations"
	collectionClasses      = "classes"
	collectionMemberships  = "memberships"
)

// ReservationStore implements ports.ReservationStore on MongoDB. Reserve and
// Cancel run inside a session transaction combining three conditional
// writes: the class seat counter (capacity gate), the reservation row under
// a unique (member_id, class_id) index, and the membership credit balance.
// A concurrent attempt that loses a race either sees a matched-count of zero
// on the conditional filter (typed domain error) or aborts with a transient
// transaction error, surfaced as domain.ErrStoreConflict for a single
// caller-side retry.
type ReservationStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewReservationStore(client *mongo.Client, db *mongo.Database) *ReservationStore {
	return &ReservationStore{client: client, db: db}
}

type reservationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	MemberID     string             `bson:"member_id"`
	ClassID      string             `bson:"class_id"`
	MembershipID string             `bson:"membership_id"`
	Status       string             `bson:"status"`
	Attended     bool               `bson:"attended"`
	CancelledAt  *time.Time         `bson:"cancelled_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *reservationDoc) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:           d.ID.Hex(),
		MemberID:     d.MemberID,
		ClassID:      d.ClassID,
		MembershipID: d.MembershipID,
		Status:       domain.ReservationStatus(d.Status),
		Attended:     d.Attended,
		CancelledAt:  d.CancelledAt,
		CreatedAt:    d.CreatedAt,
	}
}

// Reserve commits the reservation insert/reactivation, the seat increment,
// and the credit debit as one transaction.
func (s *ReservationStore) Reserve(ctx context.Context, p ports.ReserveParams) (*ports.ReserveOutcome, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return s.reserveTxn(sc, p)
	})
	if err != nil {
		return nil, mapTxnError(err)
	}
	return result.(*ports.ReserveOutcome), nil
}

func (s *ReservationStore) reserveTxn(sc mongo.SessionContext, p ports.ReserveParams) (*ports.ReserveOutcome, error) {
	classID, err := primitive.ObjectIDFromHex(p.ClassID)
	if err != nil {
		return nil, domain.ErrClassNotFound
	}

	// Capacity gate: conditional increment, serialized by the transaction.
	seat, err := s.db.Collection(collectionClasses).UpdateOne(sc,
		bson.M{
			"_id":       classID,
			"is_active": true,
			"$expr":     bson.M{"$lt": bson.A{"$booked", "$capacity"}},
		},
		bson.M{"$inc": bson.M{"booked": 1}},
	)
	if err != nil {
		return nil, err
	}
	if seat.MatchedCount == 0 {
		return nil, domain.ErrClassFull
	}

	doc, err := s.upsertReservation(sc, p)
	if err != nil {
		return nil, err
	}

	remaining, err := s.debit(sc, p)
	if err != nil {
		return nil, err
	}

	return &ports.ReserveOutcome{
		Reservation:      doc.toDomain(),
		RemainingCredits: remaining,
	}, nil
}

// upsertReservation enforces the one-logical-row-per-(member, class)
// invariant: an ACTIVE row rejects the attempt, a CANCELLED row is
// reactivated in place, otherwise a fresh row is inserted.
func (s *ReservationStore) upsertReservation(sc mongo.SessionContext, p ports.ReserveParams) (*reservationDoc, error) {
	col := s.db.Collection(collectionReservations)

	var existing reservationDoc
	err := col.FindOne(sc, bson.M{"member_id": p.MemberID, "class_id": p.ClassID}).Decode(&existing)
	switch {
	case err == nil:
		if existing.Status == string(domain.ReservationActive) {
			return nil, domain.ErrDuplicateReservation
		}
		after := options.After
		err = col.FindOneAndUpdate(sc,
			bson.M{"_id": existing.ID, "status": string(domain.ReservationCancelled)},
			bson.M{"$set": bson.M{
				"status":        string(domain.ReservationActive),
				"membership_id": p.MembershipID,
				"attended":      false,
				"cancelled_at":  nil,
			}},
			options.FindOneAndUpdate().SetReturnDocument(after),
		).Decode(&existing)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Row flipped under us between the read and the update.
			return nil, domain.ErrDuplicateReservation
		}
		if err != nil {
			return nil, err
		}
		return &existing, nil

	case errors.Is(err, mongo.ErrNoDocuments):
		fresh := reservationDoc{
			ID:           primitive.NewObjectID(),
			MemberID:     p.MemberID,
			ClassID:      p.ClassID,
			MembershipID: p.MembershipID,
			Status:       string(domain.ReservationActive),
			CreatedAt:    p.Now,
		}
		if _, err := col.InsertOne(sc, fresh); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateReservation
			}
			return nil, err
		}
		return &fresh, nil

	default:
		return nil, err
	}
}

// debit decrements the credit balance, or reads it untouched for unlimited
// memberships. The {remaining_credits > 0} filter makes an exhausted balance
// observable as a typed failure instead of a negative value.
func (s *ReservationStore) debit(sc mongo.SessionContext, p ports.ReserveParams) (int, error) {
	membershipID, err := primitive.ObjectIDFromHex(p.MembershipID)
	if err != nil {
		return 0, domain.ErrMembershipNotFound
	}
	col := s.db.Collection(collectionMemberships)

	if p.Unlimited {
		var m struct {
			RemainingCredits int `bson:"remaining_credits"`
		}
		if err := col.FindOne(sc, bson.M{"_id": membershipID}).Decode(&m); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return 0, domain.ErrMembershipNotFound
			}
			return 0, err
		}
		return m.RemainingCredits, nil
	}

	after := options.After
	var updated struct {
		RemainingCredits int `bson:"remaining_credits"`
	}
	err = col.FindOneAndUpdate(sc,
		bson.M{"_id": membershipID, "remaining_credits": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"remaining_credits": -1}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, domain.ErrInsufficientCredits
	}
	if err != nil {
		return 0, err
	}
	return updated.RemainingCredits, nil
}

// Cancel commits the state flip, the seat release, and the optional capped
// refund as one transaction.
func (s *ReservationStore) Cancel(ctx context.Context, p ports.CancelParams) (*ports.CancelOutcome, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return s.cancelTxn(sc, p)
	})
	if err != nil {
		return nil, mapTxnError(err)
	}
	return result.(*ports.CancelOutcome), nil
}

func (s *ReservationStore) cancelTxn(sc mongo.SessionContext, p ports.CancelParams) (*ports.CancelOutcome, error) {
	reservationID, err := primitive.ObjectIDFromHex(p.ReservationID)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	before := options.Before
	var doc reservationDoc
	err = s.db.Collection(collectionReservations).FindOneAndUpdate(sc,
		bson.M{"_id": reservationID, "status": string(domain.ReservationActive)},
		bson.M{"$set": bson.M{
			"status":       string(domain.ReservationCancelled),
			"cancelled_at": p.Now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(before),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrReservationNotActive
	}
	if err != nil {
		return nil, err
	}

	classID, err := primitive.ObjectIDFromHex(doc.ClassID)
	if err != nil {
		return nil, domain.ErrClassNotFound
	}
	if _, err := s.db.Collection(collectionClasses).UpdateOne(sc,
		bson.M{"_id": classID, "booked": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"booked": -1}},
	); err != nil {
		return nil, err
	}

	remaining, err := s.refund(sc, doc.MembershipID, p)
	if err != nil {
		return nil, err
	}
	return &ports.CancelOutcome{RemainingCredits: remaining}, nil
}

// refund restores one credit, capped at total_credits; forfeiting
// cancellations and unlimited memberships only read the current balance.
func (s *ReservationStore) refund(sc mongo.SessionContext, membershipID string, p ports.CancelParams) (int, error) {
	id, err := primitive.ObjectIDFromHex(membershipID)
	if err != nil {
		return 0, domain.ErrMembershipNotFound
	}
	col := s.db.Collection(collectionMemberships)

	if p.Refund && !p.Unlimited {
		after := options.After
		var updated struct {
			RemainingCredits int `bson:"remaining_credits"`
		}
		err = col.FindOneAndUpdate(sc,
			bson.M{"_id": id, "$expr": bson.M{"$lt": bson.A{"$remaining_credits", "$total_credits"}}},
			bson.M{"$inc": bson.M{"remaining_credits": 1}},
			options.FindOneAndUpdate().SetReturnDocument(after),
		).Decode(&updated)
		if err == nil {
			return updated.RemainingCredits, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return 0, err
		}
		// Already at the cap: fall through to a plain read.
	}

	var m struct {
		RemainingCredits int `bson:"remaining_credits"`
	}
	if err := col.FindOne(sc, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrMembershipNotFound
		}
		return 0, err
	}
	return m.RemainingCredits, nil
}

// MarkAttended flips the attended flag on an ACTIVE reservation.
func (s *ReservationStore) MarkAttended(ctx context.Context, reservationID string) error {
	id, err := primitive.ObjectIDFromHex(reservationID)
	if err != nil {
		return domain.ErrReservationNotFound
	}
	result, err := s.db.Collection(collectionReservations).UpdateOne(ctx,
		bson.M{"_id": id, "status": string(domain.ReservationActive)},
		bson.M{"$set": bson.M{"attended": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrReservationNotActive
	}
	return nil
}

func (s *ReservationStore) FindByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	id, err := primitive.ObjectIDFromHex(reservationID)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}
	var doc reservationDoc
	if err := s.db.Collection(collectionReservations).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *ReservationStore) FindActiveForMember(ctx context.Context, memberID, classID string) (*domain.Reservation, error) {
	var doc reservationDoc
	err := s.db.Collection(collectionReservations).FindOne(ctx, bson.M{
		"member_id": memberID,
		"class_id":  classID,
		"status":    string(domain.ReservationActive),
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *ReservationStore) ListByMember(ctx context.Context, memberID string) ([]*domain.Reservation, error) {
	cursor, err := s.db.Collection(collectionReservations).Find(ctx,
		bson.M{"member_id": memberID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Reservation
	for cursor.Next(ctx) {
		var doc reservationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (s *ReservationStore) CountActiveByClass(ctx context.Context, classID string) (int64, error) {
	return s.db.Collection(collectionReservations).CountDocuments(ctx, bson.M{
		"class_id": classID,
		"status":   string(domain.ReservationActive),
	})
}

// EnsureIndexes creates the unique (member_id, class_id) index backing the
// no-double-booking invariant, plus the lookup indexes.
func (s *ReservationStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := true
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "class_id", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique},
		},
		{Keys: bson.D{{Key: "class_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := s.db.Collection(collectionReservations).Indexes().CreateMany(ctx, indexes)
	return err
}

// mapTxnError converts driver-level transient transaction aborts into the
// retryable domain conflict error.
func mapTxnError(err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.HasErrorLabel("UnknownTransactionCommitResult")) {
		return domain.ErrStoreConflict
	}
	return err
}
