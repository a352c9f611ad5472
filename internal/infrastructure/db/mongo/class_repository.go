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
)

const collectionDisciplines = "disciplines"

// ClassRepository handles class documents outside the reservation
// transaction.
type ClassRepository struct {
	col *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{col: db.Collection(collectionClasses)}
}

type classDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	DisciplineID string             `bson:"discipline_id"`
	Name         string             `bson:"name"`
	StartTime    time.Time          `bson:"start_time"`
	EndTime      time.Time          `bson:"end_time"`
	Capacity     int                `bson:"capacity"`
	Booked       int                `bson:"booked"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *classDoc) toDomain() *domain.Class {
	return &domain.Class{
		ID:           d.ID.Hex(),
		DisciplineID: d.DisciplineID,
		Name:         d.Name,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		Capacity:     d.Capacity,
		Booked:       d.Booked,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *ClassRepository) FindByID(ctx context.Context, classID string) (*domain.Class, error) {
	id, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return nil, domain.ErrClassNotFound
	}
	var doc classDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClassRepository) Create(ctx context.Context, class *domain.Class) error {
	doc := classDoc{
		ID:           primitive.NewObjectID(),
		DisciplineID: class.DisciplineID,
		Name:         class.Name,
		StartTime:    class.StartTime,
		EndTime:      class.EndTime,
		Capacity:     class.Capacity,
		Booked:       0,
		IsActive:     class.IsActive,
		CreatedAt:    class.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	class.ID = doc.ID.Hex()
	return nil
}

// List returns classes starting at or after from, optionally filtered by
// discipline, ordered by start time.
func (r *ClassRepository) List(ctx context.Context, disciplineID string, from time.Time) ([]*domain.Class, error) {
	filter := bson.M{"is_active": true, "start_time": bson.M{"$gte": from}}
	if disciplineID != "" {
		filter["discipline_id"] = disciplineID
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Class
	for cursor.Next(ctx) {
		var doc classDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *ClassRepository) Delete(ctx context.Context, classID string) error {
	id, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return domain.ErrClassNotFound
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

func (r *ClassRepository) CountFutureByDiscipline(ctx context.Context, disciplineID string, after time.Time) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"discipline_id": disciplineID,
		"start_time":    bson.M{"$gt": after},
	})
}

// DisciplineRepository handles discipline documents, including the typed
// free-access configuration.
type DisciplineRepository struct {
	col *mongo.Collection
}

func NewDisciplineRepository(db *mongo.Database) *DisciplineRepository {
	return &DisciplineRepository{col: db.Collection(collectionDisciplines)}
}

type disciplineDoc struct {
	ID                  primitive.ObjectID       `bson:"_id,omitempty"`
	Name                string                   `bson:"name"`
	RequiresReservation bool                     `bson:"requires_reservation"`
	FreeAccess          *domain.FreeAccessConfig `bson:"free_access,omitempty"`
	IsActive            bool                     `bson:"is_active"`
}

func (d *disciplineDoc) toDomain() *domain.Discipline {
	return &domain.Discipline{
		ID:                  d.ID.Hex(),
		Name:                d.Name,
		RequiresReservation: d.RequiresReservation,
		FreeAccess:          d.FreeAccess,
		IsActive:            d.IsActive,
	}
}

func (r *DisciplineRepository) FindByID(ctx context.Context, disciplineID string) (*domain.Discipline, error) {
	id, err := primitive.ObjectIDFromHex(disciplineID)
	if err != nil {
		return nil, domain.ErrDisciplineNotFound
	}
	var doc disciplineDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDisciplineNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *DisciplineRepository) Create(ctx context.Context, d *domain.Discipline) error {
	doc := disciplineDoc{
		ID:                  primitive.NewObjectID(),
		Name:                d.Name,
		RequiresReservation: d.RequiresReservation,
		FreeAccess:          d.FreeAccess,
		IsActive:            d.IsActive,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	d.ID = doc.ID.Hex()
	return nil
}

func (r *DisciplineRepository) List(ctx context.Context) ([]*domain.Discipline, error) {
	cursor, err := r.col.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Discipline
	for cursor.Next(ctx) {
		var doc disciplineDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *DisciplineRepository) Delete(ctx context.Context, disciplineID string) error {
	id, err := primitive.ObjectIDFromHex(disciplineID)
	if err != nil {
		return domain.ErrDisciplineNotFound
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrDisciplineNotFound
	}
	return nil
}
