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

	"github.com/shiftline/staff-scheduler/internal/core/domain"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
)

const shiftsCollection = "shifts"

type ShiftRepository struct {
	coll *mongo.Collection
}

func NewShiftRepository(db *mongo.Database) *ShiftRepository {
	return &ShiftRepository{coll: db.Collection(shiftsCollection)}
}

type mongoShift struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	StartTime time.Time          `bson:"start_time"`
	EndTime   time.Time          `bson:"end_time"`
	Position  string             `bson:"position"`
	Notes     string             `bson:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoShift{
		UserID:    shift.UserID,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		Position:  shift.Position,
		Notes:     shift.Notes,
		CreatedAt: shift.CreatedAt,
		UpdatedAt: shift.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert shift: %w", err)
	}

	created := *shift
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShiftNotFound
	}

	var ms mongoShift
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, fmt.Errorf("find shift: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *ShiftRepository) List(ctx context.Context, filter ports.ShiftFilter) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Position != "" {
		query["position"] = filter.Position
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Shift
	for cur.Next(ctx) {
		var ms mongoShift
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode shift: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	return out, cur.Err()
}

func (r *ShiftRepository) Update(ctx context.Context, id string, patch ports.ShiftPatch) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShiftNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.UserID != nil {
		set["user_id"] = *patch.UserID
	}
	if patch.StartTime != nil {
		set["start_time"] = patch.StartTime.UTC()
	}
	if patch.EndTime != nil {
		set["end_time"] = patch.EndTime.UTC()
	}
	if patch.Position != nil {
		set["position"] = *patch.Position
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	var ms mongoShift
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, fmt.Errorf("update shift: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrShiftNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrShiftNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the calendar queries rely on.
func (r *ShiftRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "start_time", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (ms *mongoShift) toDomain() *domain.Shift {
	return &domain.Shift{
		ID:        ms.ID.Hex(),
		UserID:    ms.UserID,
		StartTime: ms.StartTime.UTC(),
		EndTime:   ms.EndTime.UTC(),
		Position:  ms.Position,
		Notes:     ms.Notes,
		CreatedAt: ms.CreatedAt.UTC(),
		UpdatedAt: ms.UpdatedAt.UTC(),
	}
}
