package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	blockedsloterrors "turfbook/internal/blockedslots/errors"
	"turfbook/pkg/config"
	"turfbook/pkg/model"
)

const (
	CollectionName = "blocked_slots"
)

type mongoBlockedSlotRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type BlockedSlotRepository interface {
	Create(ctx context.Context, b *model.BlockedSlot) error
	FindByID(ctx context.Context, id string) (*model.BlockedSlot, error)
	FindByTurfAndDate(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error)
	FindAll(ctx context.Context, turfID string, date string, limit int, offset int64) ([]*model.BlockedSlot, error)
	Delete(ctx context.Context, id string) error
	DeleteBefore(ctx context.Context, date string) (int64, error)
	Count(ctx context.Context, turfID string, date string) (int64, error)
}

func NewMongoBlockedSlotRepository(cfg *config.Config) BlockedSlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBlockedSlotRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBlockedSlotRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining > timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBlockedSlotRepository) Create(ctx context.Context, b *model.BlockedSlot) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	b.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create blocked slot: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBlockedSlotRepository) FindByID(ctx context.Context, id string) (*model.BlockedSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", blockedsloterrors.ErrInvalidID, id)
	}

	var b model.BlockedSlot
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", blockedsloterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find blocked slot: %w", err)
	}

	return &b, nil
}

// FindByTurfAndDate returns every blackout for one turf-day. Availability
// checks read this unpaginated; a single day holds at most a handful.
func (r *mongoBlockedSlotRepository) FindByTurfAndDate(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"turf_id": turfID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.BlockedSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode blocked slots: %w", err)
	}
	return slots, nil
}

func (r *mongoBlockedSlotRepository) FindAll(ctx context.Context, turfID string, date string, limit int, offset int64) ([]*model.BlockedSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if turfID != "" {
		filter["turf_id"] = turfID
	}
	if date != "" {
		filter["date"] = date
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.BlockedSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode blocked slots: %w", err)
	}
	return slots, nil
}

func (r *mongoBlockedSlotRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", blockedsloterrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete blocked slot: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", blockedsloterrors.ErrNotFound, id)
	}
	return nil
}

// DeleteBefore removes blackouts dated strictly before the given day.
// Lexicographic comparison works because dates are zero-padded YYYY-MM-DD.
func (r *mongoBlockedSlotRepository) DeleteBefore(ctx context.Context, date string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": date}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old blocked slots: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBlockedSlotRepository) Count(ctx context.Context, turfID string, date string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if turfID != "" {
		filter["turf_id"] = turfID
	}
	if date != "" {
		filter["date"] = date
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count blocked slots: %w", err)
	}
	return count, nil
}
