package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	turferrors "turfbook/internal/turfs/errors"
	"turfbook/pkg/config"
	mongotx "turfbook/pkg/db/mongo"
	"turfbook/pkg/model"
)

const (
	CollectionName = "turfs"
)

type mongoTurfRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type TurfRepository interface {
	Create(ctx context.Context, t *model.Turf) error
	FindByID(ctx context.Context, id string) (*model.Turf, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Turf, error)
	FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Turf, error)
	Update(ctx context.Context, id string, t *model.Turf) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, location string, sport string) ([]*model.Turf, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoTurfRepository(cfg *config.Config) TurfRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTurfRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction, where wrapping the SessionContext would break its semantics.
func (r *mongoTurfRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoTurfRepository) Create(ctx context.Context, t *model.Turf) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	t.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to create turf: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTurfRepository) FindByID(ctx context.Context, id string) (*model.Turf, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", turferrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var t model.Turf
	err = r.collection.FindOne(ctx, filter).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", turferrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find turf: %w", err)
	}

	return &t, nil
}

func (r *mongoTurfRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Turf, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query turfs: %w", err)
	}
	defer cursor.Close(ctx)

	var turfs []*model.Turf
	if err = cursor.All(ctx, &turfs); err != nil {
		return nil, fmt.Errorf("failed to decode turfs: %w", err)
	}
	return turfs, nil
}

func (r *mongoTurfRepository) FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Turf, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query turfs by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var turfs []*model.Turf
	if err = cursor.All(ctx, &turfs); err != nil {
		return nil, fmt.Errorf("failed to decode turfs: %w", err)
	}
	return turfs, nil
}

func (r *mongoTurfRepository) Update(ctx context.Context, id string, t *model.Turf) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", turferrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":          t.Name,
			"phone":         t.Phone,
			"location":      t.Location,
			"sport":         t.Sport,
			"description":   t.Description,
			"rate_per_hour": t.RatePerHour,
			"open_time":     t.OpenTime,
			"close_time":    t.CloseTime,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update turf: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", turferrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoTurfRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", turferrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete turf: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", turferrors.ErrNotFound, id)
	}
	return nil
}

// escapeRegexSpecialChars escapes regex metacharacters in user input so
// location search cannot be abused for ReDoS.
func escapeRegexSpecialChars(s string) string {
	specialChars := regexp.MustCompile(`[.*+?^$()[\]{}|\\]`)
	return specialChars.ReplaceAllStringFunc(s, func(match string) string {
		return "\\" + match
	})
}

func (r *mongoTurfRepository) Search(ctx context.Context, location string, sport string) ([]*model.Turf, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if location != "" {
		escapedLocation := escapeRegexSpecialChars(location)
		filter["location"] = bson.M{"$regex": escapedLocation, "$options": "i"}
	}
	if sport != "" {
		filter["sport"] = sport
	}

	const maxSearchResults = 1000
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxSearchResults)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search turfs: %w", err)
	}
	defer cursor.Close(ctx)

	var turfs []*model.Turf
	if err = cursor.All(ctx, &turfs); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	return turfs, nil
}

func (r *mongoTurfRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count turfs: %w", err)
	}
	return count, nil
}

func (r *mongoTurfRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
