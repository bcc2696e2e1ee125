package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(db, "users"),
	}
}

// FindByPhone returns the user owning a phone number, or nil when none exists
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by ID, or nil when none exists
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// UpdateLastLogin stamps the login time on an existing user
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"lastLoginAt": now,
		"isActive":    true,
		"updatedAt":   now,
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdateFields applies a partial profile update
func (r *UserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	update := bson.M{"$set": fields}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdateRating sets the aggregated review rating on a user
func (r *UserRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, totalReviews int) error {
	update := bson.M{"$set": bson.M{
		"rating":       rating,
		"totalReviews": totalReviews,
		"updatedAt":    time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Search runs the labour search query. Only active users with completed
// profiles are ever returned.
func (r *UserRepository) Search(ctx context.Context, filters models.LabourSearchFilters) ([]models.User, int64, error) {
	filter := bson.M{
		"isActive": true,
		"name":     bson.M{"$ne": ""},
	}

	if filters.Search != "" {
		pattern := primitive.Regex{Pattern: filters.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"city": pattern},
			{"state": pattern},
		}
	}

	if filters.City != "" {
		filter["city"] = primitive.Regex{Pattern: "^" + filters.City + "$", Options: "i"}
	}

	if len(filters.Skills) > 0 {
		filter["skills"] = bson.M{"$in": filters.Skills}
	}

	if filters.MinExperience != nil || filters.MaxExperience != nil {
		expFilter := bson.M{}
		if filters.MinExperience != nil {
			expFilter["$gte"] = *filters.MinExperience
		}
		if filters.MaxExperience != nil {
			expFilter["$lte"] = *filters.MaxExperience
		}
		filter["experienceYears"] = expFilter
	}

	if filters.LabourType != "" {
		filter["labourType"] = filters.LabourType
	}

	if filters.AvailableOnly {
		filter["isAvailable"] = true
	}

	if filters.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": filters.MinRating}
	}

	var sortField bson.D
	switch filters.SortBy {
	case "experience":
		sortField = bson.D{{Key: "experienceYears", Value: -1}}
	case "rating":
		sortField = bson.D{{Key: "rating", Value: -1}}
	default:
		sortField = bson.D{{Key: "createdAt", Value: -1}}
	}

	skip := int64((filters.Page - 1) * filters.Limit)
	limit := int64(filters.Limit)

	opts := options.Find().
		SetSort(sortField).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindWithLocation returns completed, active profiles that carry coordinates.
// The distance filter and sort run in memory over this set.
func (r *UserRepository) FindWithLocation(ctx context.Context, limit int64) ([]models.User, error) {
	filter := bson.M{
		"isActive":  true,
		"name":      bson.M{"$ne": ""},
		"latitude":  bson.M{"$ne": nil},
		"longitude": bson.M{"$ne": nil},
	}

	opts := options.Find().SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}
