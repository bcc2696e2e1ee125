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

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Client) *ReviewRepository {
	return &ReviewRepository{
		collection: config.GetCollection(db, "reviews"),
	}
}

// Upsert creates or replaces the review for a reviewer/reviewee pair and
// returns the stored document.
func (r *ReviewRepository) Upsert(ctx context.Context, reviewerID, revieweeID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	now := time.Now()
	filter := bson.M{
		"reviewerId": reviewerID,
		"revieweeId": revieweeID,
	}
	update := bson.M{
		"$set": bson.M{
			"rating":    rating,
			"comment":   comment,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"reviewerId": reviewerID,
			"revieweeId": revieweeID,
			"createdAt":  now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var review models.Review
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&review); err != nil {
		return nil, err
	}

	return &review, nil
}

// FindByReviewee returns the reviews received by a user, newest first
func (r *ReviewRepository) FindByReviewee(ctx context.Context, revieweeID primitive.ObjectID, skip, limit int64) ([]models.Review, int64, error) {
	filter := bson.M{"revieweeId": revieweeID}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// FindByID returns a review by ID, or nil when none exists
func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindRatings returns all rating values received by a user, for aggregation
func (r *ReviewRepository) FindRatings(ctx context.Context, revieweeID primitive.ObjectID) ([]int, error) {
	filter := bson.M{"revieweeId": revieweeID}
	opts := options.Find().SetProjection(bson.M{"rating": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Rating int `bson:"rating"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ratings := make([]int, 0, len(docs))
	for _, d := range docs {
		ratings = append(ratings, d.Rating)
	}

	return ratings, nil
}
