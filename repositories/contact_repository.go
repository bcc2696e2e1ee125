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

type ContactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Client) *ContactRepository {
	return &ContactRepository{
		collection: config.GetCollection(db, "contacts"),
	}
}

// Create records one contact event
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, contact)
	return err
}

// FindHistory returns contact events involving a user, newest first.
// Direction is "sent", "received" or "" for both.
func (r *ContactRepository) FindHistory(ctx context.Context, userID primitive.ObjectID, direction string, skip, limit int64) ([]models.Contact, int64, error) {
	var filter bson.M
	switch direction {
	case "sent":
		filter = bson.M{"fromUserId": userID}
	case "received":
		filter = bson.M{"toUserId": userID}
	default:
		filter = bson.M{"$or": []bson.M{
			{"fromUserId": userID},
			{"toUserId": userID},
		}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}
