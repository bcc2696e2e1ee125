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

// OTPRepository persists OTP verification records. The collection is
// append-only; verification only ever flips the isVerified flag.
type OTPRepository struct {
	collection *mongo.Collection
}

func NewOTPRepository(db *mongo.Client) *OTPRepository {
	return &OTPRepository{
		collection: config.GetCollection(db, "otpVerifications"),
	}
}

// Create inserts a new OTP record
func (r *OTPRepository) Create(ctx context.Context, record *models.OTPVerification) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// CountRecent counts OTP records for a phone created at or after since. This
// backs the per-phone send rate limit.
func (r *OTPRepository) CountRecent(ctx context.Context, phone string, since time.Time) (int64, error) {
	filter := bson.M{
		"phone":     phone,
		"createdAt": bson.M{"$gte": since},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// FindLatestUnverified returns the most recently created unverified record
// for a phone, or nil when none exists.
func (r *OTPRepository) FindLatestUnverified(ctx context.Context, phone string) (*models.OTPVerification, error) {
	filter := bson.M{
		"phone":      phone,
		"isVerified": false,
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var record models.OTPVerification
	err := r.collection.FindOne(ctx, filter, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// MarkVerified flips the isVerified flag on a record
func (r *OTPRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"isVerified": true}}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// ConsumeLatest atomically finds the newest unverified record matching the
// given code and marks it verified in the same operation, so a code can win
// at most one verification even under concurrent requests. Returns nil when
// no matching record exists.
func (r *OTPRepository) ConsumeLatest(ctx context.Context, phone, otp string) (*models.OTPVerification, error) {
	filter := bson.M{
		"phone":      phone,
		"otp":        otp,
		"isVerified": false,
	}
	update := bson.M{"$set": bson.M{"isVerified": true}}

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetReturnDocument(options.After)

	var record models.OTPVerification
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}
