package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/models"
)

// RefreshTokenRepository persists refresh token records. Revocation sets
// revokedAt; rows are never deleted so the rotation history stays auditable.
type RefreshTokenRepository struct {
	collection *mongo.Collection
}

func NewRefreshTokenRepository(db *mongo.Client) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		collection: config.GetCollection(db, "refreshTokens"),
	}
}

// Create inserts a new refresh token record
func (r *RefreshTokenRepository) Create(ctx context.Context, record *models.RefreshToken) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindActiveByToken returns the non-revoked record holding the given token
// value, or nil when none exists. Expiry is checked by the caller so the
// error message can distinguish expired from unknown.
func (r *RefreshTokenRepository) FindActiveByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	filter := bson.M{
		"token":     token,
		"revokedAt": nil,
	}

	var record models.RefreshToken
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Revoke marks a single record revoked as of now
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"revokedAt": time.Now()}}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// RevokeMatching revokes every active record for the (user, token) pair and
// returns how many rows were affected. Zero is a valid outcome; logout stays
// idempotent.
func (r *RefreshTokenRepository) RevokeMatching(ctx context.Context, userID primitive.ObjectID, token string) (int64, error) {
	filter := bson.M{
		"userId":    userID,
		"token":     token,
		"revokedAt": nil,
	}
	update := bson.M{"$set": bson.M{"revokedAt": time.Now()}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}

	return result.ModifiedCount, nil
}
