// config/db.go
package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes connection to MongoDB. The initial ping is retried
// with backoff so a container can come up before its database does.
func ConnectDB() *mongo.Client {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}

	if mongoURI == "" {
		env := os.Getenv("ENV")
		if env == "development" || env == "dev" {
			mongoURI = "mongodb://localhost:27017"
		} else {
			log.Fatal("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
	}

	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(mongoURI))

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	if err := pingWithRetry(client, 3); err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client)

	return client
}

// pingWithRetry probes the connection up to attempts times with 1s/2s/...
// exponential backoff between tries.
func pingWithRetry(client *mongo.Client, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = client.Ping(ctx, nil)
		cancel()
		if err == nil {
			return nil
		}
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			log.Printf("MongoDB ping failed (attempt %d/%d), retrying in %s: %v", i+1, attempts, backoff, err)
			time.Sleep(backoff)
		}
	}
	return err
}

// DBName returns the configured database name
func DBName() string {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "rozgar360"
	}
	return dbName
}

// GetCollection returns MongoDB collection
func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(DBName()).Collection(collectionName)
}

// setupCollections ensures all necessary collections and indexes exist
func setupCollections(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(DBName())

	collections := []string{"users", "otpVerifications", "refreshTokens", "reviews", "contacts"}
	for _, collName := range collections {
		db.CreateCollection(ctx, collName)
	}

	// Phone index for users collection
	userColl := db.Collection("users")
	phoneIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := userColl.Indexes().CreateOne(ctx, phoneIndexModel); err != nil {
		log.Printf("Error creating phone index: %v", err)
	}

	// OTP lookups are latest-unverified-per-phone and rate-limit counts
	otpColl := db.Collection("otpVerifications")
	otpIndexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "phone", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	if _, err := otpColl.Indexes().CreateOne(ctx, otpIndexModel); err != nil {
		log.Printf("Error creating otpVerifications index: %v", err)
	}

	// Refresh tokens are looked up by raw token value on every rotation
	tokenColl := db.Collection("refreshTokens")
	tokenIndexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := tokenColl.Indexes().CreateMany(ctx, tokenIndexModels); err != nil {
		log.Printf("Error creating refreshTokens indexes: %v", err)
	}

	// One review per reviewer/reviewee pair
	reviewColl := db.Collection("reviews")
	reviewIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "reviewerId", Value: 1}, {Key: "revieweeId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := reviewColl.Indexes().CreateOne(ctx, reviewIndexModel); err != nil {
		log.Printf("Error creating reviews index: %v", err)
	}

	contactColl := db.Collection("contacts")
	contactIndexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "fromUserId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "toUserId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := contactColl.Indexes().CreateMany(ctx, contactIndexModels); err != nil {
		log.Printf("Error creating contacts indexes: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in MongoDB URI for logging
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
