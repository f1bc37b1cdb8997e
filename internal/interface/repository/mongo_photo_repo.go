package repository

import (
	"context"
	"fmt"
	"time"

	"hundvakt-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPhotoRepository stores dog photos in a "dog_photos" collection, one
// document per (account, dog). Re-uploading replaces the previous photo so
// the stored reference URL keeps resolving to the latest bytes.
type MongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new MongoDB photo repository
func NewMongoPhotoRepository(db *mongo.Database) repository.PhotoRepository {
	return &MongoPhotoRepository{
		collection: db.Collection("dog_photos"),
	}
}

type photoDocument struct {
	ID          string           `bson:"_id"` // "users/{accountID}/dogs/{dogID}"
	AccountID   string           `bson:"accountId"`
	DogID       string           `bson:"dogId"`
	ContentType string           `bson:"contentType"`
	Data        primitive.Binary `bson:"data"`
	UploadedAt  time.Time        `bson:"uploadedAt"`
}

func photoKey(accountID, dogID string) string {
	return fmt.Sprintf("users/%s/dogs/%s", accountID, dogID)
}

// Upload stores the photo bytes and returns the reference URL to keep on the
// dog record.
func (r *MongoPhotoRepository) Upload(ctx context.Context, accountID, dogID string, data []byte, contentType string) (string, error) {
	stored := photoDocument{
		ID:          photoKey(accountID, dogID),
		AccountID:   accountID,
		DogID:       dogID,
		ContentType: contentType,
		Data:        primitive.Binary{Data: data},
		UploadedAt:  time.Now(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stored.ID}, stored, opts); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return fmt.Sprintf("/api/dogs/%s/photo", dogID), nil
}

// Download returns the stored photo bytes and their content type.
func (r *MongoPhotoRepository) Download(ctx context.Context, accountID, dogID string) ([]byte, string, error) {
	var stored photoDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": photoKey(accountID, dogID)}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return nil, "", fmt.Errorf("photo not found for dog %s", dogID)
	}
	if err != nil {
		return nil, "", fmt.Errorf("download photo: %w", err)
	}
	return stored.Data.Data, stored.ContentType, nil
}
