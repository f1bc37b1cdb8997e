package repository

import (
	"context"
	"fmt"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentRepository implements the remote DocumentRepository. Each
// account owns exactly one document in the "documents" collection, keyed by
// account id, and every save replaces it wholesale.
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new MongoDB document repository
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	return &MongoDocumentRepository{
		collection: db.Collection("documents"),
	}
}

// accountDocument is the stored shape: the account id as _id plus the four
// collections and the revision inlined at the top level.
type accountDocument struct {
	AccountID       string `bson:"_id"`
	entity.Document `bson:",inline"`
}

// Load fetches the account's whole document.
func (r *MongoDocumentRepository) Load(ctx context.Context, accountID string) (*entity.Document, error) {
	var stored accountDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": accountID}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	doc := stored.Document
	doc.Normalize()
	return &doc, nil
}

// Save replaces the account's whole document, creating it on first write.
func (r *MongoDocumentRepository) Save(ctx context.Context, accountID string, doc *entity.Document) error {
	stored := accountDocument{
		AccountID: accountID,
		Document:  *doc,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": accountID}, stored, opts); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	return nil
}
