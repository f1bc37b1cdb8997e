package repository

import (
	"context"
	"errors"

	"hundvakt-service/internal/domain/entity"
)

// ErrDocumentNotFound is returned by Load when the account has no document
// yet. Callers substitute an empty document; it is not an error condition.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository is the storage contract shared by the device-local and
// the remote backend. A session binds to exactly one implementation for its
// whole lifetime; no operation reads from one backend and writes to the other.
type DocumentRepository interface {
	// Load fetches the whole document for the account. The local backend
	// ignores accountID and returns the device's data.
	Load(ctx context.Context, accountID string) (*entity.Document, error)
	// Save replaces the whole document. There is no partial update.
	Save(ctx context.Context, accountID string, doc *entity.Document) error
}
