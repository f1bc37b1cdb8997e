package repository

import "context"

// PhotoRepository stores dog photos and hands back a reference URL that is
// kept on the dog record. Upload failures must surface to the caller before
// any record is touched.
type PhotoRepository interface {
	Upload(ctx context.Context, accountID, dogID string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, accountID, dogID string) ([]byte, string, error)
}
