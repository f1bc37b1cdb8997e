package usecase

import (
	"context"
	"fmt"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/metrics"
)

// PhotoService uploads dog photos and stores the returned reference URL on
// the dog record. An upload failure is reported without touching any record.
type PhotoService struct {
	photos  repository.PhotoRepository
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos repository.PhotoRepository, log logger.Logger, m *metrics.Metrics) *PhotoService {
	return &PhotoService{
		photos:  photos,
		logger:  log,
		metrics: m,
	}
}

// UploadDogPhoto stores the photo, then writes its URL onto the matching dog
// through the gateway. Returns the reference URL.
func (s *PhotoService) UploadDogPhoto(ctx context.Context, gw *Gateway, accountID, dogID string, data []byte, contentType string) (string, error) {
	if _, ok := gw.Snapshot().DogByID(dogID); !ok {
		return "", fmt.Errorf("dog %s not found", dogID)
	}

	url, err := s.photos.Upload(ctx, accountID, dogID, data, contentType)
	if err != nil {
		s.logger.Error("Photo upload failed", "dog", dogID, "error", err)
		return "", err
	}

	err = gw.UpdateDogs(ctx, func(prev []entity.Dog) []entity.Dog {
		for i := range prev {
			if prev[i].ID == dogID {
				prev[i].PhotoURL = url
			}
		}
		return prev
	})
	if err != nil {
		return "", err
	}

	if s.metrics != nil {
		s.metrics.PhotosUploaded.Inc()
	}
	return url, nil
}

// DownloadDogPhoto returns the stored photo bytes and content type.
func (s *PhotoService) DownloadDogPhoto(ctx context.Context, accountID, dogID string) ([]byte, string, error) {
	return s.photos.Download(ctx, accountID, dogID)
}
