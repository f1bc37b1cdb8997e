package usecase

import (
	"context"
	"errors"
	"fmt"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/metrics"
)

// Importer copies the device-local data into the remote document in one
// write. It only applies when the remote document holds no customers and no
// dogs and the device actually has something to import. Local data is never
// deleted; a failed import leaves both sides exactly as they were.
type Importer struct {
	local   repository.DocumentRepository
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewImporter creates a new local-to-remote importer
func NewImporter(local repository.DocumentRepository, log logger.Logger, m *metrics.Metrics) *Importer {
	return &Importer{
		local:   local,
		logger:  log,
		metrics: m,
	}
}

// HasLocalData reports whether the device holds at least one customer or dog.
func (i *Importer) HasLocalData(ctx context.Context) bool {
	doc, err := i.local.Load(ctx, "")
	if err != nil {
		if !errors.Is(err, repository.ErrDocumentNotFound) {
			i.logger.Error("Local data probe failed", "error", err)
		}
		return false
	}
	return len(doc.Customers) > 0 || len(doc.Dogs) > 0
}

// CanImport checks the preconditions against the remote session's gateway.
func (i *Importer) CanImport(ctx context.Context, gw *Gateway) bool {
	if len(gw.Customers()) > 0 || len(gw.Dogs()) > 0 {
		return false
	}
	return i.HasLocalData(ctx)
}

// Run reads all four local collections as one snapshot and overwrites the
// remote document with them in a single gateway write.
func (i *Importer) Run(ctx context.Context, gw *Gateway) error {
	local, err := i.local.Load(ctx, "")
	if err != nil {
		return fmt.Errorf("read local data: %w", err)
	}

	snapshot := local.Clone()
	err = gw.apply(ctx, func(doc *entity.Document) {
		doc.Customers = snapshot.Customers
		doc.Dogs = snapshot.Dogs
		doc.Schedules = snapshot.Schedules
		doc.Attendance = snapshot.Attendance
	})
	if err != nil {
		i.logger.Error("Import from local failed", "error", err)
		return err
	}

	if i.metrics != nil {
		i.metrics.ImportsRun.Inc()
	}
	i.logger.Info("Imported local data to remote",
		"customers", len(snapshot.Customers),
		"dogs", len(snapshot.Dogs))
	return nil
}
