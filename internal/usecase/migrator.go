package usecase

import (
	"context"
	"time"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/metrics"
	"hundvakt-service/pkg/utils"
)

// unknownOwnerName is the placeholder for dogs whose legacy record only
// carried a phone number.
const unknownOwnerName = "Okänd Ägare"

// Migrator rewrites dogs that still embed owner contact details into the
// customer-reference shape. For every such dog it synthesizes a customer,
// points the dog at it and drops the legacy fields. Customers and dogs are
// written together in one gateway update so a crash mid-migration can never
// leave a dog referencing a customer that was not persisted.
//
// Running it again on migrated data is a no-op: no dog carries legacy
// fields anymore.
type Migrator struct {
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// NewMigrator creates a new legacy owner migrator
func NewMigrator(log logger.Logger, m *metrics.Metrics) *Migrator {
	return &Migrator{
		logger:  log,
		metrics: m,
		now:     time.Now,
		newID:   utils.NewID,
	}
}

// Run performs the migration through the gateway if any dog needs it.
// It reports whether a migration write was committed.
func (m *Migrator) Run(ctx context.Context, gw *Gateway) (bool, error) {
	needed := false
	for _, dog := range gw.Dogs() {
		if dog.HasLegacyOwner() {
			needed = true
			break
		}
	}
	if !needed {
		return false, nil
	}

	migrated := 0
	err := gw.apply(ctx, func(doc *entity.Document) {
		for i := range doc.Dogs {
			dog := &doc.Dogs[i]
			if !dog.HasLegacyOwner() {
				continue
			}

			owner := entity.Customer{
				ID:        m.newID(),
				Name:      dog.OwnerName,
				Phone:     dog.OwnerPhone,
				CreatedAt: m.now(),
			}
			if owner.Name == "" {
				owner.Name = unknownOwnerName
			}

			doc.Customers = append(doc.Customers, owner)
			dog.CustomerID = owner.ID
			dog.OwnerName = ""
			dog.OwnerPhone = ""
			migrated++
		}
	})
	if err != nil {
		m.logger.Error("Legacy owner migration failed", "error", err)
		return false, err
	}

	if m.metrics != nil {
		m.metrics.MigrationsRun.Inc()
	}
	m.logger.Info("Migrated legacy owner fields", "dogs", migrated)
	return true, nil
}
