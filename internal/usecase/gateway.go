package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/metrics"
)

// Gateway is the single path every collection edit flows through. It owns
// the snapshot cache: the last committed whole document, which is always the
// base for the next mutation so back-to-back edits never compute from a
// stale value.
//
// Writers are serialized through writeMu, one pending write at a time. Each
// write clones the snapshot, applies its transform, publishes the result
// optimistically, then persists the whole document. A failed persist
// restores the previous snapshot in full and reports the failure; nothing is
// retried here.
type Gateway struct {
	repo      repository.DocumentRepository
	accountID string
	logger    logger.Logger
	metrics   *metrics.Metrics

	writeMu sync.Mutex

	mu       sync.RWMutex
	snapshot *entity.Document
}

// NewGateway creates a gateway over the chosen backend, seeded with the
// initially loaded document.
func NewGateway(repo repository.DocumentRepository, accountID string, initial *entity.Document, log logger.Logger, m *metrics.Metrics) *Gateway {
	initial.Normalize()
	return &Gateway{
		repo:      repo,
		accountID: accountID,
		logger:    log,
		metrics:   m,
		snapshot:  initial,
	}
}

// Snapshot returns a deep copy of the current committed document. Callers
// may mutate the copy freely.
func (g *Gateway) Snapshot() *entity.Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot.Clone()
}

// Customers returns a copy of the customer list in insertion order.
func (g *Gateway) Customers() []entity.Customer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]entity.Customer{}, g.snapshot.Customers...)
}

// Dogs returns a copy of the dog list in insertion order.
func (g *Gateway) Dogs() []entity.Dog {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]entity.Dog{}, g.snapshot.Dogs...)
}

// Schedules returns a deep copy of all week schedules.
func (g *Gateway) Schedules() entity.ScheduleBook {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot.Schedules.Clone()
}

// Attendance returns a deep copy of all attendance days.
func (g *Gateway) Attendance() entity.AttendanceBook {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot.Attendance.Clone()
}

// Revision returns the committed document revision.
func (g *Gateway) Revision() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot.Revision
}

func (g *Gateway) setSnapshot(doc *entity.Document) {
	g.mu.Lock()
	g.snapshot = doc
	g.mu.Unlock()
}

// apply runs one serialized mutation: clone the committed document, let the
// transform rewrite it, publish optimistically, persist, roll back on error.
func (g *Gateway) apply(ctx context.Context, transform func(doc *entity.Document)) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.RLock()
	prev := g.snapshot
	g.mu.RUnlock()

	next := prev.Clone()
	transform(next)
	next.Revision = prev.Revision + 1

	// Optimistic publish: readers observe the change before persistence
	// completes.
	g.setSnapshot(next)

	start := time.Now()
	if err := g.repo.Save(ctx, g.accountID, next); err != nil {
		g.setSnapshot(prev)
		if g.metrics != nil {
			g.metrics.SaveFailures.Inc()
			g.metrics.Rollbacks.Inc()
		}
		g.logger.Error("Document save failed, rolled back",
			"account", g.accountID,
			"revision", next.Revision,
			"error", err)
		return fmt.Errorf("save document: %w", err)
	}

	if g.metrics != nil {
		g.metrics.DocumentsSaved.Inc()
		g.metrics.SaveTime.Observe(time.Since(start).Seconds())
	}
	return nil
}

// UpdateCustomers rewrites the customer list through fn.
func (g *Gateway) UpdateCustomers(ctx context.Context, fn func([]entity.Customer) []entity.Customer) error {
	return g.apply(ctx, func(doc *entity.Document) {
		doc.Customers = fn(doc.Customers)
	})
}

// UpdateDogs rewrites the dog list through fn.
func (g *Gateway) UpdateDogs(ctx context.Context, fn func([]entity.Dog) []entity.Dog) error {
	return g.apply(ctx, func(doc *entity.Document) {
		doc.Dogs = fn(doc.Dogs)
	})
}

// UpdateSchedules rewrites the schedule book through fn.
func (g *Gateway) UpdateSchedules(ctx context.Context, fn func(entity.ScheduleBook) entity.ScheduleBook) error {
	return g.apply(ctx, func(doc *entity.Document) {
		doc.Schedules = fn(doc.Schedules)
	})
}

// UpdateAttendance rewrites the attendance book through fn.
func (g *Gateway) UpdateAttendance(ctx context.Context, fn func(entity.AttendanceBook) entity.AttendanceBook) error {
	return g.apply(ctx, func(doc *entity.Document) {
		doc.Attendance = fn(doc.Attendance)
	})
}

// AddCustomer appends a customer, preserving insertion order.
func (g *Gateway) AddCustomer(ctx context.Context, customer entity.Customer) error {
	return g.UpdateCustomers(ctx, func(prev []entity.Customer) []entity.Customer {
		return append(prev, customer)
	})
}

// UpdateCustomer replaces the customer with the same id in place.
func (g *Gateway) UpdateCustomer(ctx context.Context, id string, updated entity.Customer) error {
	return g.UpdateCustomers(ctx, func(prev []entity.Customer) []entity.Customer {
		out := make([]entity.Customer, 0, len(prev))
		for _, c := range prev {
			if c.ID == id {
				out = append(out, updated)
			} else {
				out = append(out, c)
			}
		}
		return out
	})
}

// RemoveCustomer filters the customer out by id.
func (g *Gateway) RemoveCustomer(ctx context.Context, id string) error {
	return g.UpdateCustomers(ctx, func(prev []entity.Customer) []entity.Customer {
		out := make([]entity.Customer, 0, len(prev))
		for _, c := range prev {
			if c.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
}

// RemoveCustomerAndDogs removes a customer and every dog referencing it in
// one combined write, so the document never holds a dog pointing at a
// customer that is already gone.
func (g *Gateway) RemoveCustomerAndDogs(ctx context.Context, id string) error {
	return g.apply(ctx, func(doc *entity.Document) {
		dogs := make([]entity.Dog, 0, len(doc.Dogs))
		for _, d := range doc.Dogs {
			if d.CustomerID != id {
				dogs = append(dogs, d)
			}
		}
		doc.Dogs = dogs

		customers := make([]entity.Customer, 0, len(doc.Customers))
		for _, c := range doc.Customers {
			if c.ID != id {
				customers = append(customers, c)
			}
		}
		doc.Customers = customers
	})
}

// AddDog appends a dog, preserving insertion order.
func (g *Gateway) AddDog(ctx context.Context, dog entity.Dog) error {
	return g.UpdateDogs(ctx, func(prev []entity.Dog) []entity.Dog {
		return append(prev, dog)
	})
}

// UpdateDog replaces the dog with the same id in place.
func (g *Gateway) UpdateDog(ctx context.Context, id string, updated entity.Dog) error {
	return g.UpdateDogs(ctx, func(prev []entity.Dog) []entity.Dog {
		out := make([]entity.Dog, 0, len(prev))
		for _, d := range prev {
			if d.ID == id {
				out = append(out, updated)
			} else {
				out = append(out, d)
			}
		}
		return out
	})
}

// RemoveDog filters the dog out by id.
func (g *Gateway) RemoveDog(ctx context.Context, id string) error {
	return g.UpdateDogs(ctx, func(prev []entity.Dog) []entity.Dog {
		out := make([]entity.Dog, 0, len(prev))
		for _, d := range prev {
			if d.ID != id {
				out = append(out, d)
			}
		}
		return out
	})
}
