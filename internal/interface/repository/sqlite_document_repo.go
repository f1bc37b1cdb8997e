package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
)

// Slot names for the four collections plus the revision counter. Each slot
// holds one JSON payload, the same shape as the corresponding remote field.
const (
	slotCustomers  = "customers"
	slotDogs       = "dogs"
	slotSchedules  = "schedules"
	slotAttendance = "attendance"
	slotRevision   = "revision"
)

// SQLiteDocumentRepository implements the device-local DocumentRepository.
// It is scoped to the device, not to an account, so the account id is
// ignored; its data survives logins and logouts untouched.
type SQLiteDocumentRepository struct {
	db *sql.DB
}

// NewSQLiteDocumentRepository creates the local document repository,
// bootstrapping the slot table if needed.
func NewSQLiteDocumentRepository(db *sql.DB) (repository.DocumentRepository, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			name  TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQLiteDocumentRepository{db: db}, nil
}

// Load reads the four slots into a whole document. A slot that was never
// written reads as an empty collection.
func (r *SQLiteDocumentRepository) Load(ctx context.Context, _ string) (*entity.Document, error) {
	doc := entity.NewDocument()

	if err := r.readSlot(ctx, slotCustomers, &doc.Customers); err != nil {
		return nil, err
	}
	if err := r.readSlot(ctx, slotDogs, &doc.Dogs); err != nil {
		return nil, err
	}
	if err := r.readSlot(ctx, slotSchedules, &doc.Schedules); err != nil {
		return nil, err
	}
	if err := r.readSlot(ctx, slotAttendance, &doc.Attendance); err != nil {
		return nil, err
	}
	if err := r.readSlot(ctx, slotRevision, &doc.Revision); err != nil {
		return nil, err
	}

	doc.Normalize()
	return doc, nil
}

// Save writes all slots in one transaction so the document stays whole.
func (r *SQLiteDocumentRepository) Save(ctx context.Context, _ string, doc *entity.Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	defer tx.Rollback()

	slots := []struct {
		name  string
		value interface{}
	}{
		{slotCustomers, doc.Customers},
		{slotDogs, doc.Dogs},
		{slotSchedules, doc.Schedules},
		{slotAttendance, doc.Attendance},
		{slotRevision, doc.Revision},
	}

	for _, slot := range slots {
		payload, err := json.Marshal(slot.value)
		if err != nil {
			return fmt.Errorf("marshal slot %s: %w", slot.name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slots (name, value) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value
		`, slot.name, string(payload))
		if err != nil {
			return fmt.Errorf("write slot %s: %w", slot.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepository) readSlot(ctx context.Context, name string, out interface{}) error {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read slot %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("decode slot %s: %w", name, err)
	}
	return nil
}
