package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/internal/infrastructure/persistence"

	"github.com/stretchr/testify/require"
)

func openLocalRepo(t *testing.T, path string) repository.DocumentRepository {
	t.Helper()
	db, err := persistence.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteDocumentRepository(db)
	require.NoError(t, err)
	return repo
}

func TestSQLiteDocumentRepository_FreshDatabaseReadsEmpty(t *testing.T) {
	repo := openLocalRepo(t, filepath.Join(t.TempDir(), "local.db"))

	doc, err := repo.Load(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, doc.Customers)
	require.Empty(t, doc.Dogs)
	require.Empty(t, doc.Schedules)
	require.Empty(t, doc.Attendance)
	require.Zero(t, doc.Revision)
}

func TestSQLiteDocumentRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openLocalRepo(t, filepath.Join(t.TempDir(), "local.db"))

	doc := entity.NewDocument()
	doc.Customers = []entity.Customer{
		{ID: "c1", Name: "Anna", Phone: "070-1", CreatedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)},
	}
	doc.Dogs = []entity.Dog{
		{ID: "d1", Name: "Buddy", DailyPrice: 100, CustomerID: "c1", CreatedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)},
	}
	doc.Schedules = entity.ScheduleBook{
		"2024-W10": {"d1": {Days: []string{"Måndag"}, DropOffTime: "08:00"}},
	}
	doc.Attendance = entity.AttendanceBook{
		"2024-03-04": {"d1": {CheckedIn: true, CheckInTime: "08:05"}},
	}
	doc.Revision = 3

	require.NoError(t, repo.Save(ctx, "", doc))

	loaded, err := repo.Load(ctx, "")
	require.NoError(t, err)
	require.Equal(t, doc, loaded)
}

func TestSQLiteDocumentRepository_DataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	repo := openLocalRepo(t, path)
	doc := entity.NewDocument()
	doc.Customers = []entity.Customer{{ID: "c1", Name: "Anna"}}
	require.NoError(t, repo.Save(ctx, "", doc))

	reopened := openLocalRepo(t, path)
	loaded, err := reopened.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, loaded.Customers, 1)
	require.Equal(t, "Anna", loaded.Customers[0].Name)
}

func TestSQLiteDocumentRepository_SaveOverwritesWholeDocument(t *testing.T) {
	ctx := context.Background()
	repo := openLocalRepo(t, filepath.Join(t.TempDir(), "local.db"))

	first := entity.NewDocument()
	first.Customers = []entity.Customer{{ID: "c1", Name: "Anna"}, {ID: "c2", Name: "Bert"}}
	require.NoError(t, repo.Save(ctx, "", first))

	second := entity.NewDocument()
	second.Customers = []entity.Customer{{ID: "c3", Name: "Cilla"}}
	second.Revision = 2
	require.NoError(t, repo.Save(ctx, "", second))

	loaded, err := repo.Load(ctx, "")
	require.NoError(t, err)
	require.Equal(t, second, loaded)
}

func TestSQLiteDocumentRepository_IgnoresAccountID(t *testing.T) {
	ctx := context.Background()
	repo := openLocalRepo(t, filepath.Join(t.TempDir(), "local.db"))

	doc := entity.NewDocument()
	doc.Dogs = []entity.Dog{{ID: "d1", Name: "Buddy"}}
	require.NoError(t, repo.Save(ctx, "acct-1", doc))

	// The store is device scoped: any account id reads the same data.
	loaded, err := repo.Load(ctx, "someone-else")
	require.NoError(t, err)
	require.Len(t, loaded.Dogs, 1)
}
