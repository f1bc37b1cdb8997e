package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

// fakeDocumentRepo is an in-memory DocumentRepository with switchable
// failure modes, shared by the usecase tests.
type fakeDocumentRepo struct {
	mu      sync.Mutex
	docs    map[string]*entity.Document
	saves   int
	saveErr error
	loadErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*entity.Document)}
}

func (f *fakeDocumentRepo) Load(_ context.Context, accountID string) (*entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	doc, ok := f.docs[accountID]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	return doc.Clone(), nil
}

func (f *fakeDocumentRepo) Save(_ context.Context, accountID string, doc *entity.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.docs[accountID] = doc.Clone()
	return nil
}

func (f *fakeDocumentRepo) stored(accountID string) *entity.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[accountID]
	if !ok {
		return nil
	}
	return doc.Clone()
}

func (f *fakeDocumentRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func newTestGateway(repo repository.DocumentRepository) *Gateway {
	return NewGateway(repo, "acct-1", entity.NewDocument(), logger.NewNop(), nil)
}

func TestGateway_AddCustomersPreservesOrder(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	a := entity.Customer{ID: "c1", Name: "A", CreatedAt: time.Now()}
	b := entity.Customer{ID: "c2", Name: "B", CreatedAt: time.Now()}

	require.NoError(t, gw.AddCustomer(ctx, a))
	require.NoError(t, gw.AddCustomer(ctx, b))

	customers := gw.Customers()
	require.Len(t, customers, 2)
	require.Equal(t, "A", customers[0].Name)
	require.Equal(t, "B", customers[1].Name)
}

func TestGateway_RemoveKeepsRemainingOrder(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, gw.AddCustomer(ctx, entity.Customer{ID: id, Name: id}))
	}
	require.NoError(t, gw.RemoveCustomer(ctx, "c2"))

	customers := gw.Customers()
	require.Len(t, customers, 2)
	require.Equal(t, "c1", customers[0].ID)
	require.Equal(t, "c3", customers[1].ID)
}

func TestGateway_UpdateDogReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.NoError(t, gw.AddDog(ctx, entity.Dog{ID: "d1", Name: "Buddy", DailyPrice: 100}))
	require.NoError(t, gw.AddDog(ctx, entity.Dog{ID: "d2", Name: "Rex", DailyPrice: 150}))

	require.NoError(t, gw.UpdateDog(ctx, "d1", entity.Dog{ID: "d1", Name: "Buddy", DailyPrice: 120}))

	dogs := gw.Dogs()
	require.Equal(t, "d1", dogs[0].ID)
	require.Equal(t, float64(120), dogs[0].DailyPrice)
	require.Equal(t, "d2", dogs[1].ID)
}

func TestGateway_SaveFailureRollsBackWholeDocument(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDocumentRepo()
	gw := newTestGateway(repo)

	require.NoError(t, gw.AddCustomer(ctx, entity.Customer{ID: "c1", Name: "A"}))
	before := gw.Snapshot()

	repo.saveErr = errors.New("backend down")
	err := gw.AddCustomer(ctx, entity.Customer{ID: "c2", Name: "C"})
	require.Error(t, err)

	after := gw.Snapshot()
	require.Equal(t, before, after)
	require.Len(t, gw.Customers(), 1)
	require.Equal(t, before.Revision, gw.Revision())

	// Backend recovers, the next write goes through.
	repo.saveErr = nil
	require.NoError(t, gw.AddCustomer(ctx, entity.Customer{ID: "c2", Name: "C"}))
	require.Len(t, gw.Customers(), 2)
}

func TestGateway_RevisionIncreasesPerCommit(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.Equal(t, int64(0), gw.Revision())
	require.NoError(t, gw.AddCustomer(ctx, entity.Customer{ID: "c1"}))
	require.Equal(t, int64(1), gw.Revision())
	require.NoError(t, gw.AddDog(ctx, entity.Dog{ID: "d1"}))
	require.Equal(t, int64(2), gw.Revision())
}

func TestGateway_SnapshotIsIsolatedFromCache(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.NoError(t, gw.SaveWeek(ctx, "2024-W10", entity.WeekSchedule{
		"dogX": {Days: []string{"Måndag"}},
	}))

	snap := gw.Snapshot()
	snap.Schedules["2024-W10"]["dogX"].Days[0] = "Fredag"
	snap.Customers = append(snap.Customers, entity.Customer{ID: "rogue"})

	require.Equal(t, []string{"Måndag"}, gw.Schedules()["2024-W10"]["dogX"].Days)
	require.Empty(t, gw.Customers())
}

func TestGateway_RemoveCustomerAndDogsIsOneWrite(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDocumentRepo()
	gw := newTestGateway(repo)

	require.NoError(t, gw.AddCustomer(ctx, entity.Customer{ID: "c1", Name: "Anna"}))
	require.NoError(t, gw.AddDog(ctx, entity.Dog{ID: "d1", Name: "Buddy", CustomerID: "c1"}))
	require.NoError(t, gw.AddDog(ctx, entity.Dog{ID: "d2", Name: "Rex", CustomerID: "other"}))
	savesBefore := repo.saveCount()

	require.NoError(t, gw.RemoveCustomerAndDogs(ctx, "c1"))

	require.Equal(t, savesBefore+1, repo.saveCount())
	require.Empty(t, gw.Customers())
	dogs := gw.Dogs()
	require.Len(t, dogs, 1)
	require.Equal(t, "d2", dogs[0].ID)
}
