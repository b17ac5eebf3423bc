package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"path/filepath"
	"testing"

	"aptbooking/internal/database"
	"aptbooking/internal/domain"
	"aptbooking/internal/repository"
	"aptbooking/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type engineFixture struct {
	db         *gorm.DB
	svc        *Service
	store      *GormStore
	users      *repository.UserRepository
	apartments *repository.ApartmentRepository
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	store := NewGormStore(db)
	return &engineFixture{
		db:         db,
		svc:        NewService(store, zap.NewNop()),
		store:      store,
		users:      repository.NewUserRepository(db),
		apartments: repository.NewApartmentRepository(db),
	}
}

func (f *engineFixture) user(t *testing.T, phone string) *domain.User {
	t.Helper()
	u := &domain.User{Phone: phone, Name: "Tenant", PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *engineFixture) apartment(t *testing.T, seq int) *domain.Apartment {
	t.Helper()
	a := &domain.Apartment{SequenceNumber: seq, Type: domain.ApartmentStudio}
	require.NoError(t, f.apartments.Create(context.Background(), a))
	return a
}

func (f *engineFixture) reload(t *testing.T, id string) *domain.Apartment {
	t.Helper()
	a, err := f.apartments.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, a.LeaseConsistent(), "lease fields drifted: %+v", a)
	return a
}

func TestEngine_Scenario(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u1 := f.user(t, "+77010000001")
	u2 := f.user(t, "+77010000002")

	_, err := f.svc.Reserve(ctx, a.ID, u1.ID, jan1, jan5)
	require.NoError(t, err)
	got := f.reload(t, a.ID)
	assert.True(t, got.OwnedBy(u1.ID))

	_, err = f.svc.Reserve(ctx, a.ID, u2.ID, jan1, jan5)
	assert.ErrorIs(t, err, ErrAlreadyReserved)
	assert.True(t, f.reload(t, a.ID).OwnedBy(u1.ID))

	_, err = f.svc.Unreserve(ctx, a.ID, u2.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.True(t, f.reload(t, a.ID).OwnedBy(u1.ID))

	_, err = f.svc.Unreserve(ctx, a.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateVacant, f.reload(t, a.ID).State())
}

func TestEngine_RoundTripRestoresVacantState(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u := f.user(t, "+77010000001")
	before := f.reload(t, a.ID)

	_, err := f.svc.Reserve(ctx, a.ID, u.ID, jan1, jan5)
	require.NoError(t, err)
	_, err = f.svc.Unreserve(ctx, a.ID, u.ID)
	require.NoError(t, err)

	after := f.reload(t, a.ID)
	assert.Equal(t, before.IsOccupied, after.IsOccupied)
	assert.Nil(t, after.CurrentOwnerID)
	assert.Nil(t, after.LeaseStartDate)
	assert.Nil(t, after.LeaseEndDate)
	assert.Equal(t, before.SequenceNumber, after.SequenceNumber)
	assert.Equal(t, before.Type, after.Type)

	mine, err := f.svc.FindMyReservations(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestEngine_FindMyReservationsIgnoresOrder(t *testing.T) {
	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			f := newEngine(t)
			ctx := context.Background()

			u := f.user(t, "+77010000001")
			other := f.user(t, "+77010000002")
			apts := []*domain.Apartment{f.apartment(t, 1), f.apartment(t, 2)}
			foreign := f.apartment(t, 3)

			for _, i := range order {
				_, err := f.svc.Reserve(ctx, apts[i].ID, u.ID, jan1, jan5)
				require.NoError(t, err)
			}
			_, err := f.svc.Reserve(ctx, foreign.ID, other.ID, jan1, jan5)
			require.NoError(t, err)

			mine, err := f.svc.FindMyReservations(ctx, u.ID)
			require.NoError(t, err)
			ids := []string{}
			for _, a := range mine {
				ids = append(ids, a.ID)
			}
			assert.ElementsMatch(t, []string{apts[0].ID, apts[1].ID}, ids)
		})
	}
}

func TestEngine_EmptyWindowLeavesStateUntouched(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u := f.user(t, "+77010000001")

	_, err := f.svc.Reserve(ctx, a.ID, u.ID, jan1, jan1)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	assert.Equal(t, domain.StateVacant, f.reload(t, a.ID).State())
	assert.EqualValues(t, 1, f.reload(t, a.ID).Version)
}

func TestEngine_NotFound(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u := f.user(t, "+77010000001")

	_, err := f.svc.Reserve(ctx, "missing", u.ID, jan1, jan5)
	assert.ErrorIs(t, err, ErrApartmentNotFound)

	_, err = f.svc.Reserve(ctx, a.ID, "missing", jan1, jan5)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.Unreserve(ctx, a.ID, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Equal(t, domain.StateVacant, f.reload(t, a.ID).State())
}

func TestEngine_ReleaseByAdmin(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u := f.user(t, "+77010000001")

	_, err := f.svc.Release(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotReserved)

	_, err = f.svc.Reserve(ctx, a.ID, u.ID, jan1, jan5)
	require.NoError(t, err)

	_, err = f.svc.Release(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateVacant, f.reload(t, a.ID).State())
}

func TestEngine_ConcurrentReserveSingleWinner(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	const n = 8
	tenants := make([]*domain.User, n)
	for i := range tenants {
		tenants[i] = f.user(t, fmt.Sprintf("+7701000010%d", i))
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins []string
		errs []error
	)
	start := make(chan struct{})
	for _, u := range tenants {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			<-start
			_, err := f.svc.Reserve(ctx, a.ID, userID, jan1, jan5)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins = append(wins, userID)
				return
			}
			errs = append(errs, err)
		}(u.ID)
	}
	close(start)
	wg.Wait()

	require.Len(t, wins, 1)
	for _, err := range errs {
		assert.True(t, errors.Is(err, ErrAlreadyReserved) || errors.Is(err, ErrConcurrentUpdate), "unexpected error: %v", err)
	}

	got := f.reload(t, a.ID)
	assert.True(t, got.OwnedBy(wins[0]))
	assert.EqualValues(t, 2, got.Version)
}

func TestEngine_AtomicRollsBackOnError(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u := f.user(t, "+77010000001")
	boom := errors.New("second write failed")

	err := f.store.Atomic(ctx, func(tx Store) error {
		locked, err := tx.GetApartmentForUpdate(ctx, a.ID)
		if err != nil {
			return err
		}
		if err := locked.Lease(u.ID, jan1, jan5); err != nil {
			return err
		}
		if err := tx.UpdateApartment(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got := f.reload(t, a.ID)
	assert.Equal(t, domain.StateVacant, got.State())
	assert.EqualValues(t, 1, got.Version)
}

func TestEngine_DeletedUserLeavesNoOrphanLease(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	a := f.apartment(t, 1)
	u := f.user(t, "+77010000001")

	_, err := f.svc.Reserve(ctx, a.ID, u.ID, jan1, jan5)
	require.NoError(t, err)

	_, err = f.users.Delete(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StateVacant, f.reload(t, a.ID).State())

	_, err = f.svc.Reserve(ctx, a.ID, u.ID, jan1, jan5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEngine_ConcurrentReserveOnDefaultStoreReportsConflict(t *testing.T) {
	ctx := context.Background()

	db, err := database.Connect(filepath.Join(t.TempDir(), "apartments.db"), zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepository(db)
	apartments := repository.NewApartmentRepository(db)
	svc := NewService(NewGormStore(db), zap.NewNop())

	for round := 0; round < 5; round++ {
		a := &domain.Apartment{SequenceNumber: round + 1, Type: domain.ApartmentStudio}
		require.NoError(t, apartments.Create(ctx, a))

		const n = 8
		ids := make([]string, n)
		for i := range ids {
			u := &domain.User{Phone: fmt.Sprintf("+770200%02d%02d", round, i), Name: "Tenant", PasswordHash: "x", Role: domain.RoleUser}
			require.NoError(t, users.Create(ctx, u))
			ids[i] = u.ID
		}

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			results = map[string]int{}
		)
		start := make(chan struct{})
		for _, id := range ids {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				<-start
				_, err := svc.Reserve(ctx, a.ID, userID, jan1, jan5)

				mu.Lock()
				defer mu.Unlock()
				results[outcome(err)]++
				if err != nil && outcome(err) != "conflict" {
					t.Errorf("round %d: unexpected error: %v", round, err)
				}
			}(id)
		}
		close(start)
		wg.Wait()

		assert.Equal(t, map[string]int{"ok": 1, "conflict": n - 1}, results, "round %d", round)
	}
}
