package rentalsvc

import (
	"context"
	"sync"
	"testing"
	"time"

	"librental/model"
	bookrepo "librental/repository/book"

	"github.com/stretchr/testify/require"
)

type fakeBooks struct {
	book *model.Book
}

func (f *fakeBooks) ListAvailable(ctx context.Context) ([]model.Book, error) {
	if f.book == nil {
		return nil, nil
	}
	return []model.Book{*f.book}, nil
}

func (f *fakeBooks) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b := *f.book
	return &b, nil
}

type fakeUsers struct{ user model.User }

func (f *fakeUsers) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := f.user
	u.ID = id
	return &u, nil
}

type fakeMembership struct{ active bool }

func (f *fakeMembership) HasActiveMembership(ctx context.Context, userID int64, asOf time.Time) (bool, error) {
	return f.active, nil
}

type fakeRentals struct {
	rows []HistoryRow
}

func (f *fakeRentals) ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return f.rows, nil
}
func (f *fakeRentals) ListAll(ctx context.Context) ([]HistoryRow, error) { return f.rows, nil }
func (f *fakeRentals) ListEndedBefore(ctx context.Context, day time.Time) ([]HistoryRow, error) {
	return f.rows, nil
}

// fakeStore mimics the conditional decrement: the check and the
// decrement happen under one lock, like the single UPDATE in Postgres.
type fakeStore struct {
	mu      sync.Mutex
	copies  int64
	nextID  int64
	created []*model.Rental
}

func (f *fakeStore) RentCopy(ctx context.Context, bookID int64, r *model.Rental) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.copies <= 0 {
		return 0, bookrepo.ErrNoCopies
	}
	f.copies--
	f.nextID++
	f.created = append(f.created, r)
	return f.nextID, nil
}

func newTestService(book *model.Book, active bool, store *fakeStore) Service {
	return New(
		&fakeBooks{book: book},
		&fakeUsers{user: model.User{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"}},
		&fakeRentals{},
		&fakeMembership{active: active},
		store,
	)
}

func availableBook(copies int64, rentalDays int) *model.Book {
	return &model.Book{
		ID: 1, Name: "Dracula", Status: model.StatusAvailable,
		Copies: copies, RentalDays: rentalDays,
	}
}

func TestRent_Success(t *testing.T) {
	store := &fakeStore{copies: 2}
	svc := newTestService(availableBook(2, 7), true, store)

	out, err := svc.Rent(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Equal(t, "Dracula", out.BookName)
	require.Equal(t, 7, out.RentalDays)
	require.Equal(t, out.RentalStartDate.AddDate(0, 0, 7), out.RentalEndDate)

	require.Len(t, store.created, 1)
	r := store.created[0]
	require.Equal(t, int64(5), r.UserID)
	require.Equal(t, "Asha", r.FirstName)
	require.Equal(t, "asha@example.com", r.Email)
	require.Equal(t, r.RentalStartDate.AddDate(0, 0, 7), r.RentalEndDate)
}

func TestRent_MembershipRequired(t *testing.T) {
	store := &fakeStore{copies: 2}
	svc := newTestService(availableBook(2, 7), false, store)

	_, err := svc.Rent(context.Background(), 5, 1)
	require.Equal(t, ErrMembershipRequired, Code(err))
	require.Empty(t, store.created, "no rental may be recorded without membership")
}

func TestRent_Unavailable(t *testing.T) {
	book := availableBook(0, 7)
	book.Status = model.StatusUnavailable
	svc := newTestService(book, true, &fakeStore{copies: 0})

	_, err := svc.Rent(context.Background(), 5, 1)
	require.Equal(t, ErrBookUnavailable, Code(err))
}

// The read-then-claim race: every attempt sees a positive copy count,
// but the claim itself is atomic, so the last copy goes to exactly one
// renter and the count never dips below zero.
func TestRent_LastCopyRace(t *testing.T) {
	const attempts = 8

	store := &fakeStore{copies: 1}
	svc := newTestService(availableBook(1, 7), true, store)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Rent(context.Background(), int64(i+1), 1)
		}(i)
	}
	wg.Wait()

	var won, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case Code(err) == ErrBookUnavailable:
			unavailable++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, attempts-1, unavailable)
	require.Equal(t, int64(0), store.copies)
	require.Len(t, store.created, 1)
}

func TestRentableBooks_Gate(t *testing.T) {
	svc := newTestService(availableBook(2, 7), false, &fakeStore{})
	_, err := svc.RentableBooks(context.Background(), 5)
	require.Equal(t, ErrMembershipRequired, Code(err))

	svc = newTestService(availableBook(2, 7), true, &fakeStore{})
	rows, err := svc.RentableBooks(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestOverdue(t *testing.T) {
	asOf := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return asOf.AddDate(0, 0, d) }

	rows := []HistoryRow{
		{RentalID: 1, EndDate: day(-3)},
		{RentalID: 2, EndDate: day(0)},
		{RentalID: 3, EndDate: day(1)},
		{RentalID: 4, EndDate: day(-1)},
	}

	out := Overdue(rows, asOf)
	require.Len(t, out, 2)
	require.Equal(t, int64(1), out[0].RentalID)
	require.Equal(t, 3, out[0].OverdueDays)
	require.Equal(t, int64(4), out[1].RentalID)
	require.Equal(t, 1, out[1].OverdueDays)
}

func TestOverdue_Empty(t *testing.T) {
	require.Empty(t, Overdue(nil, time.Now()))
}
