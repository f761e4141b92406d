package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librental/model"
	bookrepo "librental/repository/book"
	rentalrepo "librental/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrMembershipRequired ErrCode = "MEMBERSHIP_REQUIRED"
	ErrBookUnavailable    ErrCode = "BOOK_UNAVAILABLE"
	ErrBookNotFound       ErrCode = "BOOK_NOT_FOUND"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type Receipt struct {
	RentalID        int64     `json:"rental_id"`
	BookID          int64     `json:"book_id"`
	BookName        string    `json:"book_name"`
	RentalDays      int       `json:"rental_days"`
	RentalStartDate time.Time `json:"rental_start_date"`
	RentalEndDate   time.Time `json:"rental_end_date"`
}

// HistoryRow = repository shape
type HistoryRow = rentalrepo.HistoryRow

type OverdueEntry struct {
	HistoryRow
	OverdueDays int `json:"overdue_days"`
}

// collaborator interfaces, satisfied by the repos and the membership
// service

type Books interface {
	ListAvailable(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Membership interface {
	HasActiveMembership(ctx context.Context, userID int64, asOf time.Time) (bool, error)
}

type Rentals interface {
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]HistoryRow, error)
	ListEndedBefore(ctx context.Context, day time.Time) ([]HistoryRow, error)
}

// TxStore runs the claim-and-record step: decrement one copy and
// insert the rental atomically.
type TxStore interface {
	RentCopy(ctx context.Context, bookID int64, r *model.Rental) (int64, error)
}

// SQLStore is the Postgres TxStore: the conditional decrement and the
// rental insert share one transaction.
type SQLStore struct {
	DB      *sql.DB
	Books   bookrepo.Repo
	Rentals rentalrepo.Repo
}

func (s *SQLStore) RentCopy(ctx context.Context, bookID int64, r *model.Rental) (id int64, err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.Books.ClaimCopy(ctx, tx, bookID); err != nil {
		return 0, err
	}
	if id, err = s.Rentals.Insert(ctx, tx, r); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ----- Service implementation -----

type Service interface {
	// RentableBooks lists Available books, gated on active membership.
	RentableBooks(ctx context.Context, userID int64) ([]model.Book, error)

	// Rent executes the full rental attempt for one book.
	Rent(ctx context.Context, userID, bookID int64) (*Receipt, error)

	MyRentals(ctx context.Context, userID int64) ([]HistoryRow, error)
	Borrowed(ctx context.Context) ([]HistoryRow, error)
	OverdueBooks(ctx context.Context) ([]OverdueEntry, error)
}

type service struct {
	books      Books
	users      Users
	rentals    Rentals
	membership Membership
	store      TxStore
}

func New(books Books, users Users, rentals Rentals, membership Membership, store TxStore) Service {
	return &service{books: books, users: users, rentals: rentals, membership: membership, store: store}
}

func (s *service) RentableBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	ok, err := s.membership.HasActiveMembership(ctx, userID, today())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrMembershipRequired)
	}
	return s.books.ListAvailable(ctx)
}

// Rent checks membership and availability, claims a copy and records
// the rental with computed dates.
func (s *service) Rent(ctx context.Context, userID, bookID int64) (*Receipt, error) {
	start := today()

	ok, err := s.membership.HasActiveMembership(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrMembershipRequired)
	}

	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrUserNotFound)
		}
		return nil, err
	}

	b, err := s.books.Detail(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}
	if b.Status != model.StatusAvailable || b.Copies <= 0 {
		return nil, makeErr(ErrBookUnavailable)
	}

	r := &model.Rental{
		UserID:          userID,
		BookID:          bookID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		RentalStartDate: start,
		RentalEndDate:   start.AddDate(0, 0, b.RentalDays),
	}

	// The claim is the authoritative availability check; the read
	// above is only a fast path for a friendlier error.
	id, err := s.store.RentCopy(ctx, bookID, r)
	if err != nil {
		if errors.Is(err, bookrepo.ErrNoCopies) {
			return nil, makeErr(ErrBookUnavailable)
		}
		return nil, err
	}

	return &Receipt{
		RentalID:        id,
		BookID:          bookID,
		BookName:        b.Name,
		RentalDays:      b.RentalDays,
		RentalStartDate: r.RentalStartDate,
		RentalEndDate:   r.RentalEndDate,
	}, nil
}

func (s *service) MyRentals(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return s.rentals.ListByUser(ctx, userID)
}

func (s *service) Borrowed(ctx context.Context) ([]HistoryRow, error) {
	return s.rentals.ListAll(ctx)
}

func (s *service) OverdueBooks(ctx context.Context) ([]OverdueEntry, error) {
	asOf := today()
	rows, err := s.rentals.ListEndedBefore(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return Overdue(rows, asOf), nil
}

// Overdue keeps the rentals whose end date has passed as of asOf and
// attaches the whole-day overdue count. Pure, no mutation.
func Overdue(rows []HistoryRow, asOf time.Time) []OverdueEntry {
	asOfDay := dateOf(asOf)
	var out []OverdueEntry
	for _, r := range rows {
		end := dateOf(r.EndDate)
		if !end.Before(asOfDay) {
			continue
		}
		out = append(out, OverdueEntry{
			HistoryRow:  r,
			OverdueDays: int(asOfDay.Sub(end).Hours() / 24),
		})
	}
	return out
}

func today() time.Time { return dateOf(time.Now().UTC()) }

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
