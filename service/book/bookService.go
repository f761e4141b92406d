package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"librental/model"
	bookrepo "librental/repository/book"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrValidation ErrCode = "VALIDATION"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Book = model.Book
type Author = model.Author

type CreateBook struct {
	BookCode   string
	Name       string
	AuthorID   int64
	Genre      string
	RentPrice  int64
	Copies     int64
	RentalDays int
	CoverPath  *string
	PDFPath    *string
}

type Repo interface {
	ListAvailable(ctx context.Context) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	ByGenre(ctx context.Context, genre string) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (int64, error)
	UpdateColumn(ctx context.Context, id int64, column string, value any) error
	SetCopies(ctx context.Context, id int64, copies int64) error
	Delete(ctx context.Context, id int64) error
	ListAuthors(ctx context.Context) ([]model.Author, error)
	SearchAuthors(ctx context.Context, query string) ([]model.Author, error)
	CreateAuthor(ctx context.Context, name string) (int64, error)
}

type Service interface {
	ListAvailable(ctx context.Context) ([]Book, error)
	Catalog(ctx context.Context) ([]Book, error)
	ByGenre(ctx context.Context, genre string) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
	Create(ctx context.Context, req CreateBook) (int64, error)
	Update(ctx context.Context, id int64, field, value string) error
	Delete(ctx context.Context, id int64) error

	Authors(ctx context.Context) ([]Author, error)
	SearchAuthors(ctx context.Context, query string) ([]Author, error)
	AddAuthor(ctx context.Context, name string) (int64, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) ListAvailable(ctx context.Context) ([]Book, error) {
	return s.r.ListAvailable(ctx)
}

func (s *service) Catalog(ctx context.Context) ([]Book, error) {
	return s.r.ListAll(ctx)
}

// ByGenre signals NotFound when no book matches; an unknown genre is a
// validation problem instead.
func (s *service) ByGenre(ctx context.Context, genre string) ([]Book, error) {
	if !model.ValidGenre(genre) {
		return nil, makeErr(ErrValidation, "unknown genre: "+genre)
	}
	rows, err := s.r.ByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, makeErr(ErrNotFound, "no books in genre "+genre)
	}
	return rows, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "book not found")
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, req CreateBook) (int64, error) {
	if req.BookCode == "" || req.Name == "" || req.AuthorID <= 0 {
		return 0, makeErr(ErrValidation, "book_code, name and author_id are required")
	}
	if !model.ValidGenre(req.Genre) {
		return 0, makeErr(ErrValidation, "unknown genre: "+req.Genre)
	}
	if !model.ValidRentPrice(req.RentPrice) {
		return 0, makeErr(ErrValidation, "rent_price must be 100, 200 or 300")
	}
	if req.Copies < 0 {
		return 0, makeErr(ErrValidation, "copies must not be negative")
	}
	if req.RentalDays <= 0 {
		return 0, makeErr(ErrValidation, "rental_days must be positive")
	}

	b := &model.Book{
		BookCode:   req.BookCode,
		Name:       req.Name,
		AuthorID:   req.AuthorID,
		Genre:      model.Genre(req.Genre),
		RentPrice:  req.RentPrice,
		Status:     model.StatusForCopies(req.Copies),
		Copies:     req.Copies,
		RentalDays: req.RentalDays,
		CoverPath:  req.CoverPath,
		PDFPath:    req.PDFPath,
	}
	return s.r.Create(ctx, b)
}

// Update is the tagged single-field admin patch. Each permitted field
// has its own parser; anything else is rejected. Edits touching the
// availability pair (copies, status) go through SetCopies so
// status == Unavailable <=> copies == 0 survives every mutation.
func (s *service) Update(ctx context.Context, id int64, field, value string) error {
	var err error
	switch field {
	case "book_code", "name":
		if value == "" {
			return makeErr(ErrValidation, field+" must not be empty")
		}
		err = s.r.UpdateColumn(ctx, id, field, value)

	case "author_id":
		aid, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil || aid <= 0 {
			return makeErr(ErrValidation, "author_id must be a positive integer")
		}
		err = s.r.UpdateColumn(ctx, id, field, aid)

	case "genre":
		if !model.ValidGenre(value) {
			return makeErr(ErrValidation, "unknown genre: "+value)
		}
		err = s.r.UpdateColumn(ctx, id, field, value)

	case "rent_price":
		p, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil || !model.ValidRentPrice(p) {
			return makeErr(ErrValidation, "rent_price must be 100, 200 or 300")
		}
		err = s.r.UpdateColumn(ctx, id, field, p)

	case "rental_days":
		d, perr := strconv.Atoi(value)
		if perr != nil || d <= 0 {
			return makeErr(ErrValidation, "rental_days must be a positive integer")
		}
		err = s.r.UpdateColumn(ctx, id, field, d)

	case "copies":
		n, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil || n < 0 {
			return makeErr(ErrValidation, "copies must be a non-negative integer")
		}
		err = s.r.SetCopies(ctx, id, n)

	case "status":
		err = s.updateStatus(ctx, id, value)

	default:
		return makeErr(ErrValidation, "field not editable: "+field)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound, "book not found")
	}
	return err
}

// A status edit may not contradict the copy count.
func (s *service) updateStatus(ctx context.Context, id int64, value string) error {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		return err
	}
	switch model.BookStatus(value) {
	case model.StatusAvailable:
		if b.Copies == 0 {
			return makeErr(ErrValidation, "cannot mark Available with zero copies")
		}
	case model.StatusUnavailable:
		if b.Copies > 0 {
			return makeErr(ErrValidation, fmt.Sprintf("cannot mark Unavailable with %d copies", b.Copies))
		}
	default:
		return makeErr(ErrValidation, "unknown status: "+value)
	}
	// Value already consistent with copies; SetCopies re-derives it.
	return s.r.SetCopies(ctx, id, b.Copies)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound, "book not found")
	}
	return err
}

func (s *service) Authors(ctx context.Context) ([]Author, error) {
	return s.r.ListAuthors(ctx)
}

func (s *service) SearchAuthors(ctx context.Context, query string) ([]Author, error) {
	return s.r.SearchAuthors(ctx, query)
}

func (s *service) AddAuthor(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, makeErr(ErrValidation, "name is required")
	}
	return s.r.CreateAuthor(ctx, name)
}

var _ Repo = (bookrepo.Repo)(nil)
