package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"librental/model"
)

// ErrNoCopies is returned by ClaimCopy when the conditional decrement
// matched no row (book missing, Unavailable, or out of copies).
var ErrNoCopies = errors.New("no copies available")

type Repo interface {
	ListAvailable(ctx context.Context) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	ByGenre(ctx context.Context, genre string) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (int64, error)
	UpdateColumn(ctx context.Context, id int64, column string, value any) error
	SetCopies(ctx context.Context, id int64, copies int64) error
	Delete(ctx context.Context, id int64) error

	ClaimCopy(ctx context.Context, tx *sql.Tx, bookID int64) error

	ListAuthors(ctx context.Context) ([]model.Author, error)
	SearchAuthors(ctx context.Context, query string) ([]model.Author, error)
	CreateAuthor(ctx context.Context, name string) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `
b.id, b.book_code, b.name, b.author_id, a.name AS author_name,
b.genre, b.rent_price, b.status, b.copies, b.rental_days,
b.cover_path, b.pdf_path`

func (r *repo) ListAvailable(ctx context.Context) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books b
JOIN authors a ON a.id = b.author_id
WHERE b.status = 'Available'
ORDER BY b.id`
	return r.queryBooks(ctx, q)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books b
JOIN authors a ON a.id = b.author_id
ORDER BY b.id`
	return r.queryBooks(ctx, q)
}

func (r *repo) ByGenre(ctx context.Context, genre string) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books b
JOIN authors a ON a.id = b.author_id
WHERE b.genre = $1
ORDER BY b.id`
	return r.queryBooks(ctx, q, genre)
}

func (r *repo) queryBooks(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.BookCode, &b.Name, &b.AuthorID, &b.AuthorName,
			&b.Genre, &b.RentPrice, &b.Status, &b.Copies, &b.RentalDays,
			&b.CoverPath, &b.PDFPath,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books b
JOIN authors a ON a.id = b.author_id
WHERE b.id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.BookCode, &b.Name, &b.AuthorID, &b.AuthorName,
		&b.Genre, &b.RentPrice, &b.Status, &b.Copies, &b.RentalDays,
		&b.CoverPath, &b.PDFPath,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (book_code, name, author_id, genre, rent_price, status, copies, rental_days, cover_path, pdf_path)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		b.BookCode, b.Name, b.AuthorID, b.Genre, b.RentPrice,
		b.Status, b.Copies, b.RentalDays, b.CoverPath, b.PDFPath,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// columns the tagged admin update is allowed to touch. copies and
// status go through SetCopies so the availability invariant holds.
var updatableColumns = map[string]string{
	"book_code":   "book_code",
	"name":        "name",
	"author_id":   "author_id",
	"genre":       "genre",
	"rent_price":  "rent_price",
	"rental_days": "rental_days",
}

func (r *repo) UpdateColumn(ctx context.Context, id int64, column string, value any) error {
	col, ok := updatableColumns[column]
	if !ok {
		return errors.New("column not updatable: " + column)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE books SET `+col+` = $2 WHERE id = $1`, id, value)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetCopies writes copies and derives status in the same statement so
// the two can never disagree.
func (r *repo) SetCopies(ctx context.Context, id int64, copies int64) error {
	const q = `
UPDATE books
SET copies = $2,
    status = CASE WHEN $2 = 0 THEN 'Unavailable' ELSE 'Available' END
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, copies)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClaimCopy is the one concurrency-critical write: check and decrement
// happen in a single conditional UPDATE, so two renters racing for the
// last copy cannot both win and copies can never go negative.
func (r *repo) ClaimCopy(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
UPDATE books
SET copies = copies - 1,
    status = CASE WHEN copies - 1 = 0 THEN 'Unavailable' ELSE status END
WHERE id = $1
  AND status = 'Available'
  AND copies > 0`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoCopies
	}
	return nil
}

// Authors

func (r *repo) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return r.queryAuthors(ctx, `SELECT id, name FROM authors ORDER BY name`)
}

func (r *repo) SearchAuthors(ctx context.Context, query string) ([]model.Author, error) {
	const q = `
SELECT id, name
FROM authors
WHERE name ILIKE '%' || $1 || '%'
ORDER BY name`
	return r.queryAuthors(ctx, q, query)
}

func (r *repo) queryAuthors(ctx context.Context, q string, args ...any) ([]model.Author, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) CreateAuthor(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO authors (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
