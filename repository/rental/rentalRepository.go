// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"librental/model"
)

type HistoryRow struct {
	RentalID  int64     `json:"rental_id"`
	BookID    int64     `json:"book_id"`
	BookName  string    `json:"book_name"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	StartDate time.Time `json:"rental_start_date"`
	EndDate   time.Time `json:"rental_end_date"`
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]HistoryRow, error)
	ListEndedBefore(ctx context.Context, day time.Time) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) (int64, error) {
	const q = `
INSERT INTO rentals (user_id, book_id, first_name, last_name, email, rental_start_date, rental_end_date)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		m.UserID, m.BookID, m.FirstName, m.LastName, m.Email,
		m.RentalStartDate, m.RentalEndDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

const historySelect = `
SELECT r.id, r.book_id, b.name, u.username,
       r.first_name, r.last_name, r.email,
       r.rental_start_date, r.rental_end_date
FROM rentals r
JOIN books b ON b.id = r.book_id
JOIN users u ON u.id = r.user_id`

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	q := historySelect + `
WHERE r.user_id = $1
ORDER BY r.rental_start_date DESC, r.id DESC`
	return r.queryHistory(ctx, q, userID)
}

func (r *repo) ListAll(ctx context.Context) ([]HistoryRow, error) {
	q := historySelect + `
ORDER BY r.rental_start_date DESC, r.id DESC`
	return r.queryHistory(ctx, q)
}

// ListEndedBefore returns rentals whose end date has passed; overdue
// day counts are computed by the service.
func (r *repo) ListEndedBefore(ctx context.Context, day time.Time) ([]HistoryRow, error) {
	q := historySelect + `
WHERE r.rental_end_date < $1
ORDER BY r.rental_end_date`
	return r.queryHistory(ctx, q, day)
}

func (r *repo) queryHistory(ctx context.Context, q string, args ...any) ([]HistoryRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.RentalID, &h.BookID, &h.BookName, &h.Username,
			&h.FirstName, &h.LastName, &h.Email,
			&h.StartDate, &h.EndDate,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
