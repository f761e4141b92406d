// repository/payment/paymentRepository.go
package paymentrepo

import (
	"context"
	"database/sql"
	"time"

	"librental/model"
)

// ProfileRow is the admin user-listing shape: account identity joined
// with the subscription flags from the profile.
type ProfileRow struct {
	UserID                int64      `json:"user_id"`
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	IsSubscribed          bool       `json:"is_subscribed"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
}

type Repo interface {
	// PayAndSubscribe persists the payment and flips the profile to
	// subscribed in one transaction, so a failed insert can never
	// leave a half-activated subscription behind.
	PayAndSubscribe(ctx context.Context, p *model.Payment, start, end time.Time) (int64, error)

	HasPaymentSince(ctx context.Context, userID int64, since time.Time) (bool, error)
	ListProfiles(ctx context.Context, filter string) ([]ProfileRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) PayAndSubscribe(ctx context.Context, p *model.Payment, start, end time.Time) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const ins = `
INSERT INTO payments (user_id, payment_method, upi_id, card_number, expiry_date, cvc, account_number, ifsc_code, amount, payment_date)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
RETURNING id, payment_date`
	if err = tx.QueryRowContext(ctx, ins,
		p.UserID, p.Method, p.UPIID, p.CardNumber, p.ExpiryDate,
		p.CVC, p.AccountNumber, p.IFSCCode, p.Amount,
	).Scan(&p.ID, &p.PaymentDate); err != nil {
		return 0, err
	}

	const up = `
UPDATE user_profiles
SET is_subscribed = TRUE,
    subscription_start_date = $2,
    subscription_end_date = $3
WHERE user_id = $1`
	res, err := tx.ExecContext(ctx, up, p.UserID, start, end)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = sql.ErrNoRows
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *repo) HasPaymentSince(ctx context.Context, userID int64, since time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM payments
    WHERE user_id = $1 AND payment_date >= $2
)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, userID, since).Scan(&ok)
	return ok, err
}

func (r *repo) ListProfiles(ctx context.Context, filter string) ([]ProfileRow, error) {
	q := `
SELECT p.user_id, u.username, u.email, p.is_subscribed,
       p.subscription_start_date, p.subscription_end_date
FROM user_profiles p
JOIN users u ON u.id = p.user_id`
	var args []any
	switch filter {
	case "subscribed":
		q += ` WHERE p.is_subscribed`
	case "unsubscribed":
		q += ` WHERE NOT p.is_subscribed`
	}
	q += ` ORDER BY u.username`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfileRow
	for rows.Next() {
		var p ProfileRow
		if err := rows.Scan(
			&p.UserID, &p.Username, &p.Email, &p.IsSubscribed,
			&p.SubscriptionStartDate, &p.SubscriptionEndDate,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
