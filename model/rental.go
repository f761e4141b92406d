// model/rental.go
package model

import "time"

// Rental is immutable once created; there is no return or extension
// flow, overdue listings are computed from the end date.
type Rental struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	BookID          int64     `json:"book_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	RentalStartDate time.Time `json:"rental_start_date"`
	RentalEndDate   time.Time `json:"rental_end_date"`
}
