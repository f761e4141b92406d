// model/payment.go
package model

import "time"

type PaymentMethod string

const (
	MethodUPI          PaymentMethod = "upi"
	MethodCreditCard   PaymentMethod = "credit-card"
	MethodBankTransfer PaymentMethod = "bank-transfer"
)

// Payment rows keep only the fields belonging to the chosen method;
// the rest stay NULL.
type Payment struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	Method        PaymentMethod `json:"payment_method"`
	UPIID         *string       `json:"upi_id,omitempty"`
	CardNumber    *string       `json:"card_number,omitempty"`
	ExpiryDate    *string       `json:"expiry_date,omitempty"` // MM/YYYY
	CVC           *string       `json:"cvc,omitempty"`
	AccountNumber *string       `json:"account_number,omitempty"`
	IFSCCode      *string       `json:"ifsc_code,omitempty"`
	Amount        int64         `json:"amount"`
	PaymentDate   time.Time     `json:"payment_date"`
}
