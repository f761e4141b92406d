package membership

// PaymentReq carries the chosen method plus its method-specific
// fields; the service enforces which ones must be present.
type PaymentReq struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=upi credit-card bank-transfer"`
	UPIID         string `json:"upi_id"`
	CardNumber    string `json:"card_number"`
	ExpiryDate    string `json:"expiry_date"`
	CVC           string `json:"cvc"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
}

// PayReq is the standalone payment endpoint's body: the plan rides
// along instead of the URL.
type PayReq struct {
	Plan string `json:"plan" validate:"required,oneof=6-month 1-year 2-year"`
	PaymentReq
}
