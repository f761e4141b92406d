package membershipsvc

import (
	"context"
	"errors"
	"time"

	"librental/model"
	paymentrepo "librental/repository/payment"
)

// errors used by controllers

type ErrCode string

const (
	ErrValidation ErrCode = "VALIDATION"
	ErrNotFound   ErrCode = "NOT_FOUND"
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

// Plan tables come from the original pricing: 6-month 750, 1-year
// 1500, 2-year 3000. An unrecognized duration falls back to 180 days.
const defaultPlanDays = 180

var planDays = map[string]int{
	"6-month": 180,
	"1-year":  365,
	"2-year":  730,
}

var planAmounts = map[string]int64{
	"6-month": 750,
	"1-year":  1500,
	"2-year":  3000,
}

// PlanDuration returns the subscription length in days for a plan.
func PlanDuration(plan string) int {
	if d, ok := planDays[plan]; ok {
		return d
	}
	return defaultPlanDays
}

// PaymentDetails carries the method plus every method-specific field;
// validation enforces that exactly the chosen method's fields are set.
type PaymentDetails struct {
	Method        string
	UPIID         string
	CardNumber    string
	ExpiryDate    string
	CVC           string
	AccountNumber string
	IFSCCode      string
}

type Activation struct {
	PaymentID             int64     `json:"payment_id"`
	Plan                  string    `json:"plan"`
	Amount                int64     `json:"amount"`
	SubscriptionStartDate time.Time `json:"subscription_start_date"`
	SubscriptionEndDate   time.Time `json:"subscription_end_date"`
}

type ProfileRow = paymentrepo.ProfileRow

type Repo interface {
	PayAndSubscribe(ctx context.Context, p *model.Payment, start, end time.Time) (int64, error)
	HasPaymentSince(ctx context.Context, userID int64, since time.Time) (bool, error)
	ListProfiles(ctx context.Context, filter string) ([]ProfileRow, error)
}

type Service interface {
	// ActivatePlan validates the payment details, persists the payment
	// and activates the subscription in one transaction.
	ActivatePlan(ctx context.Context, userID int64, plan string, d PaymentDetails) (*Activation, error)

	// HasActiveMembership reports whether a payment exists inside the
	// lookback window before asOf.
	HasActiveMembership(ctx context.Context, userID int64, asOf time.Time) (bool, error)

	Profiles(ctx context.Context, status string) ([]ProfileRow, error)
}

type service struct {
	r Repo

	// lookbackDays is plan-independent on purpose: the original system
	// honored any payment in the last 365 days no matter which plan it
	// bought. Kept configurable rather than silently re-scoped.
	lookbackDays int
}

func New(r Repo, lookbackDays int) Service {
	if lookbackDays <= 0 {
		lookbackDays = 365
	}
	return &service{r: r, lookbackDays: lookbackDays}
}

func (s *service) ActivatePlan(ctx context.Context, userID int64, plan string, d PaymentDetails) (*Activation, error) {
	p, err := buildPayment(userID, d)
	if err != nil {
		return nil, err
	}
	p.Amount = planAmounts[plan]

	start := today()
	end := start.AddDate(0, 0, PlanDuration(plan))

	id, err := s.r.PayAndSubscribe(ctx, p, start, end)
	if err != nil {
		return nil, err
	}
	return &Activation{
		PaymentID:             id,
		Plan:                  plan,
		Amount:                p.Amount,
		SubscriptionStartDate: start,
		SubscriptionEndDate:   end,
	}, nil
}

// buildPayment checks that exactly the fields the method requires are
// present and nulls out everything else.
func buildPayment(userID int64, d PaymentDetails) (*model.Payment, error) {
	p := &model.Payment{UserID: userID, Method: model.PaymentMethod(d.Method)}

	switch p.Method {
	case model.MethodUPI:
		if d.UPIID == "" {
			return nil, makeErr(ErrValidation, "upi_id is required for UPI payment")
		}
		p.UPIID = &d.UPIID

	case model.MethodCreditCard:
		if d.CardNumber == "" {
			return nil, makeErr(ErrValidation, "card_number is required for credit card payment")
		}
		if d.ExpiryDate == "" {
			return nil, makeErr(ErrValidation, "expiry_date is required for credit card payment")
		}
		if d.CVC == "" {
			return nil, makeErr(ErrValidation, "cvc is required for credit card payment")
		}
		p.CardNumber, p.ExpiryDate, p.CVC = &d.CardNumber, &d.ExpiryDate, &d.CVC

	case model.MethodBankTransfer:
		if d.AccountNumber == "" {
			return nil, makeErr(ErrValidation, "account_number is required for bank transfer")
		}
		if d.IFSCCode == "" {
			return nil, makeErr(ErrValidation, "ifsc_code is required for bank transfer")
		}
		p.AccountNumber, p.IFSCCode = &d.AccountNumber, &d.IFSCCode

	default:
		return nil, makeErr(ErrValidation, "unknown payment method: "+d.Method)
	}
	return p, nil
}

func (s *service) HasActiveMembership(ctx context.Context, userID int64, asOf time.Time) (bool, error) {
	since := asOf.AddDate(0, 0, -s.lookbackDays)
	return s.r.HasPaymentSince(ctx, userID, since)
}

func (s *service) Profiles(ctx context.Context, status string) ([]ProfileRow, error) {
	switch status {
	case "", "all", "subscribed", "unsubscribed":
		return s.r.ListProfiles(ctx, status)
	}
	return nil, makeErr(ErrValidation, "status must be all, subscribed or unsubscribed")
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
