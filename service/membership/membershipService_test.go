package membershipsvc

import (
	"context"
	"testing"
	"time"

	"librental/model"
	paymentrepo "librental/repository/payment"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	payFn      func(ctx context.Context, p *model.Payment, start, end time.Time) (int64, error)
	hasSinceFn func(ctx context.Context, userID int64, since time.Time) (bool, error)
	profilesFn func(ctx context.Context, filter string) ([]paymentrepo.ProfileRow, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) PayAndSubscribe(ctx context.Context, p *model.Payment, start, end time.Time) (int64, error) {
	if m.payFn == nil {
		return 1, nil
	}
	return m.payFn(ctx, p, start, end)
}

func (m *mockRepo) HasPaymentSince(ctx context.Context, userID int64, since time.Time) (bool, error) {
	return m.hasSinceFn(ctx, userID, since)
}

func (m *mockRepo) ListProfiles(ctx context.Context, filter string) ([]paymentrepo.ProfileRow, error) {
	if m.profilesFn == nil {
		return nil, nil
	}
	return m.profilesFn(ctx, filter)
}

func upi(id string) PaymentDetails {
	return PaymentDetails{Method: "upi", UPIID: id}
}

func TestActivatePlan_Durations(t *testing.T) {
	cases := []struct {
		plan   string
		days   int
		amount int64
	}{
		{"6-month", 180, 750},
		{"1-year", 365, 1500},
		{"2-year", 730, 3000},
		{"lifetime", 180, 0}, // unrecognized duration falls back
	}

	for _, tc := range cases {
		var gotStart, gotEnd time.Time
		var gotPayment *model.Payment
		m := &mockRepo{
			payFn: func(ctx context.Context, p *model.Payment, start, end time.Time) (int64, error) {
				gotPayment, gotStart, gotEnd = p, start, end
				return 9, nil
			},
		}
		svc := New(m, 365)

		out, err := svc.ActivatePlan(context.Background(), 5, tc.plan, upi("abc@bank"))
		require.NoError(t, err, tc.plan)
		require.Equal(t, int64(9), out.PaymentID)
		require.Equal(t, tc.amount, gotPayment.Amount, tc.plan)
		require.Equal(t, gotStart.AddDate(0, 0, tc.days), gotEnd, tc.plan)
		require.Equal(t, out.SubscriptionEndDate, gotEnd)
	}
}

func TestActivatePlan_PaymentFieldValidation(t *testing.T) {
	svc := New(&mockRepo{}, 365)
	ctx := context.Background()

	_, err := svc.ActivatePlan(ctx, 5, "1-year", upi(""))
	require.Equal(t, ErrValidation, Code(err))

	_, err = svc.ActivatePlan(ctx, 5, "1-year", upi("abc@bank"))
	require.NoError(t, err)

	_, err = svc.ActivatePlan(ctx, 5, "1-year", PaymentDetails{
		Method: "credit-card", CardNumber: "4111111111111111", ExpiryDate: "12/2030",
	})
	require.Equal(t, ErrValidation, Code(err)) // missing cvc

	_, err = svc.ActivatePlan(ctx, 5, "1-year", PaymentDetails{
		Method: "credit-card", CardNumber: "4111111111111111", ExpiryDate: "12/2030", CVC: "123",
	})
	require.NoError(t, err)

	_, err = svc.ActivatePlan(ctx, 5, "1-year", PaymentDetails{
		Method: "bank-transfer", AccountNumber: "1234567890",
	})
	require.Equal(t, ErrValidation, Code(err)) // missing ifsc_code

	_, err = svc.ActivatePlan(ctx, 5, "1-year", PaymentDetails{Method: "cash"})
	require.Equal(t, ErrValidation, Code(err))
}

// Only the chosen method's fields may be persisted.
func TestActivatePlan_NullsOtherMethodFields(t *testing.T) {
	var got *model.Payment
	m := &mockRepo{
		payFn: func(ctx context.Context, p *model.Payment, start, end time.Time) (int64, error) {
			got = p
			return 1, nil
		},
	}
	svc := New(m, 365)

	_, err := svc.ActivatePlan(context.Background(), 5, "1-year", PaymentDetails{
		Method: "upi", UPIID: "abc@bank",
		CardNumber: "4111111111111111", // stray field must be dropped
	})
	require.NoError(t, err)
	require.NotNil(t, got.UPIID)
	require.Equal(t, "abc@bank", *got.UPIID)
	require.Nil(t, got.CardNumber)
	require.Nil(t, got.CVC)
	require.Nil(t, got.AccountNumber)
}

func TestHasActiveMembership_LookbackWindow(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var gotSince time.Time
	m := &mockRepo{
		hasSinceFn: func(ctx context.Context, userID int64, since time.Time) (bool, error) {
			gotSince = since
			return true, nil
		},
	}

	svc := New(m, 365)
	ok, err := svc.HasActiveMembership(context.Background(), 5, asOf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, asOf.AddDate(0, 0, -365), gotSince)

	// the window is configurable, not tied to the purchased plan
	svc = New(m, 30)
	_, err = svc.HasActiveMembership(context.Background(), 5, asOf)
	require.NoError(t, err)
	require.Equal(t, asOf.AddDate(0, 0, -30), gotSince)
}

func TestProfiles_StatusFilter(t *testing.T) {
	var gotFilter string
	m := &mockRepo{
		profilesFn: func(ctx context.Context, filter string) ([]paymentrepo.ProfileRow, error) {
			gotFilter = filter
			return []paymentrepo.ProfileRow{{UserID: 1}}, nil
		},
	}
	svc := New(m, 365)

	rows, err := svc.Profiles(context.Background(), "subscribed")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "subscribed", gotFilter)

	_, err = svc.Profiles(context.Background(), "premium")
	require.Equal(t, ErrValidation, Code(err))
}
