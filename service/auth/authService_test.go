// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"librental/model"
	userrepo "librental/repository/user"
	"librental/util/hash"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn     func(ctx context.Context, u *model.User) (*model.UserProfile, error)
	byUsernameFn func(ctx context.Context, username string) (*model.User, error)
	byIDFn       func(ctx context.Context, id int64) (*model.User, error)
	profileFn    func(ctx context.Context, userID int64) (*model.UserProfile, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) (*model.UserProfile, error) {
	if m.createFn == nil {
		return &model.UserProfile{UserID: u.ID}, nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.byUsernameFn == nil {
		return nil, errors.New("no user")
	}
	return m.byUsernameFn(ctx, username)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, errors.New("no user")
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ProfileByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	if m.profileFn == nil {
		return nil, errors.New("no profile")
	}
	return m.profileFn(ctx, userID)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func testAdmin(t *testing.T) AdminCreds {
	t.Helper()
	return AdminCreds{Username: "admin", PasswordHash: mustHash(t, "admin123x")}
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) (*model.UserProfile, error) {
			u.ID = 42
			return &model.UserProfile{UserID: 42}, nil
		},
	}
	svc := New(m, "test-secret", testAdmin(t))

	u, prof, err := svc.Register(ctx, model.RegisterReq{
		FirstName:       "Asha",
		LastName:        "Rao",
		Email:           "USER@Example.COM",
		UserID:          "asha1",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, "asha1", u.Username)
	require.NotEmpty(t, u.PasswordHash)
	require.Equal(t, int64(42), prof.UserID)
	require.False(t, prof.IsSubscribed)
}

func TestRegister_UserIDNeedsDigit(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", testAdmin(t))

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		UserID:          "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.ErrorIs(t, err, ErrBadInput)

	_, _, err = svc.Register(context.Background(), model.RegisterReq{
		UserID:          "alice1",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
}

func TestRegister_PasswordRules(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", testAdmin(t))

	// too short
	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		UserID:          "bob2",
		Password:        "ab1",
		ConfirmPassword: "ab1",
	})
	require.ErrorIs(t, err, ErrBadInput)

	// long enough but digits only
	_, _, err = svc.Register(context.Background(), model.RegisterReq{
		UserID:          "bob2",
		Password:        "12345678",
		ConfirmPassword: "12345678",
	})
	require.ErrorIs(t, err, ErrBadInput)

	// confirm mismatch
	_, _, err = svc.Register(context.Background(), model.RegisterReq{
		UserID:          "bob2",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_UsernameTaken(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) (*model.UserProfile, error) {
			return nil, &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
			}
		},
	}
	svc := New(m, "test-secret", testAdmin(t))

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		UserID:          "taken1",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	pw := "secret123"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 7, Username: "asha1", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", testAdmin(t))

	u, tok, err := svc.Login(context.Background(), model.LoginReq{UserID: "asha1", Password: pw})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password1")

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 101, Username: "asha1", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", testAdmin(t))

	_, _, err := svc.Login(context.Background(), model.LoginReq{UserID: "asha1", Password: "wrong1"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

// Login skips the registration length rule: a short password is a
// credential mismatch, not bad input.
func TestLogin_ShortPasswordNotBadInput(t *testing.T) {
	hashed := mustHash(t, "secret123")
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 1, Username: "asha1", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", testAdmin(t))

	_, _, err := svc.Login(context.Background(), model.LoginReq{UserID: "asha1", Password: "ab1"})
	require.ErrorIs(t, err, ErrInvalidCreds)
	require.NotErrorIs(t, err, ErrBadInput)
}

func TestAdminLogin(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", testAdmin(t))

	tok, err := svc.AdminLogin(context.Background(), model.AdminLoginReq{
		Username: "admin", Password: "admin123x",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	_, err = svc.AdminLogin(context.Background(), model.AdminLoginReq{
		Username: "admin", Password: "nope",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)

	_, err = svc.AdminLogin(context.Background(), model.AdminLoginReq{
		Username: "root", Password: "admin123x",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}
