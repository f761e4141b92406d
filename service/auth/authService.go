package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"librental/model"
	userrepo "librental/repository/user"
	"librental/util/hash"
	jwtutil "librental/util/jwt"
)

var (
	ErrUsernameTaken = errors.New("user ID already taken")
	ErrBadInput      = errors.New("bad input")
	ErrInvalidCreds  = errors.New("invalid credentials")
	ErrNotFound      = errors.New("not found")
)

// AdminCreds is the configured admin identity: a username and a bcrypt
// hash, never a plaintext literal.
type AdminCreds struct {
	Username     string
	PasswordHash string
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, *model.UserProfile, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	AdminLogin(ctx context.Context, req model.AdminLoginReq) (string, error)
	Profile(ctx context.Context, userID int64) (*model.User, *model.UserProfile, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
	admin  AdminCreds
}

func New(ur userrepo.Repo, secret string, admin AdminCreds) Service {
	return &service{ur: ur, secret: secret, admin: admin}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, *model.UserProfile, error) {
	if err := ValidateUserID(req.UserID); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if err := ValidatePassword(req.Password, ModeRegister); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, nil, fmt.Errorf("%w: passwords do not match", ErrBadInput)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     req.UserID,
		PasswordHash: hashed,
	}

	prof, err := s.ur.Create(ctx, u)
	if err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, nil, derr
		}
		return nil, nil, err
	}
	return u, prof, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)
		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return ErrUsernameTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	if err := ValidateUserID(req.UserID); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if err := ValidatePassword(req.Password, ModeLogin); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadInput, err)
	}

	u, err := s.ur.ByUsername(ctx, req.UserID)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, u.ID, "user", 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// AdminLogin checks the configured admin credential hash and issues an
// admin-role token. Admin has no user row; the subject is 0.
func (s *service) AdminLogin(_ context.Context, req model.AdminLoginReq) (string, error) {
	if req.Username != s.admin.Username || !hash.Check(s.admin.PasswordHash, req.Password) {
		return "", ErrInvalidCreds
	}
	return jwtutil.Issue(s.secret, 0, "admin", 24)
}

func (s *service) Profile(ctx context.Context, userID int64) (*model.User, *model.UserProfile, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	p, err := s.ur.ProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return u, p, nil
}
