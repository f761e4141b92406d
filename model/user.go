package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile is one-to-one with User and carries the subscription
// flags; it is created in the same transaction as the account.
type UserProfile struct {
	UserID                int64      `json:"user_id"`
	IsSubscribed          bool       `json:"is_subscribed"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FirstName       string `json:"firstname" validate:"required"`
	LastName        string `json:"lastname" validate:"required"`
	Email           string `json:"emailid" validate:"required,email"`
	UserID          string `json:"userid" validate:"required,max=50"`
	Password        string `json:"password" validate:"required,max=50"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	UserID   string `json:"userid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginReq represents the admin console login payload
// swagger:model AdminLoginReq
type AdminLoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
