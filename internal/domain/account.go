package domain

import "time"

// User types accepted at registration. Only ChannelOwner carries extra requirements.
const (
	UserTypeChannelOwner = "ChannelOwner"
	UserTypeCreator      = "Creator"
)

// Auth providers recorded on an account.
const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

type Account struct {
	AccountID      string    `json:"id" dynamodbav:"account_id"`
	Username       string    `json:"username" dynamodbav:"username"`
	Email          string    `json:"email" dynamodbav:"email"`
	PasswordHash   string    `json:"-" dynamodbav:"password_hash"`
	UserType       string    `json:"userType" dynamodbav:"user_type"`
	ChannelID      string    `json:"channelId,omitempty" dynamodbav:"channel_id"`
	ChannelName    string    `json:"channelName,omitempty" dynamodbav:"channel_name"`
	ChannelURL     string    `json:"channelURL,omitempty" dynamodbav:"channel_url"`
	Verified       bool      `json:"verified" dynamodbav:"verified"`
	AuthProvider   string    `json:"authProvider,omitempty" dynamodbav:"auth_provider"`
	GoogleSub      string    `json:"-" dynamodbav:"google_sub,omitempty"`
	Collaborations []string  `json:"collaborations" dynamodbav:"collaborations,omitempty"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// RegisterRequest is the account draft submitted at registration.
// Required-field checks are done by the account service so each missing field gets its own message.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password" validate:"omitempty,max=72"`
	Email       string `json:"email" validate:"omitempty,email"`
	UserType    string `json:"userType"`
	ChannelID   string `json:"channelId"`
	ChannelName string `json:"channelName"`
	ChannelURL  string `json:"channelURL" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateAccountRequest struct {
	Username    *string `json:"username"`
	Password    *string `json:"password" validate:"omitempty,min=1,max=72"`
	Email       *string `json:"email" validate:"omitempty,email"`
	UserType    *string `json:"userType"`
	ChannelID   *string `json:"channelId"`
	ChannelName *string `json:"channelName"`
	ChannelURL  *string `json:"channelURL" validate:"omitempty,url"`
}

// AuthResult is returned by register, login and Google sign-in.
type AuthResult struct {
	Token string   `json:"token"`
	User  *Account `json:"user"`
}
