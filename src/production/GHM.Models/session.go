package ghmmodels

import "encoding/json"

// Storage keys shared by the form flow and the hosting application
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// Session is what the auth API hands back on a successful login or registration
type Session struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Credentials is the transient state of the login/register form
type Credentials struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	FirstName       string `json:"firstName,omitempty" form:"firstName"`
	LastName        string `json:"lastName,omitempty" form:"lastName"`
	InviteCode      string `json:"inviteCode,omitempty" form:"inviteCode"`
}

// ChartTick is one axis label and the timestamp it was derived from
type ChartTick struct {
	Label     string `json:"label"`
	Timestamp string `json:"timestamp"`
}
