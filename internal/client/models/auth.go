package models

import (
	"errors"
	"strings"
)

// ErrMissingField is wrapped by the Validate methods of request payloads.
var ErrMissingField = errors.New("required field is empty")

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}

// FieldError names the request field that failed client-side validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Credentials is the persisted session: both tokens and the cached profile.
// It is stored as one JSON document under a single key.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// LoginData is sent to auth/login/. Either Username or Email identifies the user.
type LoginData struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (d LoginData) Validate() error {
	if strings.TrimSpace(d.Username) == "" && strings.TrimSpace(d.Email) == "" {
		return missing("username")
	}
	if d.Password == "" {
		return missing("password")
	}
	return nil
}

// LoginResponse is the body returned by auth/login/.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// Credentials converts the login response into the record to persist.
func (r LoginResponse) Credentials() Credentials {
	return Credentials{Access: r.Access, Refresh: r.Refresh, User: r.User}
}

type RegisterData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d RegisterData) Validate() error {
	switch {
	case strings.TrimSpace(d.Username) == "":
		return missing("username")
	case strings.TrimSpace(d.Email) == "":
		return missing("email")
	case d.Password == "":
		return missing("password")
	}
	return nil
}

type ForgotPasswordData struct {
	Email string `json:"email"`
}

func (d ForgotPasswordData) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return missing("email")
	}
	return nil
}

// RefreshRequest is used both by auth/refresh/ and auth/logout/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}
