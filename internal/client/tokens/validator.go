// Package tokens inspects access tokens issued by the backend.
//
// Only the payload segment is decoded. Signatures are never verified: the
// client trusts the server and only needs the expiry and the user id to
// decide whether a session is still usable.
package tokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// Payload is the subset of the token claims the client relies on.
type Payload struct {
	ExpiresAt *time.Time
	UserID    string
	Subject   string
	Claims    jwt.MapClaims
}

type Validator struct {
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Validator)

// WithClock replaces time.Now, mostly for tests around the expiry boundary.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		now:    time.Now,
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// DecodePayload returns the decoded claims of a three-segment token.
// Any failure is reported as ErrMalformedToken.
func (v *Validator) DecodePayload(token string) (*Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	raw, err := v.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding: %v", ErrMalformedToken, err)
	}

	claims := jwt.MapClaims{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: payload json: %v", ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: exp: %v", ErrMalformedToken, err)
	}
	// sub is informational; a non-string subject is read as text
	sub := claimString(claims["sub"])

	p := &Payload{Subject: sub, Claims: claims}
	if exp != nil {
		t := exp.Time
		p.ExpiresAt = &t
	}
	p.UserID = claimString(claims["user_id"])
	if p.UserID == "" {
		p.UserID = sub
	}
	return p, nil
}

// IsValid reports whether token is well formed, carries an exp claim and
// has not expired yet. The comparison is strict: a token is expired at
// exactly its exp second.
func (v *Validator) IsValid(token string) bool {
	if token == "" {
		return false
	}
	p, err := v.DecodePayload(token)
	if err != nil || p.ExpiresAt == nil {
		return false
	}
	return v.now().Before(*p.ExpiresAt)
}

func claimString(c any) string {
	switch x := c.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return fmt.Sprintf("%.0f", x)
	default:
		return ""
	}
}
