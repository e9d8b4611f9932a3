package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/paisa/internal/model"
)

var errMalformedToken = errors.New("session: malformed token")

// Claims is the subset of the JWT payload the client reads. The signature is
// never checked here: the server remains the authority on validity.
type Claims struct {
	Subject string     `json:"sub"`
	Email   string     `json:"email"`
	Name    string     `json:"name"`
	Role    model.Role `json:"role"`
	Expires int64      `json:"exp"`
}

// DecodeClaims reads the payload segment of a JWT.
func DecodeClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[1] == "" {
		return Claims{}, errMalformedToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", errMalformedToken, err)
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", errMalformedToken, err)
	}
	return c, nil
}

// Expired reports whether the claims carry an expiry at or before now.
// A token without exp never expires client-side.
func (c Claims) Expired(now time.Time) bool {
	return c.Expires > 0 && !now.Before(time.Unix(c.Expires, 0))
}

// User derives the session identity. Spring issues the email as the subject,
// so email falls back to sub. The backend keeps the role out of its tokens,
// so a missing role claim stays empty until the next login reports it.
func (c Claims) User() (model.User, bool) {
	email := c.Email
	if email == "" {
		email = c.Subject
	}
	if email == "" {
		return model.User{}, false
	}
	return model.User{Email: email, Name: c.Name, Role: c.Role}, true
}
