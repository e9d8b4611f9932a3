package session

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/paisa/internal/model"
)

// Guard errors.
var (
	ErrNotAuthenticated = errors.New("session: not authenticated")
	ErrForbidden        = errors.New("session: insufficient role")

	// ErrRoleUnknown means the session was restored from a token that does
	// not carry a role. A fresh login is needed before role checks can pass.
	ErrRoleUnknown = fmt.Errorf("%w: role unknown", ErrNotAuthenticated)
)

// Guard gates content on the session's role.
type Guard struct {
	sess *Store
}

// NewGuard returns a guard over sess.
func NewGuard(sess *Store) Guard {
	return Guard{sess: sess}
}

// Require returns nil when the session holds role, ErrNotAuthenticated when
// there is no session, ErrRoleUnknown when the session's role was never
// reported, and ErrForbidden otherwise.
func (g Guard) Require(role model.Role) error {
	snap := g.sess.Snapshot()
	if snap.User == nil {
		return ErrNotAuthenticated
	}
	if !snap.User.Role.Known() {
		return ErrRoleUnknown
	}
	if snap.User.Role != role {
		return ErrForbidden
	}
	return nil
}
