package commons

import (
	"net/http"
	"strconv"
	"strings"

	"caissepro/internal/domain"
	apperrors "caissepro/internal/errors"
)

// Actor is the acting staff member, as asserted by the authentication
// gateway in front of this service.
type Actor struct {
	ID   int
	Name string
	Role string
}

const (
	RoleCashier = "cashier"
	RoleServer  = "server"
)

const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerUserRole = "X-User-Role"
)

// ActorFromRequest reads the authenticated identity headers the gateway
// injects. Absent or malformed headers are a validation failure, not an
// authorization decision; authorization happened upstream.
func ActorFromRequest(r *http.Request) (Actor, error) {
	raw := r.Header.Get(headerUserID)
	if raw == "" {
		return Actor{}, apperrors.NewValidationError("missing user identity", apperrors.ValidationDetail{
			Field:   headerUserID,
			Message: "authenticated user id header is required",
		})
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return Actor{}, apperrors.NewValidationError("invalid user identity", apperrors.ValidationDetail{
			Field:   headerUserID,
			Message: "user id must be a positive integer",
		})
	}

	role := strings.ToLower(r.Header.Get(headerUserRole))
	if role != RoleServer {
		role = RoleCashier
	}

	return Actor{ID: id, Name: r.Header.Get(headerUserName), Role: role}, nil
}

// Scope returns the actor's personal printer owner scope. Serving staff own
// server-scoped endpoints, everyone else cashier-scoped ones.
func (a Actor) Scope() string {
	if a.Role == RoleServer {
		return domain.ServerScope(a.ID)
	}
	return domain.CashierScope(a.ID)
}
