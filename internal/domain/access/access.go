// Package access carries the authenticated caller into usecases and performs
// role checks at the usecase boundary.
package access

import "storefront/internal/domain/model"

// Caller is the identity attached to a request after token verification and
// user lookup.
type Caller struct {
	ID    string
	Email string
	Role  model.Role
}

func (c Caller) IsAuthenticated() bool {
	return c.ID != ""
}

// Decision is the result of a permission check.
type Decision struct {
	allowed bool
	reason  string
}

func Allowed() Decision { return Decision{allowed: true} }

func Denied(reason string) Decision { return Decision{reason: reason} }

func (d Decision) IsAllowed() bool { return d.allowed }

// Reason is empty for allowed decisions.
func (d Decision) Reason() string { return d.reason }

const AdminRequired = "Admin access required"

// RequireAdmin allows only callers with the admin role.
func RequireAdmin(c Caller) Decision {
	if c.Role != model.RoleAdmin {
		return Denied(AdminRequired)
	}
	return Allowed()
}

// RequireAuthenticated allows any caller resolved to a local user.
func RequireAuthenticated(c Caller) Decision {
	if !c.IsAuthenticated() {
		return Denied("unauthorized")
	}
	return Allowed()
}
