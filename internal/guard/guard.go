// Package guard is the access gate: pure predicates over an already resolved
// principal. Guards carry their preconditions as data so route composition
// never depends on hidden middleware order.
package guard

import (
	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
)

// Principal is the authenticated caller. Role and Active are always loaded
// fresh from the account store, never trusted from the token.
type Principal struct {
	UserID uint64
	Role   domain.Role
	Active bool
}

// Guard is one named access check. Roles and NeedsActive are the declared
// preconditions; a zero role set means any role passes.
type Guard struct {
	Name        string
	Roles       []domain.Role
	NeedsActive bool
}

// Check evaluates the guard against the principal.
func (g Guard) Check(p Principal) error {
	if g.NeedsActive && !p.Active {
		if p.Role == domain.RoleSeller {
			return apperr.Forbidden("your account has not yet been verified, please contact support")
		}
		return apperr.Forbidden("your account has been deactivated, please contact support")
	}
	if len(g.Roles) == 0 {
		return nil
	}
	for _, r := range g.Roles {
		if p.Role == r {
			return nil
		}
	}
	return apperr.Forbidden("you do not have permission to access this route")
}

// RequireRole builds a guard passing only the given roles.
func RequireRole(roles ...domain.Role) Guard {
	return Guard{Name: "require-role", Roles: roles}
}

// RequireActive builds a guard rejecting inactive accounts, with distinct
// messages for a Seller pending approval and a deactivated account.
func RequireActive() Guard {
	return Guard{Name: "require-active", NeedsActive: true}
}

// RequireOwnerOrAdmin passes when the principal owns the resource or is an
// Admin.
func RequireOwnerOrAdmin(p Principal, ownerID uint64) error {
	if p.Role == domain.RoleAdmin || p.UserID == ownerID {
		return nil
	}
	return apperr.Forbidden("you do not have permission to access this resource")
}

// CheckAll runs guards in declaration order, returning the first failure.
func CheckAll(p Principal, guards ...Guard) error {
	for _, g := range guards {
		if err := g.Check(p); err != nil {
			return err
		}
	}
	return nil
}
