package access

import (
	"fmt"
	"strings"

	"resto-erp-ws/internal/model"
)

const LoginPath = "/login"

// routes maps each role to the route patterns it may enter. The first
// pattern is where a denied navigation is redirected.
var routes = map[model.Role][]string{
	model.RoleAdminPusat: {
		"/outlets", "/hr", "/keuangan", "/promo", "/menu", "/pembelian",
		"/distribusi", "/inventory", "/rekrutmen", "/operasional", "/maintenance", "/access",
	},
	model.RoleAreaManager: {
		"/outlets", "/hr", "/keuangan", "/menu", "/pembelian",
		"/distribusi", "/inventory", "/rekrutmen", "/operasional",
	},
	model.RoleOutletManager: {
		"/hr", "/keuangan", "/menu", "/pembelian", "/inventory", "/operasional", "/maintenance",
	},
	model.RoleKasir:   {"/pos", "/keuangan", "/menu"},
	model.RoleHR:      {"/hr", "/rekrutmen"},
	model.RoleGudang:  {"/inventory", "/pembelian", "/distribusi"},
	model.RoleFinance: {"/keuangan"},
}

func init() {
	if err := Validate(); err != nil {
		panic(err)
	}
}

// Decision is the outcome of a navigation check.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// RoutePattern returns the first segment of pathname, e.g.
// "/inventory/dashboard" becomes "/inventory".
func RoutePattern(pathname string) string {
	parts := strings.Split(pathname, "/")
	if len(parts) < 2 {
		return "/"
	}
	return "/" + parts[1]
}

// AllowedPatterns returns the patterns a role may enter, nil for unknown roles.
func AllowedPatterns(role model.Role) []string {
	patterns, ok := routes[role]
	if !ok {
		return nil
	}
	out := make([]string, len(patterns))
	copy(out, patterns)
	return out
}

// CheckAccess decides whether role may view pathname. A nil or unknown role
// is sent to the login page; a denied role goes to its first allowed pattern.
func CheckAccess(role *model.Role, pathname string) Decision {
	if role == nil {
		return redirect(LoginPath)
	}
	patterns, ok := routes[*role]
	if !ok {
		return redirect(LoginPath)
	}

	pattern := RoutePattern(pathname)
	for _, p := range patterns {
		if p == pattern {
			return allow()
		}
	}
	return redirect(patterns[0])
}

// Validate checks that every role has at least one well-formed pattern.
func Validate() error {
	for _, role := range model.AllRoles() {
		patterns := routes[role]
		if len(patterns) == 0 {
			return fmt.Errorf("access: role %s has no allowed routes", role)
		}
		for _, p := range patterns {
			if !strings.HasPrefix(p, "/") || strings.Count(p, "/") != 1 {
				return fmt.Errorf("access: role %s has malformed pattern %q", role, p)
			}
		}
	}
	for role := range routes {
		if !role.IsValid() {
			return fmt.Errorf("access: route table has unknown role %q", role)
		}
	}
	return nil
}
