package authz

import "fmt"

// RoleSeed is a built-in role definition.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds returns the program's role matrix. Staff cover the
// day-to-day casework surface; admins inherit it and add account
// management and report export.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "staff",
			Policies: []Policy{
				{Object: "/auth/me", Action: "GET"},
				{Object: "/auth/password", Action: "PUT"},
				{Object: "/participants", Action: "*"},
				{Object: "/participants/:id", Action: "*"},
				{Object: "/participants/:id/payment-status", Action: "GET"},
				{Object: "/shifts", Action: "*"},
				{Object: "/shifts/:id", Action: "*"},
				{Object: "/payments", Action: "*"},
				{Object: "/payments/:id", Action: "GET"},
				{Object: "/payments/check", Action: "GET"},
				{Object: "/homework", Action: "*"},
				{Object: "/homework/:id", Action: "*"},
				{Object: "/outcomes", Action: "*"},
				{Object: "/dashboard/stats", Action: "GET"},
				{Object: "/reports/monthly", Action: "GET"},
			},
		},
		{
			Role:     "admin",
			Inherits: []string{"staff"},
			Policies: []Policy{
				{Object: "/users", Action: "*"},
				{Object: "/users/:id", Action: "*"},
				{Object: "/reports/monthly/export", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the role matrix into policy storage.
// Idempotent; existing rules are left untouched.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
