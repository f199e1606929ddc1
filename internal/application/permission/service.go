package permission

import (
	"context"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/permission"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Service answers authorization questions for the HTTP layer. Subjects are
// role names from access tokens; enforcement never reads the users table.
type Service struct {
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewService(enforcer permission.PermissionEnforcer, log logger.Interface) *Service {
	return &Service{
		enforcer: enforcer,
		logger:   log,
	}
}

// Check reports whether any of the given roles is allowed to perform the
// action on the resource.
func (s *Service) Check(ctx context.Context, roles []authorization.UserRole, resource, action string) (bool, error) {
	for _, role := range roles {
		allowed, err := s.enforcer.Enforce(role.String(), resource, action)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// RolePermissions returns the resolved policy rows for a role, including
// everything it inherits.
func (s *Service) RolePermissions(ctx context.Context, role authorization.UserRole) ([][]string, error) {
	return s.enforcer.GetPermissionsForUser(role.String())
}

// Reload re-reads the policy table, picking up rows written by another
// instance.
func (s *Service) Reload(ctx context.Context) error {
	return s.enforcer.LoadPolicy()
}
