package permission

import (
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// InitAdvertiserPermissions grants advertisers control over their own
// campaigns and read access to everything they are billed by.
func InitAdvertiserPermissions(enforcer *Enforcer, log logger.Interface) error {
	role := authorization.RoleAdvertiser.String()
	policies := [][]string{
		{role, "ad", "create"},
		{role, "ad", "read"},
		{role, "ad", "update"},
		{role, "ad", "delete"},
		{role, "ad", "list"},
		{role, "wallet", "read"},
		{role, "transaction", "create"},
		{role, "transaction", "read"},
		{role, "transaction", "list"},
		{role, "pricing_tier", "read"},
		{role, "pricing_tier", "list"},
		{role, "stats", "read"},
	}

	return addPolicies(enforcer, log, "advertiser", policies)
}

// InitBotOwnerPermissions grants bot owners control over their bots and the
// earnings/withdrawal surface.
func InitBotOwnerPermissions(enforcer *Enforcer, log logger.Interface) error {
	role := authorization.RoleBotOwner.String()
	policies := [][]string{
		{role, "bot", "create"},
		{role, "bot", "read"},
		{role, "bot", "update"},
		{role, "bot", "delete"},
		{role, "bot", "list"},
		{role, "wallet", "read"},
		{role, "withdrawal", "create"},
		{role, "withdrawal", "read"},
		{role, "withdrawal", "list"},
		{role, "transaction", "read"},
		{role, "transaction", "list"},
		{role, "pricing_tier", "read"},
		{role, "pricing_tier", "list"},
		{role, "stats", "read"},
	}

	return addPolicies(enforcer, log, "bot owner", policies)
}

// InitStaffPermissions grants the moderation queue to moderators and the
// full admin surface on top. Admin inherits moderator, super admin inherits
// admin, so each block lists only what the tier adds.
func InitStaffPermissions(enforcer *Enforcer, log logger.Interface) error {
	moderator := authorization.RoleModerator.String()
	admin := authorization.RoleAdmin.String()
	superAdmin := authorization.RoleSuperAdmin.String()

	policies := [][]string{
		{moderator, "ad", "read"},
		{moderator, "ad", "list"},
		{moderator, "ad", "approve"},
		{moderator, "ad", "reject"},
		{moderator, "bot", "read"},
		{moderator, "bot", "list"},
		{moderator, "bot", "approve"},
		{moderator, "bot", "reject"},
		{moderator, "bot", "suspend"},
		{moderator, "user", "read"},
		{moderator, "user", "list"},
		{moderator, "audit_log", "read"},
		{moderator, "audit_log", "list"},
		{moderator, "stats", "read"},

		{admin, "wallet", "read"},
		{admin, "wallet", "list"},
		{admin, "withdrawal", "read"},
		{admin, "withdrawal", "list"},
		{admin, "withdrawal", "approve"},
		{admin, "withdrawal", "reject"},
		{admin, "transaction", "read"},
		{admin, "transaction", "list"},
		{admin, "pricing_tier", "create"},
		{admin, "pricing_tier", "read"},
		{admin, "pricing_tier", "update"},
		{admin, "pricing_tier", "delete"},
		{admin, "pricing_tier", "list"},
		{admin, "platform_setting", "read"},
		{admin, "platform_setting", "update"},
		{admin, "platform_setting", "list"},
		{admin, "user", "update"},
		{admin, "user", "suspend"},
		{admin, "stats", "export"},

		{superAdmin, "user", "create"},
		{superAdmin, "user", "delete"},
		{superAdmin, "platform_setting", "create"},
		{superAdmin, "platform_setting", "delete"},
		{superAdmin, "audit_log", "export"},
	}

	return addPolicies(enforcer, log, "staff", policies)
}

// InitRoleInheritance links the staff tiers so admin checks collapse into a
// single Enforce call per request.
func InitRoleInheritance(enforcer *Enforcer, log logger.Interface) error {
	links := [][2]string{
		{authorization.RoleAdmin.String(), authorization.RoleModerator.String()},
		{authorization.RoleSuperAdmin.String(), authorization.RoleAdmin.String()},
	}

	for _, link := range links {
		if err := enforcer.AddRoleForUser(link[0], link[1]); err != nil {
			log.Errorw("failed to add role inheritance",
				"error", err,
				"role", link[0],
				"inherits", link[1])
			return fmt.Errorf("failed to add role inheritance [%s -> %s]: %w", link[0], link[1], err)
		}
	}

	log.Info("role inheritance initialized successfully")
	return nil
}

// InitAllPermissions initializes the full policy set
func InitAllPermissions(enforcer *Enforcer, log logger.Interface) error {
	if err := InitAdvertiserPermissions(enforcer, log); err != nil {
		return err
	}

	if err := InitBotOwnerPermissions(enforcer, log); err != nil {
		return err
	}

	if err := InitStaffPermissions(enforcer, log); err != nil {
		return err
	}

	if err := InitRoleInheritance(enforcer, log); err != nil {
		return err
	}

	log.Info("all permissions initialized successfully")
	return nil
}

func addPolicies(enforcer *Enforcer, log logger.Interface, scope string, policies [][]string) error {
	for _, policy := range policies {
		if err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"scope", scope,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Infow("permissions initialized successfully", "scope", scope, "count", len(policies))
	return nil
}
