package rbac

// Role constants
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleClient   = "client"
)

// Permission constants
const (
	PermDecideCampaign  = "decide_campaign"
	PermDeleteCampaign  = "delete_campaign"
	PermViewCampaigns   = "view_campaigns"
	PermViewStats       = "view_stats"
	PermManageBanners   = "manage_banners"
	PermManageNotices   = "manage_notices"
	PermSubmitCampaign  = "submit_campaign"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermDecideCampaign, PermDeleteCampaign, PermViewCampaigns, PermViewStats,
		PermManageBanners, PermManageNotices,
	},
	RoleOperator: {
		PermViewCampaigns, PermViewStats,
	},
	RoleClient: {
		PermSubmitCampaign,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsBackOfficeRole reports whether a role may sign in to the admin console.
func IsBackOfficeRole(role string) bool {
	return role == RoleAdmin || role == RoleOperator
}
