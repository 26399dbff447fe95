package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleAdmin, PermDecideCampaign, true},
		{RoleAdmin, PermDeleteCampaign, true},
		{RoleAdmin, PermViewStats, true},
		{RoleOperator, PermViewCampaigns, true},
		{RoleOperator, PermDecideCampaign, false},
		{RoleOperator, PermDeleteCampaign, false},
		{RoleClient, PermSubmitCampaign, true},
		{RoleClient, PermViewCampaigns, false},
		{"nonexistent", PermViewCampaigns, false},
		{RoleAdmin, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestIsBackOfficeRole(t *testing.T) {
	if !IsBackOfficeRole(RoleAdmin) || !IsBackOfficeRole(RoleOperator) {
		t.Error("admin and operator are back-office roles")
	}
	if IsBackOfficeRole(RoleClient) || IsBackOfficeRole("") {
		t.Error("client and unknown roles are not back-office roles")
	}
}
