package directory

import "testing"

func TestCohortOf(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Pod 0.1.1", "0"},
		{"Pod 1.2", "1"},
		{"Pod 2", "2"},
		{"admin", ""},
		{"Moderator", ""},
		{"Pod ", ""},
	}
	for _, tc := range cases {
		if got := cohortOf(tc.name); got != tc.want {
			t.Errorf("cohortOf(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveRoleAdminPrecedence(t *testing.T) {
	guildRoles := []GuildRole{
		{ID: "10", Name: "Pod 0.1.1"},
		{ID: "11", Name: "admin"},
		{ID: "12", Name: "Pod 0.2.2"},
	}

	role := ResolveRole([]string{"10", "11", "12"}, guildRoles, "0")
	if !role.Admin {
		t.Fatal("admin role should win over cohort labels")
	}
	if role.Name != "admin" {
		t.Errorf("name = %q, want admin", role.Name)
	}
}

func TestResolveRoleDeterministicAmongPods(t *testing.T) {
	guildRoles := []GuildRole{
		{ID: "12", Name: "Pod 0.2.2"},
		{ID: "10", Name: "Pod 0.1.1"},
	}

	// Regardless of listing order, the smallest role name wins.
	role := ResolveRole([]string{"12", "10"}, guildRoles, "0")
	if role.Name != "Pod 0.1.1" {
		t.Errorf("name = %q, want Pod 0.1.1", role.Name)
	}
	if role.Cohort != "0" {
		t.Errorf("cohort = %q, want 0", role.Cohort)
	}
}

func TestResolveRoleIgnoresOtherCohorts(t *testing.T) {
	guildRoles := []GuildRole{
		{ID: "10", Name: "Pod 1.1.1"},
		{ID: "11", Name: "Pod 0.3.3"},
	}

	role := ResolveRole([]string{"10", "11"}, guildRoles, "0")
	if role.Name != "Pod 0.3.3" {
		t.Errorf("name = %q, want Pod 0.3.3", role.Name)
	}

	role = ResolveRole([]string{"10"}, guildRoles, "0")
	if role.Name != "" || role.Admin {
		t.Errorf("expected empty role for stale cohort, got %+v", role)
	}
}
