package directory

import (
	"sort"
	"strings"
)

// GuildRole is a raw role entry from the directory.
type GuildRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Role is the resolved membership role. Admin wins over any cohort label;
// for non-admins, Name is the pod label ("Pod 1.2.3") and Cohort is the
// cohort field parsed from it.
type Role struct {
	Name   string
	Admin  bool
	Cohort string
}

const adminRoleName = "admin"
const podPrefix = "Pod "

// cohortOf parses the cohort field from a pod role name: "Pod 1.2.3" → "1".
// Returns "" for names that are not pod labels.
func cohortOf(name string) string {
	rest, ok := strings.CutPrefix(name, podPrefix)
	if !ok || rest == "" {
		return ""
	}
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// ResolveRole maps a member's guild role ids to a single Role.
//
// Precedence is deterministic: an "admin" role beats any cohort label, and
// among multiple current-cohort labels the lexicographically smallest role
// name wins. Labels from other cohorts are ignored.
func ResolveRole(memberRoleIDs []string, guildRoles []GuildRole, currentCohort string) Role {
	held := make(map[string]bool, len(memberRoleIDs))
	for _, id := range memberRoleIDs {
		held[id] = true
	}

	var pods []string
	for _, gr := range guildRoles {
		if !held[gr.ID] {
			continue
		}
		if gr.Name == adminRoleName {
			return Role{Name: adminRoleName, Admin: true}
		}
		if c := cohortOf(gr.Name); c != "" && c == currentCohort {
			pods = append(pods, gr.Name)
		}
	}

	if len(pods) == 0 {
		return Role{}
	}
	sort.Strings(pods)
	return Role{Name: pods[0], Cohort: currentCohort}
}
