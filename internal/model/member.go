package model

import "time"

// RoleAdmin is the role string granted by the directory to program admins.
// Every other role value is a pod (cohort group) label.
const RoleAdmin = "admin"

// Member is a program participant. The ID is the stable Discord snowflake
// assigned by the directory; Name is the unique display name ("user#1234").
// PointsTotal is owned by the award engine and always equals the sum of the
// member's committed awards.
type Member struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Avatar      string    `json:"-"`
	PointsTotal int       `json:"points_total"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdmin reports whether the member carries the admin role.
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// AvatarURL returns the CDN URL for the member's avatar, or "" if unset.
func (m *Member) AvatarURL() string {
	if m.Avatar == "" {
		return ""
	}
	return "https://cdn.discordapp.com/avatars/" + m.ID + "/" + m.Avatar + ".png?size=128"
}
