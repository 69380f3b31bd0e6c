package model

import "time"

// Role identifies which part of the platform a user belongs to.
type Role string

const (
	RoleTalent   Role = "talent"
	RoleMentor   Role = "mentor"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTalent, RoleMentor, RoleInvestor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User is a platform account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	Category     string    `json:"category,omitempty"`
	Location     string    `json:"location,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Followers    int64     `json:"followers"`
	CreatedAt    time.Time `json:"created_at"`
}

// TalentFilter narrows a talent directory query.
type TalentFilter struct {
	Query    string
	Category string
	Location string
	Limit    int
	Offset   int
}
