package users

// RoleType represents a user role as reported by the backend
type RoleType string

const (
	RoleAdmin    RoleType = "admin"
	RoleBusiness RoleType = "business"
	RoleUser     RoleType = "user"
)

// Profile is the read-mostly projection of the server-side user record. It is
// owned by the session manager; all mutations flow through the manager's
// update operation so the token/profile invariant holds.
type Profile struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	Username     string   `json:"username,omitempty"`
	Name         string   `json:"name,omitempty"`
	Nickname     string   `json:"nickname,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	ProfileImage string   `json:"profile_image,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Role         RoleType `json:"role"`
	IsActive     bool     `json:"is_active"`
	IsVerified   bool     `json:"is_verified"`
	IsPremium    bool     `json:"is_premium"`
	PetTypes     []string `json:"pet_types,omitempty"`
	Address      string   `json:"address,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
	LastLoginAt  string   `json:"last_login_at,omitempty"`
}

// IsAdmin returns true if the user has admin privileges
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// DisplayName returns the nickname when one is set, falling back to the name
// and then the username.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// untouched server-side.
type ProfileUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Nickname     *string  `json:"nickname,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	ProfileImage *string  `json:"profile_image,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	PetTypes     []string `json:"pet_types,omitempty"`
	Address      *string  `json:"address,omitempty"`
}
