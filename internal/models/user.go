package models

import "time"

// Role of a collaborator. Fixed at creation; there is no role-change
// operation.
type Role string

const (
	RoleCommercial Role = "COMMERCIAL"
	RoleSupport    Role = "SUPPORT"
	RoleGestion    Role = "GESTION"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCommercial, RoleSupport, RoleGestion, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User is a collaborator account.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"not null"`
	Email     Email  `gorm:"unique;not null;index"`
	Password  string `gorm:"not null"` // hashé
	Role      Role   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsCommercial() bool { return u.Role == RoleCommercial }
func (u *User) IsSupport() bool    { return u.Role == RoleSupport }
func (u *User) IsGestion() bool    { return u.Role == RoleGestion }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }

// UpdateInfo applies a partial update. Nil pointers leave the field
// unchanged.
func (u *User) UpdateInfo(fullName *string, email *Email) {
	if fullName != nil {
		u.FullName = *fullName
	}
	if email != nil {
		u.Email = *email
	}
	u.UpdatedAt = time.Now()
}

// Field exposes the attributes conditional permission rules may inspect.
func (u *User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "role":
		return string(u.Role), true
	}
	return nil, false
}
