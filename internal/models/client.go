package models

import "time"

// Client entity. Each client is owned by exactly one commercial user;
// the ownership drives the conditional update permission.
type Client struct {
	ID                  uint      `gorm:"primaryKey"`
	FullName            string    `gorm:"not null;index"`
	Email               Email     `gorm:"not null"`
	Telephone           Telephone `gorm:"not null"`
	CompanyName         string    `gorm:"index"`
	CommercialContactID uint      `gorm:"not null;index"` // FK vers User
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// UpdateInfo applies a partial update. Nil pointers leave the field
// unchanged; there is no business rule beyond field presence.
func (c *Client) UpdateInfo(fullName *string, email *Email, telephone *Telephone, companyName *string) {
	if fullName != nil {
		c.FullName = *fullName
	}
	if email != nil {
		c.Email = *email
	}
	if telephone != nil {
		c.Telephone = *telephone
	}
	if companyName != nil {
		c.CompanyName = *companyName
	}
	c.UpdatedAt = time.Now()
}

// Field exposes the attributes conditional permission rules may inspect.
func (c *Client) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "commercial_contact_id":
		return c.CommercialContactID, true
	}
	return nil, false
}
