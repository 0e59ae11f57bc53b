package models

import (
	"fmt"
	"time"
)

// ContractStatus of a contrat. UNSIGNED → SIGNED, once, irreversible.
type ContractStatus string

const (
	StatusUnsigned ContractStatus = "UNSIGNED"
	StatusSigned   ContractStatus = "SIGNED"
)

// Contrat links a client to the organization for a monetary amount.
// Invariant: BalanceDue never exceeds ContratAmount and only decreases
// through recorded payments.
type Contrat struct {
	ID                  uint           `gorm:"primaryKey"`
	ClientID            uint           `gorm:"not null;index"` // FK vers Client
	CommercialContactID uint           `gorm:"not null;index"` // FK vers User
	ContratAmount       Money          `gorm:"type:numeric;not null"`
	BalanceDue          Money          `gorm:"type:numeric;not null"`
	Status              ContractStatus `gorm:"not null;default:'UNSIGNED'"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewContrat creates an unsigned contrat with the full amount due.
func NewContrat(clientID, commercialContactID uint, amount Money) *Contrat {
	now := time.Now()
	return &Contrat{
		ClientID:            clientID,
		CommercialContactID: commercialContactID,
		ContratAmount:       amount,
		BalanceDue:          amount,
		Status:              StatusUnsigned,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Sign transitions UNSIGNED → SIGNED. Signing twice violates the state
// machine.
func (c *Contrat) Sign() error {
	if c.Status == StatusSigned {
		return fmt.Errorf("%w: le contrat est déjà signé", ErrBusinessRule)
	}
	c.Status = StatusSigned
	c.UpdatedAt = time.Now()
	return nil
}

// IsSigned reports whether the contrat has been signed.
func (c *Contrat) IsSigned() bool { return c.Status == StatusSigned }

// RecordPayment decreases the balance by the paid amount. Paying more
// than the remaining balance violates the business rule and leaves the
// balance unchanged.
func (c *Contrat) RecordPayment(amount Money) error {
	if amount.Cmp(c.BalanceDue) > 0 {
		return fmt.Errorf("%w: paiement de %s supérieur au solde dû %s", ErrBusinessRule, amount, c.BalanceDue)
	}
	remaining, err := c.BalanceDue.Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBusinessRule, err)
	}
	c.BalanceDue = remaining
	c.UpdatedAt = time.Now()
	return nil
}

// IsFullyPaid reports whether the balance due is down to zero.
func (c *Contrat) IsFullyPaid() bool { return c.BalanceDue.IsZero() }

// Field exposes the attributes conditional permission rules may inspect.
func (c *Contrat) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "client_id":
		return c.ClientID, true
	case "commercial_contact_id":
		return c.CommercialContactID, true
	}
	return nil, false
}
