package models

import (
	"fmt"
	"strings"
	"time"
)

// Event organized for a client under a signed contrat. Created without a
// support contact; one SUPPORT user is assigned later, exactly once.
type Event struct {
	ID               uint      `gorm:"primaryKey"`
	Name             string    `gorm:"not null"`
	ContratID        uint      `gorm:"not null;index"` // FK vers Contrat
	ClientID         uint      `gorm:"not null;index"` // FK vers Client
	SupportContactID *uint     `gorm:"index"`          // FK vers User, nil tant que non assigné
	StartDate        time.Time `gorm:"not null"`
	EndDate          time.Time `gorm:"not null"`
	Location         string    `gorm:"not null"`
	Attendees        int       `gorm:"not null"`
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewEvent validates and builds an unassigned event. All construction
// invariants live here; use cases rely on this single point of truth.
func NewEvent(name string, contratID, clientID uint, start, end time.Time, location string, attendees int, notes string) (*Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: le nom est requis", ErrBusinessRule)
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: le lieu est requis", ErrBusinessRule)
	}
	if start.Before(time.Now()) {
		return nil, fmt.Errorf("%w: la date de début est déjà passée", ErrBusinessRule)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: la date de fin doit être après la date de début", ErrBusinessRule)
	}
	if attendees <= 0 {
		return nil, fmt.Errorf("%w: le nombre de participants doit être positif", ErrBusinessRule)
	}
	now := time.Now()
	return &Event{
		Name:      name,
		ContratID: contratID,
		ClientID:  clientID,
		StartDate: start,
		EndDate:   end,
		Location:  location,
		Attendees: attendees,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasSupportContact reports whether a support user has been assigned.
func (e *Event) HasSupportContact() bool { return e.SupportContactID != nil }

// AssignSupport sets the support contact. Only SUPPORT users qualify.
// The already-assigned guard lives at the use-case layer.
func (e *Event) AssignSupport(user *User) error {
	if user == nil || !user.IsSupport() {
		return fmt.Errorf("%w: l'utilisateur n'a pas le rôle SUPPORT", ErrPermission)
	}
	e.SupportContactID = &user.ID
	e.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo applies a partial update, re-validating every supplied
// field. Date ordering is checked against the effective (possibly
// updated) dates.
func (e *Event) UpdateInfo(name *string, start, end *time.Time, location *string, attendees *int, notes *string) error {
	newStart, newEnd := e.StartDate, e.EndDate
	if start != nil {
		newStart = *start
	}
	if end != nil {
		newEnd = *end
	}
	if !newEnd.After(newStart) {
		return fmt.Errorf("%w: la date de fin doit être après la date de début", ErrBusinessRule)
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: le nom est requis", ErrBusinessRule)
	}
	if location != nil && strings.TrimSpace(*location) == "" {
		return fmt.Errorf("%w: le lieu est requis", ErrBusinessRule)
	}
	if attendees != nil && *attendees <= 0 {
		return fmt.Errorf("%w: le nombre de participants doit être positif", ErrBusinessRule)
	}

	if name != nil {
		e.Name = *name
	}
	e.StartDate, e.EndDate = newStart, newEnd
	if location != nil {
		e.Location = *location
	}
	if attendees != nil {
		e.Attendees = *attendees
	}
	if notes != nil {
		e.Notes = *notes
	}
	e.UpdatedAt = time.Now()
	return nil
}

// Field exposes the attributes conditional permission rules may inspect.
func (e *Event) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "contrat_id":
		return e.ContratID, true
	case "client_id":
		return e.ClientID, true
	case "support_contact_id":
		if e.SupportContactID == nil {
			return uint(0), true
		}
		return *e.SupportContactID, true
	}
	return nil, false
}
