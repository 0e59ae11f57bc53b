// Package repository defines per-entity persistence contracts and their
// GORM and in-memory implementations. Use cases depend only on the
// interfaces, never on storage details.
package repository

import (
	"context"
	"errors"

	"github.com/diewo77/go-crm/internal/models"
)

// ErrNotFound is returned by FindByID-style lookups when no row matches.
var ErrNotFound = errors.New("not found")

// UserCriteria filters user listings. Nil fields are ignored.
type UserCriteria struct {
	Role *models.Role
}

// ClientCriteria filters client listings.
type ClientCriteria struct {
	CommercialContactID *uint
}

// ContratCriteria filters contrat listings.
type ContratCriteria struct {
	CommercialContactID *uint
	Signed              *bool
	FullyPaid           *bool
}

// EventCriteria filters event listings. Unassigned selects events that
// have no support contact yet.
type EventCriteria struct {
	SupportContactID *uint
	Unassigned       bool
}

// UserRepository persists collaborator accounts.
type UserRepository interface {
	// Save inserts when ID is zero, updates otherwise; returns the
	// persisted entity with its assigned ID.
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
	FindAll(ctx context.Context, criteria UserCriteria) ([]models.User, error)
	Exist(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// ClientRepository persists clients.
type ClientRepository interface {
	Save(ctx context.Context, client *models.Client) (*models.Client, error)
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindAll(ctx context.Context, criteria ClientCriteria) ([]models.Client, error)
	Exist(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// ContratRepository persists contrats.
type ContratRepository interface {
	Save(ctx context.Context, contrat *models.Contrat) (*models.Contrat, error)
	FindByID(ctx context.Context, id uint) (*models.Contrat, error)
	FindByClientID(ctx context.Context, clientID uint) ([]models.Contrat, error)
	FindAll(ctx context.Context, criteria ContratCriteria) ([]models.Contrat, error)
	Exist(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// EventRepository persists events.
type EventRepository interface {
	Save(ctx context.Context, event *models.Event) (*models.Event, error)
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByContratID(ctx context.Context, contratID uint) ([]models.Event, error)
	FindAll(ctx context.Context, criteria EventCriteria) ([]models.Event, error)
	Exist(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}
