package repository

import (
	"context"
	"sync"

	"github.com/diewo77/go-crm/internal/models"
)

// In-memory repositories. Used by tests and available as a storage-free
// backend for demos. Entities are stored by value so callers never share
// internal state.

// MemoryUserRepository is a map-backed UserRepository.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: make(map[uint]models.User)}
}

func (r *MemoryUserRepository) Save(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = *user
	saved := *user
	return &saved, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email.String() == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.FindAll(ctx, UserCriteria{Role: &role})
}

func (r *MemoryUserRepository) FindAll(_ context.Context, criteria UserCriteria) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.User
	for id := uint(1); id < r.nextID; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		if criteria.Role != nil && u.Role != *criteria.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *MemoryUserRepository) Exist(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// MemoryClientRepository is a map-backed ClientRepository.
type MemoryClientRepository struct {
	mu      sync.RWMutex
	nextID  uint
	clients map[uint]models.Client
}

func NewMemoryClientRepository() *MemoryClientRepository {
	return &MemoryClientRepository{nextID: 1, clients: make(map[uint]models.Client)}
}

func (r *MemoryClientRepository) Save(_ context.Context, client *models.Client) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client.ID == 0 {
		client.ID = r.nextID
		r.nextID++
	} else if client.ID >= r.nextID {
		r.nextID = client.ID + 1
	}
	r.clients[client.ID] = *client
	saved := *client
	return &saved, nil
}

func (r *MemoryClientRepository) FindByID(_ context.Context, id uint) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryClientRepository) FindAll(_ context.Context, criteria ClientCriteria) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Client
	for id := uint(1); id < r.nextID; id++ {
		c, ok := r.clients[id]
		if !ok {
			continue
		}
		if criteria.CommercialContactID != nil && c.CommercialContactID != *criteria.CommercialContactID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryClientRepository) Exist(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[id]
	return ok, nil
}

func (r *MemoryClientRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	return nil
}

// MemoryContratRepository is a map-backed ContratRepository.
type MemoryContratRepository struct {
	mu       sync.RWMutex
	nextID   uint
	contrats map[uint]models.Contrat
}

func NewMemoryContratRepository() *MemoryContratRepository {
	return &MemoryContratRepository{nextID: 1, contrats: make(map[uint]models.Contrat)}
}

func (r *MemoryContratRepository) Save(_ context.Context, contrat *models.Contrat) (*models.Contrat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contrat.ID == 0 {
		contrat.ID = r.nextID
		r.nextID++
	} else if contrat.ID >= r.nextID {
		r.nextID = contrat.ID + 1
	}
	r.contrats[contrat.ID] = *contrat
	saved := *contrat
	return &saved, nil
}

func (r *MemoryContratRepository) FindByID(_ context.Context, id uint) (*models.Contrat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contrats[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryContratRepository) FindByClientID(_ context.Context, clientID uint) ([]models.Contrat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Contrat
	for id := uint(1); id < r.nextID; id++ {
		c, ok := r.contrats[id]
		if ok && c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryContratRepository) FindAll(_ context.Context, criteria ContratCriteria) ([]models.Contrat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Contrat
	for id := uint(1); id < r.nextID; id++ {
		c, ok := r.contrats[id]
		if !ok {
			continue
		}
		if criteria.CommercialContactID != nil && c.CommercialContactID != *criteria.CommercialContactID {
			continue
		}
		if criteria.Signed != nil && c.IsSigned() != *criteria.Signed {
			continue
		}
		if criteria.FullyPaid != nil && c.IsFullyPaid() != *criteria.FullyPaid {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryContratRepository) Exist(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.contrats[id]
	return ok, nil
}

func (r *MemoryContratRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contrats, id)
	return nil
}

// MemoryEventRepository is a map-backed EventRepository.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	nextID uint
	events map[uint]models.Event
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{nextID: 1, events: make(map[uint]models.Event)}
}

func (r *MemoryEventRepository) Save(_ context.Context, event *models.Event) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == 0 {
		event.ID = r.nextID
		r.nextID++
	} else if event.ID >= r.nextID {
		r.nextID = event.ID + 1
	}
	r.events[event.ID] = *event
	saved := *event
	return &saved, nil
}

func (r *MemoryEventRepository) FindByID(_ context.Context, id uint) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryEventRepository) FindByContratID(_ context.Context, contratID uint) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Event
	for id := uint(1); id < r.nextID; id++ {
		e, ok := r.events[id]
		if ok && e.ContratID == contratID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryEventRepository) FindAll(_ context.Context, criteria EventCriteria) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Event
	for id := uint(1); id < r.nextID; id++ {
		e, ok := r.events[id]
		if !ok {
			continue
		}
		if criteria.SupportContactID != nil {
			if e.SupportContactID == nil || *e.SupportContactID != *criteria.SupportContactID {
				continue
			}
		}
		if criteria.Unassigned && e.SupportContactID != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *MemoryEventRepository) Exist(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.events[id]
	return ok, nil
}

func (r *MemoryEventRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}
