package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
)

// fixture bundles the memory repositories and the shipped permission
// table, mirroring how main wires the real thing.
type fixture struct {
	users    *repository.MemoryUserRepository
	clients  *repository.MemoryClientRepository
	contrats *repository.MemoryContratRepository
	events   *repository.MemoryEventRepository
	policy   *policy.Engine
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	engine, err := policy.Load("", nil)
	require.NoError(t, err)
	return &fixture{
		users:    repository.NewMemoryUserRepository(),
		clients:  repository.NewMemoryClientRepository(),
		contrats: repository.NewMemoryContratRepository(),
		events:   repository.NewMemoryEventRepository(),
		policy:   engine,
		ctx:      context.Background(),
	}
}

func (f *fixture) seedUser(t *testing.T, id uint, role models.Role, email string) *models.User {
	t.Helper()
	e, err := models.NewEmail(email)
	require.NoError(t, err)
	u := &models.User{ID: id, FullName: "User " + email, Email: e, Password: "hash", Role: role}
	saved, err := f.users.Save(f.ctx, u)
	require.NoError(t, err)
	return saved
}

func (f *fixture) seedClient(t *testing.T, commercialID uint) *models.Client {
	t.Helper()
	email, err := models.NewEmail("client@acme.fr")
	require.NoError(t, err)
	tel, err := models.NewTelephone("0245787980")
	require.NoError(t, err)
	c := &models.Client{FullName: "ACME", Email: email, Telephone: tel, CompanyName: "ACME SA", CommercialContactID: commercialID}
	saved, err := f.clients.Save(f.ctx, c)
	require.NoError(t, err)
	return saved
}

func (f *fixture) seedContrat(t *testing.T, clientID, commercialID uint, amount string) *models.Contrat {
	t.Helper()
	m, err := models.NewMoney(amount)
	require.NoError(t, err)
	saved, err := f.contrats.Save(f.ctx, models.NewContrat(clientID, commercialID, m))
	require.NoError(t, err)
	return saved
}

// authz builds the descriptor a caller would attach to a request.
func authz(user *models.User, resource string, action gate.Action) policy.RequestPolicy {
	return policy.RequestPolicy{
		Subject:  gate.Subject{ID: user.ID, Role: string(user.Role)},
		Resource: resource,
		Action:   action,
	}
}
