package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
)

// Full lifecycle: gestion creates, the owning commercial signs, two
// payments settle the balance, further payments are refused.
func TestContratLifecycle(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	client := f.seedClient(t, commercial.ID)

	create := NewCreateContratUseCase(f.contrats, f.clients, f.users, f.policy)
	resp := create.Execute(f.ctx, CreateContratRequest{
		ClientID:            client.ID,
		CommercialContactID: commercial.ID,
		ContratAmount:       "1000",
		Authorization:       authz(gestion, policy.ResourceContrat, gate.ActionCreate),
	})
	require.True(t, resp.Success, resp.Msg)
	contratID := resp.Contrat.ID
	assert.Equal(t, models.StatusUnsigned, resp.Contrat.Status)
	assert.Equal(t, "1000.00", resp.Contrat.BalanceDue.String())

	sign := NewSignContratUseCase(f.contrats, f.policy)
	resp = sign.Execute(f.ctx, SignContratRequest{
		ContratID:     contratID,
		Authorization: authz(commercial, policy.ResourceContrat, gate.ActionSign),
	})
	require.True(t, resp.Success, resp.Msg)
	assert.Equal(t, models.StatusSigned, resp.Contrat.Status)

	pay := NewRecordPaymentUseCase(f.contrats, f.policy)
	resp = pay.Execute(f.ctx, RecordPaymentRequest{
		ContratID:     contratID,
		Payment:       "400",
		Authorization: authz(commercial, policy.ResourceContrat, gate.ActionPay),
	})
	require.True(t, resp.Success, resp.Msg)
	assert.Equal(t, "600.00", resp.Contrat.BalanceDue.String())

	resp = pay.Execute(f.ctx, RecordPaymentRequest{
		ContratID:     contratID,
		Payment:       "600",
		Authorization: authz(commercial, policy.ResourceContrat, gate.ActionPay),
	})
	require.True(t, resp.Success, resp.Msg)
	assert.True(t, resp.Contrat.IsFullyPaid())

	resp = pay.Execute(f.ctx, RecordPaymentRequest{
		ContratID:     contratID,
		Payment:       "1",
		Authorization: authz(commercial, policy.ResourceContrat, gate.ActionPay),
	})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
	assert.Equal(t, "Le contrat a été entièrement réglé", resp.Msg)
}

func TestCreateContratDeniedForCommercial(t *testing.T) {
	f := newFixture(t)
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	client := f.seedClient(t, commercial.ID)

	uc := NewCreateContratUseCase(f.contrats, f.clients, f.users, f.policy)
	resp := uc.Execute(f.ctx, CreateContratRequest{
		ClientID:            client.ID,
		CommercialContactID: commercial.ID,
		ContratAmount:       "500",
		Authorization:       authz(commercial, policy.ResourceContrat, gate.ActionCreate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)
}

func TestCreateContratRejectsNonCommercialContact(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	support := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	client := f.seedClient(t, 4)

	uc := NewCreateContratUseCase(f.contrats, f.clients, f.users, f.policy)
	resp := uc.Execute(f.ctx, CreateContratRequest{
		ClientID:            client.ID,
		CommercialContactID: support.ID,
		ContratAmount:       "500",
		Authorization:       authz(gestion, policy.ResourceContrat, gate.ActionCreate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
}

func TestCreateContratUnknownClient(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")

	uc := NewCreateContratUseCase(f.contrats, f.clients, f.users, f.policy)
	resp := uc.Execute(f.ctx, CreateContratRequest{
		ClientID:            123,
		CommercialContactID: 4,
		ContratAmount:       "500",
		Authorization:       authz(gestion, policy.ResourceContrat, gate.ActionCreate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorResource, resp.Error)
	assert.Equal(t, "Client non trouvé", resp.Msg)
}

func TestUpdateContratAmountResetsBalance(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	contrat := f.seedContrat(t, 1, 4, "1000")

	amount := "1500.50"
	uc := NewUpdateContratUseCase(f.contrats, f.policy)
	resp := uc.Execute(f.ctx, UpdateContratRequest{
		ContratID:     contrat.ID,
		ContratAmount: &amount,
		Authorization: authz(gestion, policy.ResourceContrat, gate.ActionUpdate),
	})

	require.True(t, resp.Success, resp.Msg)
	assert.Equal(t, "1500.50", resp.Contrat.ContratAmount.String())
	assert.Equal(t, "1500.50", resp.Contrat.BalanceDue.String())
}

func TestUpdateContratFrozenOnceSigned(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	contrat := f.seedContrat(t, 1, 4, "1000")
	require.NoError(t, contrat.Sign())
	_, err := f.contrats.Save(f.ctx, contrat)
	require.NoError(t, err)

	amount := "2000"
	uc := NewUpdateContratUseCase(f.contrats, f.policy)
	resp := uc.Execute(f.ctx, UpdateContratRequest{
		ContratID:     contrat.ID,
		ContratAmount: &amount,
		Authorization: authz(gestion, policy.ResourceContrat, gate.ActionUpdate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
	assert.Equal(t, "Un contrat signé ne peut plus être modifié", resp.Msg)
}

func TestSignContratDeniedForOtherCommercial(t *testing.T) {
	f := newFixture(t)
	stranger := f.seedUser(t, 9, models.RoleCommercial, "marc@epic.fr")
	contrat := f.seedContrat(t, 1, 4, "1000")

	uc := NewSignContratUseCase(f.contrats, f.policy)
	resp := uc.Execute(f.ctx, SignContratRequest{
		ContratID:     contrat.ID,
		Authorization: authz(stranger, policy.ResourceContrat, gate.ActionSign),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)

	kept, err := f.contrats.FindByID(f.ctx, contrat.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsSigned())
}

func TestRecordPaymentRejectedOnUnsignedContrat(t *testing.T) {
	f := newFixture(t)
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	contrat := f.seedContrat(t, 1, commercial.ID, "1000")

	uc := NewRecordPaymentUseCase(f.contrats, f.policy)
	resp := uc.Execute(f.ctx, RecordPaymentRequest{
		ContratID:     contrat.ID,
		Payment:       "100",
		Authorization: authz(commercial, policy.ResourceContrat, gate.ActionPay),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	f := newFixture(t)
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	contrat := f.seedContrat(t, 1, commercial.ID, "1000")
	require.NoError(t, contrat.Sign())
	_, err := f.contrats.Save(f.ctx, contrat)
	require.NoError(t, err)

	uc := NewRecordPaymentUseCase(f.contrats, f.policy)
	resp := uc.Execute(f.ctx, RecordPaymentRequest{
		ContratID:     contrat.ID,
		Payment:       "1000.01",
		Authorization: authz(commercial, policy.ResourceContrat, gate.ActionPay),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)

	kept, err := f.contrats.FindByID(f.ctx, contrat.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", kept.BalanceDue.String())
}

func TestListContratFilters(t *testing.T) {
	f := newFixture(t)
	mine := f.seedContrat(t, 1, 4, "1000")
	signed := f.seedContrat(t, 1, 9, "500")
	require.NoError(t, signed.Sign())
	paid, err := models.NewMoney("500")
	require.NoError(t, err)
	require.NoError(t, signed.RecordPayment(paid))
	_, err = f.contrats.Save(f.ctx, signed)
	require.NoError(t, err)

	uc := NewListContratUseCase(f.contrats)

	resp := uc.Execute(f.ctx, ListContratRequest{UserID: 4, Filter: ContratFilterMine})
	require.True(t, resp.Success, resp.Msg)
	require.Len(t, resp.Contrats, 1)
	assert.Equal(t, mine.ID, resp.Contrats[0].ID)

	resp = uc.Execute(f.ctx, ListContratRequest{Filter: ContratFilterUnsigned})
	require.True(t, resp.Success, resp.Msg)
	require.Len(t, resp.Contrats, 1)
	assert.Equal(t, mine.ID, resp.Contrats[0].ID)

	resp = uc.Execute(f.ctx, ListContratRequest{Filter: ContratFilterFullyPaid})
	require.True(t, resp.Success, resp.Msg)
	require.Len(t, resp.Contrats, 1)
	assert.Equal(t, signed.ID, resp.Contrats[0].ID)

	resp = uc.Execute(f.ctx, ListContratRequest{Filter: ContratFilterNotFullyPaid})
	require.True(t, resp.Success, resp.Msg)
	require.Len(t, resp.Contrats, 1)
	assert.Equal(t, mine.ID, resp.Contrats[0].ID)
}

func TestDeleteContratAdminOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, 1, models.RoleAdmin, "admin@epic.fr")
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	contrat := f.seedContrat(t, 1, 4, "1000")

	uc := NewDeleteContratUseCase(f.contrats, f.policy)

	resp := uc.Execute(f.ctx, DeleteContratRequest{
		ContratID:     contrat.ID,
		Authorization: authz(gestion, policy.ResourceContrat, gate.ActionDelete),
	})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)

	resp = uc.Execute(f.ctx, DeleteContratRequest{
		ContratID:     contrat.ID,
		Authorization: authz(admin, policy.ResourceContrat, gate.ActionDelete),
	})
	require.True(t, resp.Success, resp.Msg)
}
