package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
)

func (f *fixture) seedSignedContrat(t *testing.T, clientID, commercialID uint) *models.Contrat {
	t.Helper()
	contrat := f.seedContrat(t, clientID, commercialID, "1000")
	require.NoError(t, contrat.Sign())
	saved, err := f.contrats.Save(f.ctx, contrat)
	require.NoError(t, err)
	return saved
}

func (f *fixture) seedEvent(t *testing.T, contrat *models.Contrat) *models.Event {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	event, err := models.NewEvent("Gala annuel", contrat.ID, contrat.ClientID, start, start.Add(4*time.Hour), "Paris", 80, "")
	require.NoError(t, err)
	saved, err := f.events.Save(f.ctx, event)
	require.NoError(t, err)
	return saved
}

func TestCreateEventUnderOwnSignedContrat(t *testing.T) {
	f := newFixture(t)
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	client := f.seedClient(t, commercial.ID)
	contrat := f.seedSignedContrat(t, client.ID, commercial.ID)

	start := time.Now().Add(48 * time.Hour)
	uc := NewCreateEventUseCase(f.events, f.contrats, f.policy)
	resp := uc.Execute(f.ctx, CreateEventRequest{
		Name:          "Gala annuel",
		ContratID:     contrat.ID,
		StartDate:     start,
		EndDate:       start.Add(6 * time.Hour),
		Location:      "53 Rue du Château, Candé-sur-Beuvron",
		Attendees:     75,
		Notes:         "Prévoir le traiteur",
		Authorization: authz(commercial, policy.ResourceEvent, gate.ActionCreate),
	})

	require.True(t, resp.Success, resp.Msg)
	assert.Equal(t, contrat.ID, resp.Event.ContratID)
	// the client comes from the contrat, not from caller input
	assert.Equal(t, client.ID, resp.Event.ClientID)
	assert.False(t, resp.Event.HasSupportContact())
}

func TestCreateEventRejectsUnsignedContrat(t *testing.T) {
	f := newFixture(t)
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	client := f.seedClient(t, commercial.ID)
	contrat := f.seedContrat(t, client.ID, commercial.ID, "1000")

	start := time.Now().Add(48 * time.Hour)
	uc := NewCreateEventUseCase(f.events, f.contrats, f.policy)
	resp := uc.Execute(f.ctx, CreateEventRequest{
		Name:          "Gala annuel",
		ContratID:     contrat.ID,
		StartDate:     start,
		EndDate:       start.Add(6 * time.Hour),
		Location:      "Paris",
		Attendees:     75,
		Authorization: authz(commercial, policy.ResourceEvent, gate.ActionCreate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
}

func TestCreateEventRejectsForeignContrat(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	stranger := f.seedUser(t, 9, models.RoleCommercial, "marc@epic.fr")
	client := f.seedClient(t, owner.ID)
	contrat := f.seedSignedContrat(t, client.ID, owner.ID)

	start := time.Now().Add(48 * time.Hour)
	uc := NewCreateEventUseCase(f.events, f.contrats, f.policy)
	resp := uc.Execute(f.ctx, CreateEventRequest{
		Name:          "Gala annuel",
		ContratID:     contrat.ID,
		StartDate:     start,
		EndDate:       start.Add(6 * time.Hour),
		Location:      "Paris",
		Attendees:     75,
		Authorization: authz(stranger, policy.ResourceEvent, gate.ActionCreate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)
	assert.Equal(t, "Le contrat n'appartient pas au commercial", resp.Msg)
}

func TestAssignSupportOnce(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	support := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	other := f.seedUser(t, 8, models.RoleSupport, "lise@epic.fr")
	contrat := f.seedSignedContrat(t, 1, 4)
	event := f.seedEvent(t, contrat)

	uc := NewAssignSupportEventUseCase(f.events, f.users, f.policy)
	resp := uc.Execute(f.ctx, AssignSupportEventRequest{
		EventID:       event.ID,
		SupportUserID: support.ID,
		Authorization: authz(gestion, policy.ResourceEvent, gate.ActionAssign),
	})
	require.True(t, resp.Success, resp.Msg)
	require.NotNil(t, resp.Event.SupportContactID)
	assert.Equal(t, support.ID, *resp.Event.SupportContactID)

	resp = uc.Execute(f.ctx, AssignSupportEventRequest{
		EventID:       event.ID,
		SupportUserID: other.ID,
		Authorization: authz(gestion, policy.ResourceEvent, gate.ActionAssign),
	})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
	assert.Equal(t, "L'évènement a déjà un contact support", resp.Msg)
}

func TestAssignSupportRejectsNonSupportUser(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	contrat := f.seedSignedContrat(t, 1, commercial.ID)
	event := f.seedEvent(t, contrat)

	uc := NewAssignSupportEventUseCase(f.events, f.users, f.policy)
	resp := uc.Execute(f.ctx, AssignSupportEventRequest{
		EventID:       event.ID,
		SupportUserID: commercial.ID,
		Authorization: authz(gestion, policy.ResourceEvent, gate.ActionAssign),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)

	kept, err := f.events.FindByID(f.ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, kept.HasSupportContact())
}

func TestAssignSupportDeniedForCommercial(t *testing.T) {
	f := newFixture(t)
	commercial := f.seedUser(t, 4, models.RoleCommercial, "jean@epic.fr")
	support := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	contrat := f.seedSignedContrat(t, 1, commercial.ID)
	event := f.seedEvent(t, contrat)

	uc := NewAssignSupportEventUseCase(f.events, f.users, f.policy)
	resp := uc.Execute(f.ctx, AssignSupportEventRequest{
		EventID:       event.ID,
		SupportUserID: support.ID,
		Authorization: authz(commercial, policy.ResourceEvent, gate.ActionAssign),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)
}

func TestUpdateEventByAssignedSupport(t *testing.T) {
	f := newFixture(t)
	support := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	contrat := f.seedSignedContrat(t, 1, 4)
	event := f.seedEvent(t, contrat)
	require.NoError(t, event.AssignSupport(support))
	_, err := f.events.Save(f.ctx, event)
	require.NoError(t, err)

	notes := "Salle confirmée"
	uc := NewUpdateEventUseCase(f.events, f.policy)
	resp := uc.Execute(f.ctx, UpdateEventRequest{
		EventID:       event.ID,
		Notes:         &notes,
		Authorization: authz(support, policy.ResourceEvent, gate.ActionUpdate),
	})

	require.True(t, resp.Success, resp.Msg)
	assert.Equal(t, "Salle confirmée", resp.Event.Notes)
}

func TestUpdateEventDeniedForOtherSupport(t *testing.T) {
	f := newFixture(t)
	assigned := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	other := f.seedUser(t, 8, models.RoleSupport, "lise@epic.fr")
	contrat := f.seedSignedContrat(t, 1, 4)
	event := f.seedEvent(t, contrat)
	require.NoError(t, event.AssignSupport(assigned))
	_, err := f.events.Save(f.ctx, event)
	require.NoError(t, err)

	notes := "Intrusion"
	uc := NewUpdateEventUseCase(f.events, f.policy)
	resp := uc.Execute(f.ctx, UpdateEventRequest{
		EventID:       event.ID,
		Notes:         &notes,
		Authorization: authz(other, policy.ResourceEvent, gate.ActionUpdate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)
}

func TestUpdateEventRejectsInvertedDates(t *testing.T) {
	f := newFixture(t)
	gestion := f.seedUser(t, 2, models.RoleGestion, "anna@epic.fr")
	contrat := f.seedSignedContrat(t, 1, 4)
	event := f.seedEvent(t, contrat)

	badEnd := event.StartDate.Add(-time.Hour)
	uc := NewUpdateEventUseCase(f.events, f.policy)
	resp := uc.Execute(f.ctx, UpdateEventRequest{
		EventID:       event.ID,
		EndDate:       &badEnd,
		Authorization: authz(gestion, policy.ResourceEvent, gate.ActionUpdate),
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorBusiness, resp.Error)
}

func TestListEventFilters(t *testing.T) {
	f := newFixture(t)
	support := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	contrat := f.seedSignedContrat(t, 1, 4)
	assigned := f.seedEvent(t, contrat)
	require.NoError(t, assigned.AssignSupport(support))
	_, err := f.events.Save(f.ctx, assigned)
	require.NoError(t, err)
	orphan := f.seedEvent(t, contrat)

	uc := NewListEventUseCase(f.events)

	resp := uc.Execute(f.ctx, ListEventRequest{UserID: support.ID, Filter: EventFilterMine})
	require.True(t, resp.Success, resp.Msg)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, assigned.ID, resp.Events[0].ID)

	resp = uc.Execute(f.ctx, ListEventRequest{Filter: EventFilterNoSupport})
	require.True(t, resp.Success, resp.Msg)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, orphan.ID, resp.Events[0].ID)
}

func TestDeleteEventAdminOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, 1, models.RoleAdmin, "admin@epic.fr")
	support := f.seedUser(t, 7, models.RoleSupport, "aude@epic.fr")
	contrat := f.seedSignedContrat(t, 1, 4)
	event := f.seedEvent(t, contrat)

	uc := NewDeleteEventUseCase(f.events, f.policy)

	resp := uc.Execute(f.ctx, DeleteEventRequest{
		EventID:       event.ID,
		Authorization: authz(support, policy.ResourceEvent, gate.ActionDelete),
	})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrorPermission, resp.Error)

	resp = uc.Execute(f.ctx, DeleteEventRequest{
		EventID:       event.ID,
		Authorization: authz(admin, policy.ResourceEvent, gate.ActionDelete),
	})
	require.True(t, resp.Success, resp.Msg)
}
