package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
)

// EventResponse is the uniform result of every event operation.
type EventResponse struct {
	Success bool
	Event   *models.Event
	Events  []models.Event
	Error   string
	Msg     string
}

func eventFailure(category, msg string) EventResponse {
	return EventResponse{Error: category, Msg: msg}
}

// CreateEventRequest carries the input for CreateEvent. The client is
// derived from the contract, never taken from the caller.
type CreateEventRequest struct {
	Name          string
	ContratID     uint
	StartDate     time.Time
	EndDate       time.Time
	Location      string
	Attendees     int
	Notes         string
	Authorization policy.RequestPolicy
}

// CreateEventUseCase creates an unassigned event under a signed contrat
// owned by the acting commercial.
type CreateEventUseCase struct {
	events   repository.EventRepository
	contrats repository.ContratRepository
	policy   *policy.Engine
}

func NewCreateEventUseCase(events repository.EventRepository, contrats repository.ContratRepository, engine *policy.Engine) *CreateEventUseCase {
	return &CreateEventUseCase{events: events, contrats: contrats, policy: engine}
}

func (uc *CreateEventUseCase) Execute(ctx context.Context, req CreateEventRequest) EventResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return eventFailure(ErrorPermission, "Seuls les membres commerciaux peuvent créer des évènements")
	}

	contrat, err := uc.contrats.FindByID(ctx, req.ContratID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return eventFailure(ErrorResource, "Contrat non trouvé")
		}
		return eventFailure(ErrorResource, "Échec du chargement du contrat")
	}
	if contrat.CommercialContactID != req.Authorization.Subject.ID {
		return eventFailure(ErrorPermission, "Le contrat n'appartient pas au commercial")
	}
	if !contrat.IsSigned() {
		return eventFailure(ErrorBusiness, "Un évènement requiert un contrat signé")
	}

	event, err := models.NewEvent(req.Name, contrat.ID, contrat.ClientID, req.StartDate, req.EndDate, req.Location, req.Attendees, req.Notes)
	if err != nil {
		return eventFailure(ErrorBusiness, err.Error())
	}

	saved, err := uc.events.Save(ctx, event)
	if err != nil {
		return eventFailure(ErrorResource, "Échec de l'enregistrement de l'évènement")
	}
	return EventResponse{Success: true, Event: saved}
}

// UpdateEventRequest carries a partial update; nil pointers leave the
// field unchanged.
type UpdateEventRequest struct {
	EventID       uint
	Name          *string
	StartDate     *time.Time
	EndDate       *time.Time
	Location      *string
	Attendees     *int
	Notes         *string
	Authorization policy.RequestPolicy
}

type UpdateEventUseCase struct {
	events repository.EventRepository
	policy *policy.Engine
}

func NewUpdateEventUseCase(events repository.EventRepository, engine *policy.Engine) *UpdateEventUseCase {
	return &UpdateEventUseCase{events: events, policy: engine}
}

func (uc *UpdateEventUseCase) Execute(ctx context.Context, req UpdateEventRequest) EventResponse {
	event, err := uc.events.FindByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return eventFailure(ErrorResource, "Évènement non trouvé")
		}
		return eventFailure(ErrorResource, "Échec du chargement de l'évènement")
	}

	req.Authorization.Context = event
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return eventFailure(ErrorPermission, "Vous n'êtes pas autorisé à modifier cet évènement")
	}

	if err := event.UpdateInfo(req.Name, req.StartDate, req.EndDate, req.Location, req.Attendees, req.Notes); err != nil {
		return eventFailure(ErrorBusiness, err.Error())
	}

	updated, err := uc.events.Save(ctx, event)
	if err != nil {
		return eventFailure(ErrorResource, "Échec de l'enregistrement de l'évènement")
	}
	return EventResponse{Success: true, Event: updated}
}

// AssignSupportEventRequest assigns a SUPPORT user to an event, once.
type AssignSupportEventRequest struct {
	EventID       uint
	SupportUserID uint
	Authorization policy.RequestPolicy
}

type AssignSupportEventUseCase struct {
	events repository.EventRepository
	users  repository.UserRepository
	policy *policy.Engine
}

func NewAssignSupportEventUseCase(events repository.EventRepository, users repository.UserRepository, engine *policy.Engine) *AssignSupportEventUseCase {
	return &AssignSupportEventUseCase{events: events, users: users, policy: engine}
}

func (uc *AssignSupportEventUseCase) Execute(ctx context.Context, req AssignSupportEventRequest) EventResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return eventFailure(ErrorPermission, "Seuls les membres gestion peuvent assigner un support")
	}

	event, err := uc.events.FindByID(ctx, req.EventID)
	if err != nil {
		return eventFailure(ErrorResource, "Évènement non trouvé")
	}
	// The entity does not guard re-assignment; the use case does.
	if event.HasSupportContact() {
		return eventFailure(ErrorBusiness, "L'évènement a déjà un contact support")
	}

	user, err := uc.users.FindByID(ctx, req.SupportUserID)
	if err != nil {
		return eventFailure(ErrorResource, "Utilisateur support non trouvé")
	}
	if err := event.AssignSupport(user); err != nil {
		return eventFailure(ErrorPermission, err.Error())
	}

	if _, err := uc.events.Save(ctx, event); err != nil {
		return eventFailure(ErrorResource, "Échec de l'enregistrement de l'évènement")
	}
	return EventResponse{Success: true, Event: event}
}

// GetEventUseCase loads one event.
type GetEventUseCase struct {
	events repository.EventRepository
}

func NewGetEventUseCase(events repository.EventRepository) *GetEventUseCase {
	return &GetEventUseCase{events: events}
}

func (uc *GetEventUseCase) Execute(ctx context.Context, eventID uint) EventResponse {
	event, err := uc.events.FindByID(ctx, eventID)
	if err != nil {
		return eventFailure(ErrorResource, "Évènement non trouvé")
	}
	return EventResponse{Success: true, Event: event}
}

// EventFilter selects a subset of events when listing.
type EventFilter string

const (
	EventFilterMine      EventFilter = "mine"
	EventFilterNoSupport EventFilter = "no-support"
)

type ListEventRequest struct {
	UserID uint
	Filter EventFilter
}

type ListEventUseCase struct {
	events repository.EventRepository
}

func NewListEventUseCase(events repository.EventRepository) *ListEventUseCase {
	return &ListEventUseCase{events: events}
}

func (uc *ListEventUseCase) Execute(ctx context.Context, req ListEventRequest) EventResponse {
	criteria := repository.EventCriteria{}
	switch req.Filter {
	case EventFilterMine:
		criteria.SupportContactID = &req.UserID
	case EventFilterNoSupport:
		criteria.Unassigned = true
	}
	events, err := uc.events.FindAll(ctx, criteria)
	if err != nil {
		return eventFailure(ErrorResource, "Échec du chargement des évènements")
	}
	return EventResponse{Success: true, Events: events}
}

// DeleteEventRequest removes an event (admin only in the shipped table).
type DeleteEventRequest struct {
	EventID       uint
	Authorization policy.RequestPolicy
}

type DeleteEventUseCase struct {
	events repository.EventRepository
	policy *policy.Engine
}

func NewDeleteEventUseCase(events repository.EventRepository, engine *policy.Engine) *DeleteEventUseCase {
	return &DeleteEventUseCase{events: events, policy: engine}
}

func (uc *DeleteEventUseCase) Execute(ctx context.Context, req DeleteEventRequest) EventResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return eventFailure(ErrorPermission, "Seuls les administrateurs peuvent supprimer des évènements")
	}
	ok, err := uc.events.Exist(ctx, req.EventID)
	if err != nil || !ok {
		return eventFailure(ErrorResource, "Évènement non trouvé")
	}
	if err := uc.events.Delete(ctx, req.EventID); err != nil {
		return eventFailure(ErrorResource, "Échec de la suppression de l'évènement")
	}
	return EventResponse{Success: true}
}
