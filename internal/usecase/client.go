package usecase

import (
	"context"
	"errors"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
	"github.com/diewo77/go-crm/internal/validation"
)

// ClientResponse is the uniform result of every client operation.
type ClientResponse struct {
	Success bool
	Client  *models.Client
	Clients []models.Client
	Error   string
	Msg     string
}

func clientFailure(category, msg string) ClientResponse {
	return ClientResponse{Error: category, Msg: msg}
}

// CreateClientRequest carries the input for CreateClient. The owning
// commercial is always the acting user, never caller input.
type CreateClientRequest struct {
	FullName      string
	Email         string
	Telephone     string
	CompanyName   string
	Authorization policy.RequestPolicy
}

// CreateClientUseCase creates a client owned by the acting commercial.
type CreateClientUseCase struct {
	clients repository.ClientRepository
	policy  *policy.Engine
}

func NewCreateClientUseCase(clients repository.ClientRepository, engine *policy.Engine) *CreateClientUseCase {
	return &CreateClientUseCase{clients: clients, policy: engine}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, req CreateClientRequest) ClientResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return clientFailure(ErrorPermission, "Seuls les membres commerciaux peuvent créer des clients")
	}

	v := validation.Violations{}
	validation.Required("fullname", req.FullName, v)
	if !v.Empty() {
		return clientFailure(v.String(), "Champs obligatoires manquants")
	}

	email, err := models.NewEmail(req.Email)
	if err != nil {
		return clientFailure(err.Error(), "L'email n'est pas valide")
	}
	telephone, err := models.NewTelephone(req.Telephone)
	if err != nil {
		return clientFailure(err.Error(), "Le numéro de téléphone n'est pas valide")
	}

	client := &models.Client{
		FullName:            req.FullName,
		Email:               email,
		Telephone:           telephone,
		CompanyName:         req.CompanyName,
		CommercialContactID: req.Authorization.Subject.ID,
	}
	saved, err := uc.clients.Save(ctx, client)
	if err != nil {
		return clientFailure(ErrorResource, "Échec de l'enregistrement du client")
	}
	return ClientResponse{Success: true, Client: saved}
}

// UpdateClientRequest carries a partial update. Nil pointers leave the
// field unchanged, which keeps "set to empty" distinguishable from
// "leave alone".
type UpdateClientRequest struct {
	ClientID      uint
	FullName      *string
	Email         *string
	Telephone     *string
	CompanyName   *string
	Authorization policy.RequestPolicy
}

// UpdateClientUseCase updates a client after the ownership rule passes.
type UpdateClientUseCase struct {
	clients repository.ClientRepository
	policy  *policy.Engine
}

func NewUpdateClientUseCase(clients repository.ClientRepository, engine *policy.Engine) *UpdateClientUseCase {
	return &UpdateClientUseCase{clients: clients, policy: engine}
}

func (uc *UpdateClientUseCase) Execute(ctx context.Context, req UpdateClientRequest) ClientResponse {
	client, err := uc.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return clientFailure(ErrorResource, "Client non trouvé")
		}
		return clientFailure(ErrorResource, "Échec du chargement du client")
	}

	// The loaded client is the context the ownership condition inspects.
	req.Authorization.Context = client
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return clientFailure(ErrorPermission, "Seul le commercial associé au client peut le modifier")
	}

	var email *models.Email
	if req.Email != nil {
		e, err := models.NewEmail(*req.Email)
		if err != nil {
			return clientFailure(err.Error(), "L'email n'est pas valide")
		}
		email = &e
	}
	var telephone *models.Telephone
	if req.Telephone != nil {
		t, err := models.NewTelephone(*req.Telephone)
		if err != nil {
			return clientFailure(err.Error(), "Le numéro de téléphone n'est pas valide")
		}
		telephone = &t
	}

	client.UpdateInfo(req.FullName, email, telephone, req.CompanyName)

	updated, err := uc.clients.Save(ctx, client)
	if err != nil {
		return clientFailure(ErrorResource, "Échec de l'enregistrement du client")
	}
	return ClientResponse{Success: true, Client: updated}
}

// GetClientUseCase loads one client. Reads have no permission gate
// beyond authentication.
type GetClientUseCase struct {
	clients repository.ClientRepository
}

func NewGetClientUseCase(clients repository.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{clients: clients}
}

func (uc *GetClientUseCase) Execute(ctx context.Context, clientID uint) ClientResponse {
	client, err := uc.clients.FindByID(ctx, clientID)
	if err != nil {
		return clientFailure(ErrorResource, "Client non trouvé")
	}
	return ClientResponse{Success: true, Client: client}
}

// ClientFilter selects a subset of clients when listing.
type ClientFilter string

const ClientFilterMine ClientFilter = "mine"

// ListClientRequest lists clients, optionally restricted to those owned
// by the requesting user.
type ListClientRequest struct {
	UserID uint
	Filter ClientFilter
}

type ListClientUseCase struct {
	clients repository.ClientRepository
}

func NewListClientUseCase(clients repository.ClientRepository) *ListClientUseCase {
	return &ListClientUseCase{clients: clients}
}

func (uc *ListClientUseCase) Execute(ctx context.Context, req ListClientRequest) ClientResponse {
	criteria := repository.ClientCriteria{}
	if req.Filter == ClientFilterMine {
		criteria.CommercialContactID = &req.UserID
	}
	clients, err := uc.clients.FindAll(ctx, criteria)
	if err != nil {
		return clientFailure(ErrorResource, "Échec du chargement des clients")
	}
	if len(clients) == 0 {
		return clientFailure(ErrorResource, "Aucun client trouvé")
	}
	return ClientResponse{Success: true, Clients: clients}
}

// DeleteClientRequest removes a client (admin only in the shipped table).
type DeleteClientRequest struct {
	ClientID      uint
	Authorization policy.RequestPolicy
}

type DeleteClientUseCase struct {
	clients repository.ClientRepository
	policy  *policy.Engine
}

func NewDeleteClientUseCase(clients repository.ClientRepository, engine *policy.Engine) *DeleteClientUseCase {
	return &DeleteClientUseCase{clients: clients, policy: engine}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, req DeleteClientRequest) ClientResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return clientFailure(ErrorPermission, "Seuls les administrateurs peuvent supprimer des clients")
	}
	ok, err := uc.clients.Exist(ctx, req.ClientID)
	if err != nil || !ok {
		return clientFailure(ErrorResource, "Client non trouvé")
	}
	if err := uc.clients.Delete(ctx, req.ClientID); err != nil {
		return clientFailure(ErrorResource, "Échec de la suppression du client")
	}
	return ClientResponse{Success: true}
}
