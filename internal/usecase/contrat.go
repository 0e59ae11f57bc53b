package usecase

import (
	"context"
	"errors"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
)

// ContratResponse is the uniform result of every contrat operation.
type ContratResponse struct {
	Success  bool
	Contrat  *models.Contrat
	Contrats []models.Contrat
	Error    string
	Msg      string
}

func contratFailure(category, msg string) ContratResponse {
	return ContratResponse{Error: category, Msg: msg}
}

// CreateContratRequest carries the input for CreateContrat.
type CreateContratRequest struct {
	ClientID            uint
	CommercialContactID uint
	ContratAmount       string
	Authorization       policy.RequestPolicy
}

// CreateContratUseCase creates an unsigned contrat. The referenced
// commercial must exist and hold the COMMERCIAL role; the client must
// exist.
type CreateContratUseCase struct {
	contrats repository.ContratRepository
	clients  repository.ClientRepository
	users    repository.UserRepository
	policy   *policy.Engine
}

func NewCreateContratUseCase(contrats repository.ContratRepository, clients repository.ClientRepository, users repository.UserRepository, engine *policy.Engine) *CreateContratUseCase {
	return &CreateContratUseCase{contrats: contrats, clients: clients, users: users, policy: engine}
}

func (uc *CreateContratUseCase) Execute(ctx context.Context, req CreateContratRequest) ContratResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return contratFailure(ErrorPermission, "Seuls les membres gestion peuvent créer des contrats")
	}

	amount, err := models.NewMoney(req.ContratAmount)
	if err != nil {
		return contratFailure(err.Error(), "Le montant n'est pas valide")
	}

	if ok, err := uc.clients.Exist(ctx, req.ClientID); err != nil || !ok {
		return contratFailure(ErrorResource, "Client non trouvé")
	}
	commercial, err := uc.users.FindByID(ctx, req.CommercialContactID)
	if err != nil {
		return contratFailure(ErrorResource, "Contact commercial non trouvé")
	}
	if !commercial.IsCommercial() {
		return contratFailure(ErrorBusiness, "Le contact indiqué n'a pas le rôle COMMERCIAL")
	}

	contrat := models.NewContrat(req.ClientID, req.CommercialContactID, amount)
	saved, err := uc.contrats.Save(ctx, contrat)
	if err != nil {
		return contratFailure(ErrorResource, "Échec de l'enregistrement du contrat")
	}
	return ContratResponse{Success: true, Contrat: saved}
}

// UpdateContratRequest updates the contrat amount. A signed contrat is
// frozen: neither amount nor status may change afterwards.
type UpdateContratRequest struct {
	ContratID     uint
	ContratAmount *string
	Authorization policy.RequestPolicy
}

type UpdateContratUseCase struct {
	contrats repository.ContratRepository
	policy   *policy.Engine
}

func NewUpdateContratUseCase(contrats repository.ContratRepository, engine *policy.Engine) *UpdateContratUseCase {
	return &UpdateContratUseCase{contrats: contrats, policy: engine}
}

func (uc *UpdateContratUseCase) Execute(ctx context.Context, req UpdateContratRequest) ContratResponse {
	contrat, err := uc.contrats.FindByID(ctx, req.ContratID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return contratFailure(ErrorResource, "Contrat non trouvé")
		}
		return contratFailure(ErrorResource, "Échec du chargement du contrat")
	}

	req.Authorization.Context = contrat
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return contratFailure(ErrorPermission, "Vous n'êtes pas autorisé à modifier ce contrat")
	}

	if contrat.IsSigned() {
		return contratFailure(ErrorBusiness, "Un contrat signé ne peut plus être modifié")
	}

	if req.ContratAmount != nil {
		amount, err := models.NewMoney(*req.ContratAmount)
		if err != nil {
			return contratFailure(err.Error(), "Le montant n'est pas valide")
		}
		// The unsigned contract has its full amount outstanding, so the
		// balance follows the amount.
		contrat.ContratAmount = amount
		contrat.BalanceDue = amount
	}

	updated, err := uc.contrats.Save(ctx, contrat)
	if err != nil {
		return contratFailure(ErrorResource, "Échec de l'enregistrement du contrat")
	}
	return ContratResponse{Success: true, Contrat: updated}
}

// SignContratRequest transitions a contrat to SIGNED.
type SignContratRequest struct {
	ContratID     uint
	Authorization policy.RequestPolicy
}

type SignContratUseCase struct {
	contrats repository.ContratRepository
	policy   *policy.Engine
}

func NewSignContratUseCase(contrats repository.ContratRepository, engine *policy.Engine) *SignContratUseCase {
	return &SignContratUseCase{contrats: contrats, policy: engine}
}

func (uc *SignContratUseCase) Execute(ctx context.Context, req SignContratRequest) ContratResponse {
	contrat, err := uc.contrats.FindByID(ctx, req.ContratID)
	if err != nil {
		return contratFailure(ErrorResource, "Contrat non trouvé")
	}

	req.Authorization.Context = contrat
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return contratFailure(ErrorPermission, "Seul le commercial associé au contrat peut le signer")
	}

	if err := contrat.Sign(); err != nil {
		return contratFailure(ErrorBusiness, err.Error())
	}

	if _, err := uc.contrats.Save(ctx, contrat); err != nil {
		return contratFailure(ErrorResource, "Échec de l'enregistrement du contrat")
	}
	return ContratResponse{Success: true, Contrat: contrat}
}

// RecordPaymentRequest records a payment against a signed contrat.
type RecordPaymentRequest struct {
	ContratID     uint
	Payment       string
	Authorization policy.RequestPolicy
}

type RecordPaymentUseCase struct {
	contrats repository.ContratRepository
	policy   *policy.Engine
}

func NewRecordPaymentUseCase(contrats repository.ContratRepository, engine *policy.Engine) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{contrats: contrats, policy: engine}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req RecordPaymentRequest) ContratResponse {
	contrat, err := uc.contrats.FindByID(ctx, req.ContratID)
	if err != nil {
		return contratFailure(ErrorResource, "Contrat non trouvé")
	}

	req.Authorization.Context = contrat
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return contratFailure(ErrorPermission, "Vous n'êtes pas autorisé à encaisser sur ce contrat")
	}

	if !contrat.IsSigned() {
		return contratFailure(ErrorBusiness, "Aucun paiement possible sur un contrat non signé")
	}
	if contrat.IsFullyPaid() {
		return contratFailure(ErrorBusiness, "Le contrat a été entièrement réglé")
	}

	payment, err := models.NewMoney(req.Payment)
	if err != nil {
		return contratFailure(err.Error(), "Le montant n'est pas valide")
	}
	if err := contrat.RecordPayment(payment); err != nil {
		return contratFailure(ErrorBusiness, err.Error())
	}

	if _, err := uc.contrats.Save(ctx, contrat); err != nil {
		return contratFailure(ErrorResource, "Échec de l'enregistrement du contrat")
	}
	return ContratResponse{Success: true, Contrat: contrat}
}

// GetContratUseCase loads one contrat.
type GetContratUseCase struct {
	contrats repository.ContratRepository
}

func NewGetContratUseCase(contrats repository.ContratRepository) *GetContratUseCase {
	return &GetContratUseCase{contrats: contrats}
}

func (uc *GetContratUseCase) Execute(ctx context.Context, contratID uint) ContratResponse {
	contrat, err := uc.contrats.FindByID(ctx, contratID)
	if err != nil {
		return contratFailure(ErrorResource, "Contrat non trouvé")
	}
	return ContratResponse{Success: true, Contrat: contrat}
}

// ContratFilter selects a subset of contrats when listing.
type ContratFilter string

const (
	ContratFilterMine         ContratFilter = "mine"
	ContratFilterSigned       ContratFilter = "signed"
	ContratFilterUnsigned     ContratFilter = "unsigned"
	ContratFilterFullyPaid    ContratFilter = "fully-paid"
	ContratFilterNotFullyPaid ContratFilter = "not-fully-paid"
)

// ListContratRequest lists contrats through a filter translated into
// repository criteria.
type ListContratRequest struct {
	UserID uint
	Filter ContratFilter
}

type ListContratUseCase struct {
	contrats repository.ContratRepository
}

func NewListContratUseCase(contrats repository.ContratRepository) *ListContratUseCase {
	return &ListContratUseCase{contrats: contrats}
}

func (uc *ListContratUseCase) Execute(ctx context.Context, req ListContratRequest) ContratResponse {
	criteria := repository.ContratCriteria{}
	yes, no := true, false
	switch req.Filter {
	case ContratFilterMine:
		criteria.CommercialContactID = &req.UserID
	case ContratFilterSigned:
		criteria.Signed = &yes
	case ContratFilterUnsigned:
		criteria.Signed = &no
	case ContratFilterFullyPaid:
		criteria.FullyPaid = &yes
	case ContratFilterNotFullyPaid:
		criteria.FullyPaid = &no
	}
	contrats, err := uc.contrats.FindAll(ctx, criteria)
	if err != nil {
		return contratFailure(ErrorResource, "Échec du chargement des contrats")
	}
	return ContratResponse{Success: true, Contrats: contrats}
}

// DeleteContratRequest removes a contrat (admin only in the shipped table).
type DeleteContratRequest struct {
	ContratID     uint
	Authorization policy.RequestPolicy
}

type DeleteContratUseCase struct {
	contrats repository.ContratRepository
	policy   *policy.Engine
}

func NewDeleteContratUseCase(contrats repository.ContratRepository, engine *policy.Engine) *DeleteContratUseCase {
	return &DeleteContratUseCase{contrats: contrats, policy: engine}
}

func (uc *DeleteContratUseCase) Execute(ctx context.Context, req DeleteContratRequest) ContratResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return contratFailure(ErrorPermission, "Seuls les administrateurs peuvent supprimer des contrats")
	}
	ok, err := uc.contrats.Exist(ctx, req.ContratID)
	if err != nil || !ok {
		return contratFailure(ErrorResource, "Contrat non trouvé")
	}
	if err := uc.contrats.Delete(ctx, req.ContratID); err != nil {
		return contratFailure(ErrorResource, "Échec de la suppression du contrat")
	}
	return ContratResponse{Success: true}
}
