package usecase

import (
	"context"
	"errors"

	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
	"github.com/diewo77/go-crm/internal/validation"
)

// UserResponse is the uniform result of every user operation.
type UserResponse struct {
	Success bool
	User    *models.User
	Users   []models.User
	Error   string
	Msg     string
}

func userFailure(category, msg string) UserResponse {
	return UserResponse{Error: category, Msg: msg}
}

// CreateUserRequest carries the input for CreateUser.
type CreateUserRequest struct {
	FullName      string
	Email         string
	Password      string
	Role          string
	Authorization policy.RequestPolicy
}

// CreateUserUseCase creates a collaborator account. The password is
// hashed before it reaches the repository.
type CreateUserUseCase struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	policy *policy.Engine
}

func NewCreateUserUseCase(users repository.UserRepository, hasher auth.PasswordHasher, engine *policy.Engine) *CreateUserUseCase {
	return &CreateUserUseCase{users: users, hasher: hasher, policy: engine}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) UserResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return userFailure(ErrorPermission, "Seuls les membres gestion peuvent créer des utilisateurs")
	}

	v := validation.Violations{}
	validation.Required("fullname", req.FullName, v)
	validation.MinLen("password", req.Password, 8, v)
	if !v.Empty() {
		return userFailure(v.String(), "Champs obligatoires manquants ou invalides")
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return userFailure("rôle inconnu: "+req.Role, "Le rôle n'est pas valide")
	}
	email, err := models.NewEmail(req.Email)
	if err != nil {
		return userFailure(err.Error(), "L'email n'est pas valide")
	}
	if _, err := uc.users.FindByEmail(ctx, email.String()); err == nil {
		return userFailure(ErrorBusiness, "Un utilisateur avec cet email existe déjà")
	}

	hashed, err := uc.hasher.HashPassword(req.Password)
	if err != nil {
		return userFailure(ErrorBusiness, "Échec du hachage du mot de passe")
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	saved, err := uc.users.Save(ctx, user)
	if err != nil {
		return userFailure(ErrorResource, "Échec de l'enregistrement de l'utilisateur")
	}
	return UserResponse{Success: true, User: saved}
}

// UpdateUserRequest updates fullname and/or email; nothing else.
type UpdateUserRequest struct {
	UserID        uint
	FullName      *string
	Email         *string
	Authorization policy.RequestPolicy
}

type UpdateUserUseCase struct {
	users  repository.UserRepository
	policy *policy.Engine
}

func NewUpdateUserUseCase(users repository.UserRepository, engine *policy.Engine) *UpdateUserUseCase {
	return &UpdateUserUseCase{users: users, policy: engine}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, req UpdateUserRequest) UserResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return userFailure(ErrorPermission, "Seuls les membres gestion peuvent modifier des utilisateurs")
	}

	user, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userFailure(ErrorResource, "Utilisateur non trouvé")
		}
		return userFailure(ErrorResource, "Échec du chargement de l'utilisateur")
	}

	var email *models.Email
	if req.Email != nil {
		e, err := models.NewEmail(*req.Email)
		if err != nil {
			return userFailure(err.Error(), "L'email n'est pas valide")
		}
		email = &e
	}

	user.UpdateInfo(req.FullName, email)

	updated, err := uc.users.Save(ctx, user)
	if err != nil {
		return userFailure(ErrorResource, "Échec de l'enregistrement de l'utilisateur")
	}
	return UserResponse{Success: true, User: updated}
}

// GetUserUseCase loads one user.
type GetUserUseCase struct {
	users repository.UserRepository
}

func NewGetUserUseCase(users repository.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{users: users}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID uint) UserResponse {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return userFailure(ErrorResource, "Utilisateur non trouvé")
	}
	return UserResponse{Success: true, User: user}
}

// ListUserRequest lists users, optionally by role.
type ListUserRequest struct {
	Role string
}

type ListUserUseCase struct {
	users repository.UserRepository
}

func NewListUserUseCase(users repository.UserRepository) *ListUserUseCase {
	return &ListUserUseCase{users: users}
}

func (uc *ListUserUseCase) Execute(ctx context.Context, req ListUserRequest) UserResponse {
	criteria := repository.UserCriteria{}
	if req.Role != "" {
		role, ok := models.ParseRole(req.Role)
		if !ok {
			return userFailure("rôle inconnu: "+req.Role, "Le filtre de rôle n'est pas valide")
		}
		criteria.Role = &role
	}
	users, err := uc.users.FindAll(ctx, criteria)
	if err != nil {
		return userFailure(ErrorResource, "Échec du chargement des utilisateurs")
	}
	return UserResponse{Success: true, Users: users}
}

// DeleteUserRequest removes a user (admin only in the shipped table).
type DeleteUserRequest struct {
	UserID        uint
	Authorization policy.RequestPolicy
}

type DeleteUserUseCase struct {
	users  repository.UserRepository
	policy *policy.Engine
}

func NewDeleteUserUseCase(users repository.UserRepository, engine *policy.Engine) *DeleteUserUseCase {
	return &DeleteUserUseCase{users: users, policy: engine}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, req DeleteUserRequest) UserResponse {
	if !uc.policy.IsAllowed(ctx, req.Authorization) {
		return userFailure(ErrorPermission, "Seuls les administrateurs peuvent supprimer des utilisateurs")
	}
	ok, err := uc.users.Exist(ctx, req.UserID)
	if err != nil || !ok {
		return userFailure(ErrorResource, "Utilisateur non trouvé")
	}
	if err := uc.users.Delete(ctx, req.UserID); err != nil {
		return userFailure(ErrorResource, "Échec de la suppression de l'utilisateur")
	}
	return UserResponse{Success: true}
}
