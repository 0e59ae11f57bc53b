package usecase

import (
	"context"
	"errors"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/repository"
)

// LoginRequest authenticates by email/password.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse carries the issued token on success.
type LoginResponse struct {
	Success bool
	Token   string
	User    *models.User
	Error   string
	Msg     string
}

// LoginUseCase verifies credentials and issues a session token.
// A missing account and a wrong password produce the same failure so
// the CLI cannot be used to probe for registered emails.
type LoginUseCase struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenManager
}

func NewLoginUseCase(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenManager) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) LoginResponse {
	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil || !uc.hasher.VerifyPassword(req.Password, user.Password) {
		return LoginResponse{Error: ErrorPermission, Msg: "Email ou mot de passe invalide"}
	}
	token, err := uc.tokens.CreateToken(user.ID)
	if err != nil {
		return LoginResponse{Error: ErrorPermission, Msg: "Échec de la création du jeton de session"}
	}
	return LoginResponse{Success: true, Token: token, User: user}
}

// ErrNoSession is returned when no valid session token is available.
var ErrNoSession = errors.New("no active session")

// CurrentUserUseCase resolves a stored token to the acting subject.
type CurrentUserUseCase struct {
	users  repository.UserRepository
	tokens auth.TokenManager
}

func NewCurrentUserUseCase(users repository.UserRepository, tokens auth.TokenManager) *CurrentUserUseCase {
	return &CurrentUserUseCase{users: users, tokens: tokens}
}

// Execute decodes the token and loads the account behind it. The subject
// it returns is what every authorization descriptor carries.
func (uc *CurrentUserUseCase) Execute(ctx context.Context, token string) (*models.User, gate.Subject, error) {
	if token == "" {
		return nil, gate.Subject{}, ErrNoSession
	}
	userID, err := uc.tokens.DecodeToken(token)
	if err != nil {
		return nil, gate.Subject{}, ErrNoSession
	}
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, gate.Subject{}, ErrNoSession
	}
	return user, gate.Subject{ID: user.ID, Role: string(user.Role)}, nil
}
