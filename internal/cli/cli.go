// Package cli builds the command tree. Every command resolves the
// stored session, runs the matching use case and renders its response;
// no business rule lives here.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
	"github.com/diewo77/go-crm/internal/usecase"
)

// App carries the wired dependencies every command needs.
type App struct {
	Users    repository.UserRepository
	Clients  repository.ClientRepository
	Contrats repository.ContratRepository
	Events   repository.EventRepository
	Policy   *policy.Engine
	Hasher   auth.PasswordHasher
	Tokens   auth.TokenManager
	Store    *auth.TokenStore
	Log      *zap.Logger
}

// NewRootCmd assembles the full command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "crm",
		Short:         "EpicEvents CRM en ligne de commande",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newClientCmd(app),
		newContratCmd(app),
		newEventCmd(app),
		newUserCmd(app),
		newPermissionsCmd(app),
	)
	return root
}

// session resolves the stored token to the acting user and subject.
func (a *App) session(ctx context.Context) (*models.User, gate.Subject, error) {
	uc := usecase.NewCurrentUserUseCase(a.Users, a.Tokens)
	user, subject, err := uc.Execute(ctx, a.Store.Get())
	if err != nil {
		return nil, gate.Subject{}, fmt.Errorf("aucune session active, utilisez 'crm login'")
	}
	return user, subject, nil
}

// authorization builds the descriptor a use case request carries.
func authorization(subject gate.Subject, resource string, action gate.Action) policy.RequestPolicy {
	return policy.RequestPolicy{Subject: subject, Resource: resource, Action: action}
}

// optString returns the flag value as a pointer when it was set on the
// command line, nil otherwise. Pointers keep "set to empty" apart from
// "leave alone".
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}
