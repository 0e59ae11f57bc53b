package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/usecase"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Gestion des collaborateurs",
	}
	cmd.AddCommand(
		newUserCreateCmd(app),
		newUserUpdateCmd(app),
		newUserShowCmd(app),
		newUserListCmd(app),
		newUserDeleteCmd(app),
	)
	return cmd
}

func newUserCreateCmd(app *App) *cobra.Command {
	var fullname, email, password, role string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crée un collaborateur (gestion)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewCreateUserUseCase(app.Users, app.Hasher, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.CreateUserRequest{
				FullName:      fullname,
				Email:         email,
				Password:      password,
				Role:          role,
				Authorization: authorization(subject, policy.ResourceUser, gate.ActionCreate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %d créé (%s)\n", resp.User.ID, resp.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&fullname, "fullname", "", "nom complet")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "mot de passe (8 caractères minimum)")
	cmd.Flags().StringVar(&role, "role", "", "rôle: COMMERCIAL, SUPPORT, GESTION, ADMIN")
	_ = cmd.MarkFlagRequired("fullname")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newUserUpdateCmd(app *App) *cobra.Command {
	var userID uint
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifie le nom ou l'email d'un collaborateur (gestion)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewUpdateUserUseCase(app.Users, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.UpdateUserRequest{
				UserID:        userID,
				FullName:      optString(cmd, "fullname"),
				Email:         optString(cmd, "email"),
				Authorization: authorization(subject, policy.ResourceUser, gate.ActionUpdate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %d mis à jour\n", resp.User.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "id", 0, "identifiant de l'utilisateur")
	cmd.Flags().String("fullname", "", "nom complet")
	cmd.Flags().String("email", "", "email")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserShowCmd(app *App) *cobra.Command {
	var userID uint
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Affiche un collaborateur",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			uc := usecase.NewGetUserUseCase(app.Users)
			resp := uc.Execute(cmd.Context(), userID)
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderUsers(cmd.OutOrStdout(), []models.User{*resp.User})
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "id", 0, "identifiant de l'utilisateur")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Liste les collaborateurs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			uc := usecase.NewListUserUseCase(app.Users)
			resp := uc.Execute(cmd.Context(), usecase.ListUserRequest{Role: role})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderUsers(cmd.OutOrStdout(), resp.Users)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "filtre par rôle")
	return cmd
}

func newUserDeleteCmd(app *App) *cobra.Command {
	var userID uint
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprime un collaborateur (administrateur)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewDeleteUserUseCase(app.Users, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.DeleteUserRequest{
				UserID:        userID,
				Authorization: authorization(subject, policy.ResourceUser, gate.ActionDelete),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %d supprimé\n", userID)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "id", 0, "identifiant de l'utilisateur")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
