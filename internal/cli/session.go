package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diewo77/go-crm/internal/usecase"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Ouvre une session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Mot de passe: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = string(raw)
			}

			uc := usecase.NewLoginUseCase(app.Users, app.Hasher, app.Tokens)
			resp := uc.Execute(cmd.Context(), usecase.LoginRequest{Email: email, Password: password})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			if err := app.Store.Save(resp.Token); err != nil {
				return fmt.Errorf("enregistrement du jeton: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connecté en tant que %s (%s)\n", resp.User.FullName, resp.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email du compte")
	cmd.Flags().StringVar(&password, "password", "", "mot de passe (demandé si absent)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Ferme la session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session fermée")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Affiche le compte connecté",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> [%s]\n", user.FullName, user.Email, user.Role)
			return nil
		},
	}
}

func newPermissionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "permissions [role]",
		Short: "Liste les permissions d'un rôle (par défaut le vôtre)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			role := string(user.Role)
			if len(args) == 1 {
				role = args[0]
			}
			grants := app.Policy.Grants(role)
			if len(grants) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Aucune permission pour le rôle %s\n", role)
				return nil
			}
			for _, g := range grants {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		},
	}
}
