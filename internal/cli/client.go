package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/usecase"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Gestion des clients",
	}
	cmd.AddCommand(
		newClientCreateCmd(app),
		newClientUpdateCmd(app),
		newClientShowCmd(app),
		newClientListCmd(app),
		newClientDeleteCmd(app),
	)
	return cmd
}

func newClientCreateCmd(app *App) *cobra.Command {
	var fullname, email, telephone, company string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crée un client rattaché au commercial connecté",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewCreateClientUseCase(app.Clients, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.CreateClientRequest{
				FullName:      fullname,
				Email:         email,
				Telephone:     telephone,
				CompanyName:   company,
				Authorization: authorization(subject, policy.ResourceClient, gate.ActionCreate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client %d créé\n", resp.Client.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&fullname, "fullname", "", "nom complet")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&telephone, "telephone", "", "téléphone")
	cmd.Flags().StringVar(&company, "company", "", "entreprise")
	_ = cmd.MarkFlagRequired("fullname")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("telephone")
	return cmd
}

func newClientUpdateCmd(app *App) *cobra.Command {
	var clientID uint
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifie un client (commercial associé uniquement)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewUpdateClientUseCase(app.Clients, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.UpdateClientRequest{
				ClientID:      clientID,
				FullName:      optString(cmd, "fullname"),
				Email:         optString(cmd, "email"),
				Telephone:     optString(cmd, "telephone"),
				CompanyName:   optString(cmd, "company"),
				Authorization: authorization(subject, policy.ResourceClient, gate.ActionUpdate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client %d mis à jour\n", resp.Client.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&clientID, "id", 0, "identifiant du client")
	cmd.Flags().String("fullname", "", "nom complet")
	cmd.Flags().String("email", "", "email")
	cmd.Flags().String("telephone", "", "téléphone")
	cmd.Flags().String("company", "", "entreprise")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newClientShowCmd(app *App) *cobra.Command {
	var clientID uint
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Affiche un client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			uc := usecase.NewGetClientUseCase(app.Clients)
			resp := uc.Execute(cmd.Context(), clientID)
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderClients(cmd.OutOrStdout(), []models.Client{*resp.Client})
			return nil
		},
	}
	cmd.Flags().UintVar(&clientID, "id", 0, "identifiant du client")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Liste les clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewListClientUseCase(app.Clients)
			resp := uc.Execute(cmd.Context(), usecase.ListClientRequest{
				UserID: subject.ID,
				Filter: usecase.ClientFilter(filter),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderClients(cmd.OutOrStdout(), resp.Clients)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "filtre: mine")
	return cmd
}

func newClientDeleteCmd(app *App) *cobra.Command {
	var clientID uint
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprime un client (administrateur)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewDeleteClientUseCase(app.Clients, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.DeleteClientRequest{
				ClientID:      clientID,
				Authorization: authorization(subject, policy.ResourceClient, gate.ActionDelete),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client %d supprimé\n", clientID)
			return nil
		},
	}
	cmd.Flags().UintVar(&clientID, "id", 0, "identifiant du client")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
