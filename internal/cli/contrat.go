package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/usecase"
)

func newContratCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contrat",
		Short: "Gestion des contrats",
	}
	cmd.AddCommand(
		newContratCreateCmd(app),
		newContratUpdateCmd(app),
		newContratSignCmd(app),
		newContratPayCmd(app),
		newContratShowCmd(app),
		newContratListCmd(app),
		newContratDeleteCmd(app),
	)
	return cmd
}

func newContratCreateCmd(app *App) *cobra.Command {
	var clientID, commercialID uint
	var amount string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crée un contrat non signé (gestion)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewCreateContratUseCase(app.Contrats, app.Clients, app.Users, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.CreateContratRequest{
				ClientID:            clientID,
				CommercialContactID: commercialID,
				ContratAmount:       amount,
				Authorization:       authorization(subject, policy.ResourceContrat, gate.ActionCreate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contrat %d créé (montant %s)\n", resp.Contrat.ID, resp.Contrat.ContratAmount)
			return nil
		},
	}
	cmd.Flags().UintVar(&clientID, "client", 0, "identifiant du client")
	cmd.Flags().UintVar(&commercialID, "commercial", 0, "identifiant du commercial")
	cmd.Flags().StringVar(&amount, "amount", "", "montant du contrat")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("commercial")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newContratUpdateCmd(app *App) *cobra.Command {
	var contratID uint
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifie le montant d'un contrat non signé",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewUpdateContratUseCase(app.Contrats, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.UpdateContratRequest{
				ContratID:     contratID,
				ContratAmount: optString(cmd, "amount"),
				Authorization: authorization(subject, policy.ResourceContrat, gate.ActionUpdate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contrat %d mis à jour\n", resp.Contrat.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&contratID, "id", 0, "identifiant du contrat")
	cmd.Flags().String("amount", "", "nouveau montant")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newContratSignCmd(app *App) *cobra.Command {
	var contratID uint
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Signe un contrat (commercial associé)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewSignContratUseCase(app.Contrats, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.SignContratRequest{
				ContratID:     contratID,
				Authorization: authorization(subject, policy.ResourceContrat, gate.ActionSign),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contrat %d signé\n", resp.Contrat.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&contratID, "id", 0, "identifiant du contrat")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newContratPayCmd(app *App) *cobra.Command {
	var contratID uint
	var amount string
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Encaisse un paiement sur un contrat signé",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewRecordPaymentUseCase(app.Contrats, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.RecordPaymentRequest{
				ContratID:     contratID,
				Payment:       amount,
				Authorization: authorization(subject, policy.ResourceContrat, gate.ActionPay),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paiement enregistré, solde dû %s\n", resp.Contrat.BalanceDue)
			return nil
		},
	}
	cmd.Flags().UintVar(&contratID, "id", 0, "identifiant du contrat")
	cmd.Flags().StringVar(&amount, "amount", "", "montant du paiement")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newContratShowCmd(app *App) *cobra.Command {
	var contratID uint
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Affiche un contrat",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			uc := usecase.NewGetContratUseCase(app.Contrats)
			resp := uc.Execute(cmd.Context(), contratID)
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderContrats(cmd.OutOrStdout(), []models.Contrat{*resp.Contrat})
			return nil
		},
	}
	cmd.Flags().UintVar(&contratID, "id", 0, "identifiant du contrat")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newContratListCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Liste les contrats",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewListContratUseCase(app.Contrats)
			resp := uc.Execute(cmd.Context(), usecase.ListContratRequest{
				UserID: subject.ID,
				Filter: usecase.ContratFilter(filter),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderContrats(cmd.OutOrStdout(), resp.Contrats)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "filtre: mine, signed, unsigned, fully-paid, not-fully-paid")
	return cmd
}

func newContratDeleteCmd(app *App) *cobra.Command {
	var contratID uint
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprime un contrat (administrateur)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewDeleteContratUseCase(app.Contrats, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.DeleteContratRequest{
				ContratID:     contratID,
				Authorization: authorization(subject, policy.ResourceContrat, gate.ActionDelete),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contrat %d supprimé\n", contratID)
			return nil
		},
	}
	cmd.Flags().UintVar(&contratID, "id", 0, "identifiant du contrat")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
