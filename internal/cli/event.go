package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/gate"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/usecase"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Gestion des évènements",
	}
	cmd.AddCommand(
		newEventCreateCmd(app),
		newEventUpdateCmd(app),
		newEventAssignCmd(app),
		newEventShowCmd(app),
		newEventListCmd(app),
		newEventDeleteCmd(app),
	)
	return cmd
}

func newEventCreateCmd(app *App) *cobra.Command {
	var (
		name, start, end, location, notes string
		contratID                         uint
		attendees                         int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crée un évènement sous un contrat signé (commercial associé)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			startDate, err := parseDate(start)
			if err != nil {
				return err
			}
			endDate, err := parseDate(end)
			if err != nil {
				return err
			}
			uc := usecase.NewCreateEventUseCase(app.Events, app.Contrats, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.CreateEventRequest{
				Name:          name,
				ContratID:     contratID,
				StartDate:     startDate,
				EndDate:       endDate,
				Location:      location,
				Attendees:     attendees,
				Notes:         notes,
				Authorization: authorization(subject, policy.ResourceEvent, gate.ActionCreate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Évènement %d créé\n", resp.Event.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nom de l'évènement")
	cmd.Flags().UintVar(&contratID, "contrat", 0, "identifiant du contrat")
	cmd.Flags().StringVar(&start, "start", "", "début ("+dateLayout+")")
	cmd.Flags().StringVar(&end, "end", "", "fin ("+dateLayout+")")
	cmd.Flags().StringVar(&location, "location", "", "lieu")
	cmd.Flags().IntVar(&attendees, "attendees", 0, "nombre de participants")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("contrat")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("attendees")
	return cmd
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var eventID uint
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifie un évènement (support assigné ou gestion)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			var startDate, endDate *time.Time
			if s := optString(cmd, "start"); s != nil {
				t, err := parseDate(*s)
				if err != nil {
					return err
				}
				startDate = &t
			}
			if s := optString(cmd, "end"); s != nil {
				t, err := parseDate(*s)
				if err != nil {
					return err
				}
				endDate = &t
			}
			uc := usecase.NewUpdateEventUseCase(app.Events, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.UpdateEventRequest{
				EventID:       eventID,
				Name:          optString(cmd, "name"),
				StartDate:     startDate,
				EndDate:       endDate,
				Location:      optString(cmd, "location"),
				Attendees:     optInt(cmd, "attendees"),
				Notes:         optString(cmd, "notes"),
				Authorization: authorization(subject, policy.ResourceEvent, gate.ActionUpdate),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Évènement %d mis à jour\n", resp.Event.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&eventID, "id", 0, "identifiant de l'évènement")
	cmd.Flags().String("name", "", "nom de l'évènement")
	cmd.Flags().String("start", "", "début ("+dateLayout+")")
	cmd.Flags().String("end", "", "fin ("+dateLayout+")")
	cmd.Flags().String("location", "", "lieu")
	cmd.Flags().Int("attendees", 0, "nombre de participants")
	cmd.Flags().String("notes", "", "notes")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newEventAssignCmd(app *App) *cobra.Command {
	var eventID, supportID uint
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assigne un contact support à un évènement (gestion)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewAssignSupportEventUseCase(app.Events, app.Users, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.AssignSupportEventRequest{
				EventID:       eventID,
				SupportUserID: supportID,
				Authorization: authorization(subject, policy.ResourceEvent, gate.ActionAssign),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Support %d assigné à l'évènement %d\n", supportID, eventID)
			return nil
		},
	}
	cmd.Flags().UintVar(&eventID, "id", 0, "identifiant de l'évènement")
	cmd.Flags().UintVar(&supportID, "support", 0, "identifiant de l'utilisateur support")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("support")
	return cmd
}

func newEventShowCmd(app *App) *cobra.Command {
	var eventID uint
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Affiche un évènement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			uc := usecase.NewGetEventUseCase(app.Events)
			resp := uc.Execute(cmd.Context(), eventID)
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderEvents(cmd.OutOrStdout(), []models.Event{*resp.Event})
			return nil
		},
	}
	cmd.Flags().UintVar(&eventID, "id", 0, "identifiant de l'évènement")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Liste les évènements",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewListEventUseCase(app.Events)
			resp := uc.Execute(cmd.Context(), usecase.ListEventRequest{
				UserID: subject.ID,
				Filter: usecase.EventFilter(filter),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			renderEvents(cmd.OutOrStdout(), resp.Events)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "filtre: mine, no-support")
	return cmd
}

func newEventDeleteCmd(app *App) *cobra.Command {
	var eventID uint
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprime un évènement (administrateur)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, subject, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewDeleteEventUseCase(app.Events, app.Policy)
			resp := uc.Execute(cmd.Context(), usecase.DeleteEventRequest{
				EventID:       eventID,
				Authorization: authorization(subject, policy.ResourceEvent, gate.ActionDelete),
			})
			if !resp.Success {
				return failure(resp.Error, resp.Msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Évènement %d supprimé\n", eventID)
			return nil
		},
	}
	cmd.Flags().UintVar(&eventID, "id", 0, "identifiant de l'évènement")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
