package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/diewo77/go-crm/internal/models"
)

const dateLayout = "2006-01-02 15:04"

func failure(category, msg string) error {
	return fmt.Errorf("[%s] %s", category, msg)
}

func supportColumn(id *uint) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}

func renderUsers(w io.Writer, users []models.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, u.Role)
	}
	tw.Flush()
}

func renderClients(w io.Writer, clients []models.Client) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tEMAIL\tTELEPHONE\tENTREPRISE\tCOMMERCIAL")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.FullName, c.Email, c.Telephone, c.CompanyName, c.CommercialContactID)
	}
	tw.Flush()
}

func renderContrats(w io.Writer, contrats []models.Contrat) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tCOMMERCIAL\tMONTANT\tSOLDE DU\tSTATUT")
	for _, c := range contrats {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\n",
			c.ID, c.ClientID, c.CommercialContactID, c.ContratAmount, c.BalanceDue, c.Status)
	}
	tw.Flush()
}

func renderEvents(w io.Writer, events []models.Event) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tCONTRAT\tCLIENT\tSUPPORT\tDEBUT\tFIN\tLIEU\tPARTICIPANTS")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%d\n",
			e.ID, e.Name, e.ContratID, e.ClientID, supportColumn(e.SupportContactID),
			e.StartDate.Format(dateLayout), e.EndDate.Format(dateLayout), e.Location, e.Attendees)
	}
	tw.Flush()
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date invalide %q, format attendu %q", value, dateLayout)
	}
	return t, nil
}
