// Package ui formats CRM records for the terminal and reads interactive input.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// RoleBadge colours a role name: ADMIN red, SALES blue, USER gray.
func RoleBadge(role sdk.RoleName) string {
	switch role {
	case sdk.RoleAdmin:
		return pterm.Red(string(role))
	case sdk.RoleSales:
		return pterm.Blue(string(role))
	case sdk.RoleUser:
		return pterm.Gray(string(role))
	default:
		return string(role)
	}
}

// StatusBadge colours a lead status: NEW blue, CONTACTED yellow, WON green, LOST red.
func StatusBadge(status sdk.LeadStatus) string {
	switch status {
	case sdk.LeadStatusNew:
		return pterm.Blue(string(status))
	case sdk.LeadStatusContacted:
		return pterm.Yellow(string(status))
	case sdk.LeadStatusWon:
		return pterm.Green(string(status))
	case sdk.LeadStatusLost:
		return pterm.Red(string(status))
	default:
		return string(status)
	}
}

// Ago renders t relative to now, or "-" for the zero time.
func Ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// JSON writes v indented.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func table(w io.Writer, header string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// LeadsTable prints leads as a table.
func LeadsTable(w io.Writer, leads []sdk.Lead) error {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{l.ID, l.Name, l.Email, orDash(l.Phone), StatusBadge(l.Status), orDash(l.AssignedTo.FullName), Ago(l.UpdatedAt)})
	}
	return table(w, "ID\tNAME\tEMAIL\tPHONE\tSTATUS\tASSIGNED TO\tUPDATED", rows)
}

// ClientsTable prints clients as a table.
func ClientsTable(w io.Writer, clients []sdk.Client) error {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		lead := "-"
		if c.LinkedLead != nil {
			lead = orDash(c.LinkedLead.Name)
		}
		rows = append(rows, []string{c.ID, c.CompanyName, c.ContactPerson, c.Email, orDash(c.Phone), lead, orDash(c.AssignedManager.FullName), Ago(c.UpdatedAt)})
	}
	return table(w, "ID\tCOMPANY\tCONTACT\tEMAIL\tPHONE\tLINKED LEAD\tMANAGER\tUPDATED", rows)
}

// UsersTable prints users, marking the caller with "(you)" and disabled accounts.
func UsersTable(w io.Writer, users []sdk.User, callerID string) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		name := u.FullName
		if u.ID == callerID {
			name += " (you)"
		}
		status := pterm.Green("enabled")
		if !u.Enabled {
			status = pterm.Gray("disabled")
		}
		rows = append(rows, []string{u.ID, name, u.Email, orDash(u.MobileNumber), RoleBadge(u.RoleName()), status, Ago(u.CreatedAt)})
	}
	return table(w, "ID\tNAME\tEMAIL\tMOBILE\tROLE\tSTATUS\tCREATED", rows)
}

// RolesTable prints roles.
func RolesTable(w io.Writer, roles []sdk.Role) error {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{r.ID, RoleBadge(r.Name), orDash(r.Description)})
	}
	return table(w, "ID\tNAME\tDESCRIPTION", rows)
}

// Fields prints label/value pairs of a single record.
func Fields(w io.Writer, pairs [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p[0], orDash(p[1]))
	}
	return tw.Flush()
}

// LeadFields lists the displayed fields of one lead.
func LeadFields(l sdk.Lead) [][2]string {
	return [][2]string{
		{"ID", l.ID},
		{"Name", l.Name},
		{"Email", l.Email},
		{"Phone", l.Phone},
		{"Status", StatusBadge(l.Status)},
		{"Assigned to", refLabel(l.AssignedTo)},
		{"Created by", refLabel(l.CreatedBy)},
		{"Created", Ago(l.CreatedAt)},
		{"Updated", Ago(l.UpdatedAt)},
	}
}

// ClientFields lists the displayed fields of one client.
func ClientFields(c sdk.Client) [][2]string {
	lead := ""
	if c.LinkedLead != nil {
		lead = fmt.Sprintf("%s <%s>", c.LinkedLead.Name, c.LinkedLead.Email)
	}
	return [][2]string{
		{"ID", c.ID},
		{"Company", c.CompanyName},
		{"Contact", c.ContactPerson},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Linked lead", lead},
		{"Manager", refLabel(c.AssignedManager)},
		{"Created", Ago(c.CreatedAt)},
		{"Updated", Ago(c.UpdatedAt)},
	}
}

// UserFields lists the displayed fields of one user.
func UserFields(u sdk.User) [][2]string {
	enabled := "yes"
	if !u.Enabled {
		enabled = "no"
	}
	return [][2]string{
		{"ID", u.ID},
		{"Name", u.FullName},
		{"Email", u.Email},
		{"Mobile", u.MobileNumber},
		{"Role", RoleBadge(u.RoleName())},
		{"Enabled", enabled},
		{"Created", Ago(u.CreatedAt)},
	}
}

func refLabel(r sdk.UserRef) string {
	if r.ID == "" {
		return ""
	}
	if r.Email == "" {
		return r.FullName
	}
	return fmt.Sprintf("%s <%s>", r.FullName, r.Email)
}
