package access

import "github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"

// NavItem is one entry of the dashboard navigation.
type NavItem struct {
	Label   string
	Command string
	Admin   bool
}

var baseNav = []NavItem{
	{Label: "Dashboard", Command: "crmctl menu"},
	{Label: "Leads", Command: "crmctl leads list"},
	{Label: "Clients", Command: "crmctl clients list"},
	{Label: "Settings", Command: "crmctl config view"},
}

var adminNav = []NavItem{
	{Label: "Users", Command: "crmctl users list", Admin: true},
}

// Navigation returns the entries caller may see. Admin entries are listed only for
// admins; the admin views check again when opened.
func Navigation(caller *sdk.User) []NavItem {
	items := append([]NavItem(nil), baseNav...)
	if CanAccessAdminPanel(caller) {
		items = append(items, adminNav...)
	}
	return items
}
