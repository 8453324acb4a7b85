package views

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
)

// DirectoryAPI is what the reference directory needs from the API.
type DirectoryAPI interface {
	ListUsers(ctx context.Context) ([]sdk.User, error)
	ListLeads(ctx context.Context) ([]sdk.Lead, error)
}

// Directory holds the users and leads a form may reference. A part that could not be
// loaded is skipped by the checks.
type Directory struct {
	users  map[string]sdk.User
	leads  map[string]sdk.Lead
	logger *pterm.Logger
}

// LoadDirectory fetches users, and leads when withLeads is set. Failures are logged and
// leave that part unchecked; non-admins cannot list users, for instance.
func LoadDirectory(ctx context.Context, api DirectoryAPI, withLeads bool, logger *pterm.Logger) *Directory {
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}
	d := &Directory{logger: logger}

	var users []sdk.User
	var leads []sdk.Lead
	var usersErr, leadsErr error

	// The parts are independent: a failed user list must not cancel the lead list.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		users, usersErr = api.ListUsers(ctx)
	}()
	if withLeads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			leads, leadsErr = api.ListLeads(ctx)
		}()
	}
	wg.Wait()

	if usersErr != nil {
		logger.Debug("user directory unavailable, skipping reference checks", logger.Args("error", usersErr))
	} else {
		d.users = make(map[string]sdk.User, len(users))
		for _, u := range users {
			d.users[u.ID] = u
		}
	}
	if withLeads {
		if leadsErr != nil {
			logger.Debug("lead directory unavailable, skipping reference checks", logger.Args("error", leadsErr))
		} else {
			d.leads = make(map[string]sdk.Lead, len(leads))
			for _, l := range leads {
				d.leads[l.ID] = l
			}
		}
	}
	return d
}

// NewDirectory builds a directory from already loaded records. A nil slice leaves that
// part unchecked.
func NewDirectory(users []sdk.User, leads []sdk.Lead) *Directory {
	d := &Directory{logger: pterm.DefaultLogger.WithWriter(io.Discard)}
	if users != nil {
		d.users = map[string]sdk.User{}
		for _, u := range users {
			d.users[u.ID] = u
		}
	}
	if leads != nil {
		d.leads = map[string]sdk.Lead{}
		for _, l := range leads {
			d.leads[l.ID] = l
		}
	}
	return d
}

func (d *Directory) HasUsers() bool { return d != nil && d.users != nil }
func (d *Directory) HasLeads() bool { return d != nil && d.leads != nil }

// Users returns the loaded users, if any.
func (d *Directory) Users() []sdk.User {
	if !d.HasUsers() {
		return nil
	}
	out := make([]sdk.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	return out
}

func (d *Directory) problems(users map[string]string, leads map[string]string) []string {
	var out []string
	if d.HasUsers() {
		for field, id := range users {
			if _, ok := d.users[id]; !ok {
				out = append(out, fmt.Sprintf("%s %q does not name a known user", field, id))
			}
		}
	}
	if d.HasLeads() {
		for field, id := range leads {
			if _, ok := d.leads[id]; !ok {
				out = append(out, fmt.Sprintf("%s %q does not name a known lead", field, id))
			}
		}
	}
	return out
}

// checkRefs returns a ValidationError when a set reference is unknown. Empty ids are
// left to schema validation.
func (d *Directory) checkRefs(entity string, users, leads map[string]string) error {
	if d == nil {
		return nil
	}
	for k, v := range users {
		if v == "" {
			delete(users, k)
		}
	}
	for k, v := range leads {
		if v == "" {
			delete(leads, k)
		}
	}
	if problems := d.problems(users, leads); len(problems) > 0 {
		return &sdk.ValidationError{Entity: entity, Problems: problems}
	}
	return nil
}
