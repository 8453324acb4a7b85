// Package views drives the list, form and delete screens of each entity as explicit
// state machines. The CLI commands are thin wrappers around these flows.
package views

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNotFound is returned when a record id is not part of the loaded list.
	ErrNotFound = errors.New("record not found")
	// ErrSelfRoleChange is returned when an admin tries to change their own role.
	ErrSelfRoleChange = errors.New("you cannot change your own role")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("you cannot delete your own account")
)

// Mode tells which form is open.
type Mode int

const (
	ModeCreate Mode = iota + 1
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// State is one of Loading, Listing, FormOpen, Submitting or Failed.
type State[T any] interface {
	Name() string
	// Visible is the list shown in this state. Loading and Failed show nothing.
	Visible() []T
	isState()
}

// Loading is the initial state, before the collection has been fetched.
type Loading[T any] struct{}

// Listing holds the fetched collection.
type Listing[T any] struct {
	Items []T
}

// FormOpen is a create or edit form over the list. Target is set in edit mode.
// Err holds the last submit failure, shown inline. LoadErr is set when the form was
// opened over a list that failed to load.
type FormOpen[T any] struct {
	Mode    Mode
	Target  string
	Items   []T
	Err     error
	LoadErr error
}

// Submitting is entered while a create or update request is in flight.
type Submitting[T any] struct {
	Mode    Mode
	Target  string
	Items   []T
	LoadErr error
}

// Failed means the collection could not be fetched. It renders as an empty list.
type Failed[T any] struct {
	Err error
}

func (Loading[T]) Name() string    { return "loading" }
func (Listing[T]) Name() string    { return "listing" }
func (FormOpen[T]) Name() string   { return "form-open" }
func (Submitting[T]) Name() string { return "submitting" }
func (Failed[T]) Name() string     { return "failed" }

func (Loading[T]) isState()    {}
func (Listing[T]) isState()    {}
func (FormOpen[T]) isState()   {}
func (Submitting[T]) isState() {}
func (Failed[T]) isState()     {}

func (Loading[T]) Visible() []T      { return nil }
func (s Listing[T]) Visible() []T    { return s.Items }
func (s FormOpen[T]) Visible() []T   { return s.Items }
func (s Submitting[T]) Visible() []T { return s.Items }
func (Failed[T]) Visible() []T       { return nil }
