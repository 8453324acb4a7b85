package views

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/pterm/pterm"
)

// Ops binds a flow to the API calls of one entity.
type Ops[T, C, U any] struct {
	// Entity is the singular name used in prompts and logs, e.g. "lead".
	Entity string
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, input C) (*T, error)
	Update func(ctx context.Context, id string, input U) (*T, error)
	Delete func(ctx context.Context, id string) error
	ID     func(item T) string
	// Describe labels a record in the delete prompt. Defaults to ID.
	Describe func(item T) string

	ValidateCreate func(input C) error
	ValidateUpdate func(input U) error
}

// Flow is the list/form/delete state machine of one entity. It is driven by a single
// goroutine and is not safe for concurrent use.
type Flow[T, C, U any] struct {
	ops      Ops[T, C, U]
	state    State[T]
	logger   *pterm.Logger
	observer func(State[T])
}

// NewFlow returns a flow in the Loading state. A nil logger discards log output.
func NewFlow[T, C, U any](ops Ops[T, C, U], logger *pterm.Logger) *Flow[T, C, U] {
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}
	if ops.Describe == nil {
		ops.Describe = ops.ID
	}
	return &Flow[T, C, U]{ops: ops, state: Loading[T]{}, logger: logger}
}

// Observe registers fn to be called with every state the flow enters.
func (f *Flow[T, C, U]) Observe(fn func(State[T])) {
	f.observer = fn
}

// State returns the current state.
func (f *Flow[T, C, U]) State() State[T] { return f.state }

// Items returns the visible list. Failed and Loading render as empty.
func (f *Flow[T, C, U]) Items() []T { return f.state.Visible() }

// Find returns the loaded record with the given id.
func (f *Flow[T, C, U]) Find(id string) (T, bool) {
	for _, item := range f.Items() {
		if f.ops.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (f *Flow[T, C, U]) enter(s State[T]) {
	f.state = s
	if f.observer != nil {
		f.observer(s)
	}
}

func (f *Flow[T, C, U]) invalid(op string) error {
	return fmt.Errorf("%w: cannot %s %s while %s", ErrInvalidTransition, op, f.ops.Entity, f.state.Name())
}

// Mount fetches the collection. On failure the flow enters Failed and the error is
// returned after being logged.
func (f *Flow[T, C, U]) Mount(ctx context.Context) error {
	f.enter(Loading[T]{})
	return f.refresh(ctx)
}

func (f *Flow[T, C, U]) refresh(ctx context.Context) error {
	items, err := f.ops.List(ctx)
	if err != nil {
		f.logger.Error("failed to load list", f.logger.Args("entity", f.ops.Entity, "error", err))
		f.enter(Failed[T]{Err: err})
		return fmt.Errorf("failed to load %ss: %w", f.ops.Entity, err)
	}
	f.enter(Listing[T]{Items: items})
	return nil
}

func (f *Flow[T, C, U]) browsing() bool {
	switch f.state.(type) {
	case Listing[T], Failed[T]:
		return true
	default:
		return false
	}
}

// loadErr is the fetch error of a Failed list, nil otherwise.
func (f *Flow[T, C, U]) loadErr() error {
	if failed, ok := f.state.(Failed[T]); ok {
		return failed.Err
	}
	return nil
}

// OpenCreate opens an empty create form.
func (f *Flow[T, C, U]) OpenCreate() error {
	if !f.browsing() {
		return f.invalid("open create form for")
	}
	f.enter(FormOpen[T]{Mode: ModeCreate, Items: f.Items(), LoadErr: f.loadErr()})
	return nil
}

// OpenEdit opens the edit form of the loaded record id.
func (f *Flow[T, C, U]) OpenEdit(id string) (T, error) {
	var zero T
	if !f.browsing() {
		return zero, f.invalid("open edit form for")
	}
	item, ok := f.Find(id)
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", f.ops.Entity, id, ErrNotFound)
	}
	f.enter(FormOpen[T]{Mode: ModeEdit, Target: id, Items: f.Items(), LoadErr: f.loadErr()})
	return item, nil
}

// CancelForm closes the open form without sending anything and returns to the list
// it was opened from, Failed included.
func (f *Flow[T, C, U]) CancelForm() error {
	form, ok := f.state.(FormOpen[T])
	if !ok {
		return f.invalid("cancel form for")
	}
	if form.LoadErr != nil {
		f.enter(Failed[T]{Err: form.LoadErr})
		return nil
	}
	f.enter(Listing[T]{Items: form.Items})
	return nil
}

// SubmitCreate validates input and creates the record. Failures keep the form open with
// the error attached.
func (f *Flow[T, C, U]) SubmitCreate(ctx context.Context, input C) (*T, error) {
	form, ok := f.state.(FormOpen[T])
	if !ok || form.Mode != ModeCreate {
		return nil, f.invalid("submit create form for")
	}
	if f.ops.ValidateCreate != nil {
		if err := f.ops.ValidateCreate(input); err != nil {
			f.enter(FormOpen[T]{Mode: ModeCreate, Items: form.Items, Err: err, LoadErr: form.LoadErr})
			return nil, err
		}
	}

	f.enter(Submitting[T]{Mode: ModeCreate, Items: form.Items, LoadErr: form.LoadErr})
	created, err := f.ops.Create(ctx, input)
	if err != nil {
		f.enter(FormOpen[T]{Mode: ModeCreate, Items: form.Items, Err: err, LoadErr: form.LoadErr})
		return nil, err
	}
	f.afterWrite(ctx, "create")
	return created, nil
}

// SubmitEdit validates input and updates the record the form was opened for.
func (f *Flow[T, C, U]) SubmitEdit(ctx context.Context, input U) (*T, error) {
	form, ok := f.state.(FormOpen[T])
	if !ok || form.Mode != ModeEdit {
		return nil, f.invalid("submit edit form for")
	}
	if f.ops.ValidateUpdate != nil {
		if err := f.ops.ValidateUpdate(input); err != nil {
			f.enter(FormOpen[T]{Mode: ModeEdit, Target: form.Target, Items: form.Items, Err: err, LoadErr: form.LoadErr})
			return nil, err
		}
	}

	f.enter(Submitting[T]{Mode: ModeEdit, Target: form.Target, Items: form.Items, LoadErr: form.LoadErr})
	updated, err := f.ops.Update(ctx, form.Target, input)
	if err != nil {
		f.enter(FormOpen[T]{Mode: ModeEdit, Target: form.Target, Items: form.Items, Err: err, LoadErr: form.LoadErr})
		return nil, err
	}
	f.afterWrite(ctx, "update")
	return updated, nil
}

// Delete removes the loaded record id once confirm agrees. A declined prompt sends
// nothing and returns false.
func (f *Flow[T, C, U]) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !f.browsing() {
		return false, f.invalid("delete")
	}
	item, ok := f.Find(id)
	if !ok {
		return false, fmt.Errorf("%s %s: %w", f.ops.Entity, id, ErrNotFound)
	}

	yes, err := confirm.Confirm(fmt.Sprintf("Delete %s %s?", f.ops.Entity, f.ops.Describe(item)))
	if err != nil {
		return false, err
	}
	if !yes {
		return false, nil
	}

	if err := f.ops.Delete(ctx, id); err != nil {
		f.logger.Error("delete failed", f.logger.Args("entity", f.ops.Entity, "id", id, "error", err))
		return false, fmt.Errorf("failed to delete %s: %w", f.ops.Entity, err)
	}
	f.afterWrite(ctx, "delete")
	return true, nil
}

// afterWrite refetches the list. A failed refetch leaves the flow in Failed but does
// not undo the successful write.
func (f *Flow[T, C, U]) afterWrite(ctx context.Context, op string) {
	if err := f.refresh(ctx); err != nil {
		f.logger.Warn("refetch after write failed", f.logger.Args("entity", f.ops.Entity, "op", op))
	}
}

// replace swaps the loaded copy of id for item without refetching.
func (f *Flow[T, C, U]) replace(id string, item T) {
	listing, ok := f.state.(Listing[T])
	if !ok {
		return
	}
	items := slices.Clone(listing.Items)
	for i := range items {
		if f.ops.ID(items[i]) == id {
			items[i] = item
		}
	}
	f.enter(Listing[T]{Items: items})
}
