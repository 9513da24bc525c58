// Package crud orchestrates list, edit and create flows generically over
// any administered entity. The engine owns no cache: after every successful
// mutation it fires the resource's invalidate hook so the caller refreshes
// its view.
package crud

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

// ErrNotSupported is returned when an operation the resource did not supply
// is invoked anyway.
var ErrNotSupported = errors.New("operation not supported for this resource")

// Resource describes one administered entity kind: its form schema, how to
// identify and seed a row, and the repository operations the engine may call.
// Remove is optional; a nil Remove simply withholds the removal capability.
type Resource[T any] struct {
	Name   string
	Fields []form.Field

	ID     func(T) string
	Values func(T) form.Values

	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, values form.Values) (T, error)
	Update func(ctx context.Context, id string, values form.Values) (T, error)
	Remove func(ctx context.Context, id string) error
}

// Guard authorizes a mutation before any write happens. A nil guard means
// the resource is mutable without authorization.
type Guard func(ctx context.Context) error

// Engine binds a Resource to its compiled validators and an authorization
// guard. One engine instance serves one entity kind for the process lifetime.
type Engine[T any] struct {
	res    Resource[T]
	guard  Guard
	create *form.Validator
	edit   *form.Validator

	invalidate func()
}

// New compiles the resource's field schema into the creation and edit
// validators and returns a ready engine. invalidate is called after every
// successful mutation and must not be nil.
func New[T any](res Resource[T], guard Guard, invalidate func()) *Engine[T] {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &Engine[T]{
		res:        res,
		guard:      guard,
		create:     form.Compile(res.Fields),
		edit:       form.CompileEdit(res.Fields),
		invalidate: invalidate,
	}
}

// Fields returns the full field schema, for rendering the create form.
func (e *Engine[T]) Fields() []form.Field { return e.res.Fields }

// EditFields returns the subset of the schema that may be edited.
func (e *Engine[T]) EditFields() []form.Field { return e.edit.Fields() }

// CanRemove reports whether the resource supplied a removal operation.
func (e *Engine[T]) CanRemove() bool { return e.res.Remove != nil }

// View lists the current entities sorted ascending by identifier. It reads
// straight from the repository every time, so re-running it against
// unchanged storage yields an identical view.
func (e *Engine[T]) View(ctx context.Context) ([]T, error) {
	items, err := e.res.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", e.res.Name, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return e.res.ID(items[i]) < e.res.ID(items[j])
	})
	return items, nil
}

// BeginEdit seeds an edit payload with the entity's current values,
// restricted to the editable fields.
func (e *Engine[T]) BeginEdit(entity T) form.Values {
	all := e.res.Values(entity)
	seed := form.Values{}
	for _, f := range e.edit.Fields() {
		if v, ok := all[f.Name]; ok {
			seed[f.Name] = v
		}
	}
	return seed
}

// SubmitCreate validates the payload against the creation validator and, if
// clean, authorizes and persists it. Per-field validation failures come back
// in the Errors map with a nil error; any other failure aborts before the
// write.
func (e *Engine[T]) SubmitCreate(ctx context.Context, payload form.Values) (T, form.Errors, error) {
	var zero T
	clean, errs := e.create.Validate(payload)
	if len(errs) > 0 {
		return zero, errs, nil
	}
	if err := e.authorize(ctx); err != nil {
		return zero, nil, err
	}
	created, err := e.res.Create(ctx, clean)
	if err != nil {
		return zero, nil, fmt.Errorf("create %s: %w", e.res.Name, err)
	}
	e.invalidate()
	return created, nil, nil
}

// SubmitEdit validates the payload against the edit validator and, if clean,
// authorizes and applies the update to the identified entity.
func (e *Engine[T]) SubmitEdit(ctx context.Context, id string, payload form.Values) (T, form.Errors, error) {
	var zero T
	clean, errs := e.edit.Validate(payload)
	if len(errs) > 0 {
		return zero, errs, nil
	}
	if err := e.authorize(ctx); err != nil {
		return zero, nil, err
	}
	updated, err := e.res.Update(ctx, id, clean)
	if err != nil {
		return zero, nil, fmt.Errorf("update %s %s: %w", e.res.Name, id, err)
	}
	e.invalidate()
	return updated, nil, nil
}

// SubmitRemove deletes the identified entity. Removal is fire-and-forget:
// there is no rollback, a failure just surfaces and the row stays visible
// until the next refresh.
func (e *Engine[T]) SubmitRemove(ctx context.Context, id string) error {
	if e.res.Remove == nil {
		return ErrNotSupported
	}
	if err := e.authorize(ctx); err != nil {
		return err
	}
	if err := e.res.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove %s %s: %w", e.res.Name, id, err)
	}
	e.invalidate()
	return nil
}

func (e *Engine[T]) authorize(ctx context.Context) error {
	if e.guard == nil {
		return nil
	}
	return e.guard(ctx)
}
