package stores

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/catalogclient/internal/client/api"
	"github.com/dmitrijs2005/catalogclient/internal/client/apierror"
	"github.com/dmitrijs2005/catalogclient/internal/client/models"
	"github.com/dmitrijs2005/catalogclient/internal/logging"
)

// ResourceAPI is the backend CRUD surface of one collection.
type ResourceAPI[T models.Entity, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id int64, patch P) (T, error)
	Delete(ctx context.Context, id int64) error
}

// UnauthorizedFunc is called when the backend answers 401.
type UnauthorizedFunc func(ctx context.Context)

type resourceOptions struct {
	log            logging.Logger
	onUnauthorized UnauthorizedFunc
}

type Option func(*resourceOptions)

func WithLogger(l logging.Logger) Option {
	return func(o *resourceOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// OnUnauthorized registers the hook run on a 401, typically Session.Expire.
func OnUnauthorized(fn UnauthorizedFunc) Option {
	return func(o *resourceOptions) { o.onUnauthorized = fn }
}

// Resource mirrors a server-owned collection of T and the entity last
// fetched individually.
type Resource[T models.Entity, P any] struct {
	name string
	api  ResourceAPI[T, P]
	opts resourceOptions

	mu       sync.Mutex
	items    []T
	selected *T
	loading  bool
	err      string
}

// NewResource builds a store named name (used in logs) over backend.
func NewResource[T models.Entity, P any](name string, backend ResourceAPI[T, P], opts ...Option) *Resource[T, P] {
	o := resourceOptions{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.With("store", name)
	return &Resource[T, P]{name: name, api: backend, opts: o}
}

// FetchAll replaces items with the server's collection. On failure items
// are kept and an empty slice is returned.
func (r *Resource[T, P]) FetchAll(ctx context.Context) []T {
	return r.replaceItems(ctx, "fetch all", r.api.List)
}

// FetchOne loads one entity into selected. On failure selected is cleared.
func (r *Resource[T, P]) FetchOne(ctx context.Context, id int64) (T, bool) {
	r.begin()
	defer r.end()

	v, err := r.api.Get(ctx, id)
	if err != nil {
		r.mu.Lock()
		r.selected = nil
		r.mu.Unlock()
		r.fail(ctx, "fetch one", err, "id", id)
		var zero T
		return zero, false
	}

	r.mu.Lock()
	r.selected = &v
	r.mu.Unlock()
	return v, true
}

// Create appends the server-returned entity to items. When the server
// confirms the creation without returning the entity, items are reloaded
// and a zero T is returned with true.
func (r *Resource[T, P]) Create(ctx context.Context, v T) (T, bool) {
	r.begin()
	defer r.end()

	created, err := r.api.Create(ctx, v)
	if errors.Is(err, api.ErrNoEntity) {
		return r.refetchAfterCreate(ctx)
	}
	if err != nil {
		r.fail(ctx, "create", err)
		var zero T
		return zero, false
	}

	r.mu.Lock()
	r.items = append(r.items, created)
	r.mu.Unlock()

	r.opts.log.Debug(ctx, "entity created", "id", created.EntityID())
	return created, true
}

func (r *Resource[T, P]) refetchAfterCreate(ctx context.Context) (T, bool) {
	var zero T

	items, err := r.api.List(ctx)
	if err != nil {
		r.fail(ctx, "create", err)
		return zero, false
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()

	r.opts.log.Debug(ctx, "entity created without representation, items reloaded", "count", len(items))
	return zero, true
}

// Update replaces the item with a matching id. Items are left unchanged
// when none matches. A matching selected entity is refreshed too.
func (r *Resource[T, P]) Update(ctx context.Context, id int64, patch P) (T, bool) {
	r.begin()
	defer r.end()

	updated, err := r.api.Update(ctx, id, patch)
	if err != nil {
		r.fail(ctx, "update", err, "id", id)
		var zero T
		return zero, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].EntityID() == id {
			r.items[i] = updated
			break
		}
	}
	if r.selected != nil && (*r.selected).EntityID() == id {
		r.selected = &updated
	}
	return updated, true
}

// Delete removes the item with a matching id once the server confirms.
func (r *Resource[T, P]) Delete(ctx context.Context, id int64) bool {
	r.begin()
	defer r.end()

	if err := r.api.Delete(ctx, id); err != nil {
		r.fail(ctx, "delete", err, "id", id)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].EntityID() == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			break
		}
	}
	if r.selected != nil && (*r.selected).EntityID() == id {
		r.selected = nil
	}
	return true
}

// Items returns a copy of the held collection.
func (r *Resource[T, P]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Resource[T, P]) Selected() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		var zero T
		return zero, false
	}
	return *r.selected, true
}

func (r *Resource[T, P]) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Resource[T, P]) Error() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Resource[T, P]) replaceItems(ctx context.Context, op string, list func(context.Context) ([]T, error)) []T {
	r.begin()
	defer r.end()

	items, err := list(ctx)
	if err != nil {
		r.fail(ctx, op, err)
		return []T{}
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()

	out := make([]T, len(items))
	copy(out, items)
	return out
}

func (r *Resource[T, P]) fail(ctx context.Context, op string, err error, args ...any) {
	msg := apierror.Normalize(err)

	r.mu.Lock()
	r.err = msg
	r.mu.Unlock()

	r.opts.log.Warn(ctx, "store action failed", append([]any{"op", op, "error", err}, args...)...)

	if isUnauthorized(err) && r.opts.onUnauthorized != nil {
		r.opts.onUnauthorized(ctx)
	}
}

func (r *Resource[T, P]) begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = true
	r.err = ""
}

func (r *Resource[T, P]) end() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
}
