package mapper

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"meilimap/msearch"
	"meilimap/schema"
)

// binding is everything an operation needs once Bind has succeeded: the
// resolved uid and primary key, the validated entity description and the
// live index handle.
type binding struct {
	uid    string
	pk     string
	entity *schema.Entity
	index  msearch.Index
}

// primaryKeyOf renders the primary key value of doc as the string the
// document route expects.
func (bd *binding) primaryKeyOf(doc any) (string, error) {
	f, ok := bd.entity.FieldByAttr(bd.pk)
	if !ok {
		return "", fmt.Errorf("entity %s has no attribute %q", bd.entity.Name, bd.pk)
	}
	v := reflect.ValueOf(doc)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return idString(v.Field(f.Index).Interface()), nil
}

// Runtime owns the client, the binding policy and the registry that maps
// generated implementation types to their index bindings. Bindings are
// written once per mapper at startup and read on every operation, so the
// registry is guarded by an RWMutex.
type Runtime struct {
	client msearch.Client
	opts   Options
	log    *slog.Logger

	mu       sync.RWMutex
	bindings map[reflect.Type]*binding
}

// NewRuntime builds a runtime around client with DefaultOptions and
// slog.Default, then applies opts.
func NewRuntime(client msearch.Client, opts ...Option) *Runtime {
	rt := &Runtime{
		client:   client,
		opts:     DefaultOptions(),
		log:      slog.Default(),
		bindings: make(map[reflect.Type]*binding),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Client exposes the underlying search client for calls that fall outside
// the mapper surface, such as task polling.
func (rt *Runtime) Client() msearch.Client {
	return rt.client
}

// Options returns the binding policy the runtime was built with.
func (rt *Runtime) Options() Options {
	return rt.opts
}

// register stores the binding for key. Re-binding the same type replaces
// the previous entry.
func (rt *Runtime) register(key reflect.Type, bd *binding) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.bindings[key] = bd
}

func (rt *Runtime) binding(key reflect.Type) (*binding, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	bd, ok := rt.bindings[key]
	return bd, ok
}
