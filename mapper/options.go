package mapper

import "log/slog"

// Options controls how Bind validates entities and how far it reaches
// into the remote engine during startup.
type Options struct {
	// RequireIndexAnnotation makes Bind fail for entities that do not
	// implement schema.Indexed. When false such entities fall back to the
	// decapitalized type name and Bind logs a warning.
	RequireIndexAnnotation bool

	// UseTypeNameAsDefaultIndexName permits an annotated entity whose
	// declared uid is empty to fall back to the decapitalized type name.
	UseTypeNameAsDefaultIndexName bool

	// AutoSyncPrimaryKey creates the index with the resolved primary key,
	// or updates the primary key of an existing index, during Bind.
	AutoSyncPrimaryKey bool

	// AutoSyncSettings pushes the settings derived from the entity's
	// attribute roles to the index during Bind.
	AutoSyncSettings bool

	// SynchronizeRemoteCalls is reserved. It is carried through
	// configuration but no operation consults it yet.
	SynchronizeRemoteCalls bool
}

// DefaultOptions returns the binding policy applied when the runtime is
// built without explicit options.
func DefaultOptions() Options {
	return Options{
		RequireIndexAnnotation: true,
		AutoSyncPrimaryKey:     true,
		AutoSyncSettings:       true,
	}
}

// Option adjusts a Runtime during construction.
type Option func(*Runtime)

// WithOptions replaces the default binding policy.
func WithOptions(opts Options) Option {
	return func(rt *Runtime) {
		rt.opts = opts
	}
}

// WithLogger replaces slog.Default as the runtime's logger.
func WithLogger(log *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.log = log
	}
}
