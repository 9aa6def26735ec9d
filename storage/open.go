package storage

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/provenact/provenact/errs"
)

// Options carries the backend-independent connection settings. Each
// backend reads the fields it needs and ignores the rest.
type Options struct {
	// URL is the connection string: a DSN for the database backend, the
	// service base URL for the transparency-log backend.
	URL string
	// Path is the root directory for the local filesystem backend.
	Path string
	Log  *zap.Logger
}

func (o Options) Logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// Factory constructs a backend from connection options.
type Factory func(Options) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// deprecated maps retired backend names to their replacements. The old
// names keep working but log a warning on every Open.
var deprecated = map[string]string{
	"local":      "database",
	"filesystem": "local-fs",
}

// Register installs a backend factory under a type name. Backends call it
// from init; a duplicate name panics because it is a programming error.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("storage: backend " + name + " registered twice")
	}
	registry[name] = f
}

// Open resolves a backend type name, following deprecated aliases, and
// constructs the backend. Unknown names list the valid options.
func Open(typ string, opts Options) (Backend, error) {
	name := strings.ToLower(typ)
	if replacement, ok := deprecated[name]; ok {
		opts.Logger().Warn("storage type is deprecated",
			zap.String("storage_type", name),
			zap.String("use_instead", replacement))
		name = replacement
	}

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errs.New(errs.KindValidation,
			"invalid storage type %q. Valid options are: %s", typ, strings.Join(backendNames(), ", "))
	}
	return factory(opts)
}

func backendNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
