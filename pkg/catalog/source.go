// CLAUDE:SUMMARY Catalog source registry keyed by URI scheme, with Open/Load/Save helpers used by the CLI and the registry loader.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hazyhaar/autolex/pkg/lexicon"
)

// ErrUnknownScheme is returned when a catalog URI names no registered source.
var ErrUnknownScheme = errors.New("unknown catalog scheme")

// Reader loads catalog definitions from one kind of storage.
type Reader interface {
	// Scheme returns the URI scheme this reader serves (e.g. "yaml").
	Scheme() string
	// Read returns the definitions stored at location.
	Read(ctx context.Context, location string) (*lexicon.Definitions, error)
	// Fingerprint returns a value that changes whenever the catalog at
	// location changes.
	Fingerprint(ctx context.Context, location string) (string, error)
}

// Writer is implemented by readers that can also persist definitions.
type Writer interface {
	Write(ctx context.Context, location string, defs *lexicon.Definitions) error
}

var (
	registryMu sync.RWMutex
	readers    = make(map[string]Reader)
)

// extensions maps bare file paths to schemes.
var extensions = map[string]string{
	".yaml":   "yaml",
	".yml":    "yaml",
	".gob":    "gob",
	".db":     "sqlite",
	".sqlite": "sqlite",
}

// Register adds a reader to the global registry.
func Register(r Reader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	readers[r.Scheme()] = r
}

// Get returns the reader registered for scheme.
func Get(scheme string) (Reader, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := readers[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return r, nil
}

// All returns all registered readers sorted by scheme.
func All() []Reader {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Reader, 0, len(readers))
	for _, r := range readers {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Scheme() < result[j].Scheme() })
	return result
}

// Open resolves a catalog URI into its reader and location. The URI is
// either "scheme:location" or a bare path whose extension picks the scheme.
func Open(uri string) (Reader, string, error) {
	if scheme, loc, ok := strings.Cut(uri, ":"); ok {
		if r, err := Get(scheme); err == nil {
			return r, loc, nil
		}
	}
	scheme, ok := extensions[strings.ToLower(filepath.Ext(uri))]
	if !ok {
		return nil, "", fmt.Errorf("%w: cannot infer source for %q", ErrUnknownScheme, uri)
	}
	r, err := Get(scheme)
	if err != nil {
		return nil, "", err
	}
	return r, uri, nil
}

// Loader returns a registry loader reading the catalog at uri.
func Loader(uri string) (lexicon.LoaderFunc, error) {
	r, loc, err := Open(uri)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (*lexicon.Definitions, error) {
		return r.Read(ctx, loc)
	}, nil
}

// Load reads the definitions at uri.
func Load(ctx context.Context, uri string) (*lexicon.Definitions, error) {
	r, loc, err := Open(uri)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, loc)
}

// Save writes defs to uri. The target source must support writing.
func Save(ctx context.Context, uri string, defs *lexicon.Definitions) error {
	r, loc, err := Open(uri)
	if err != nil {
		return err
	}
	w, ok := r.(Writer)
	if !ok {
		return fmt.Errorf("catalog source %q is read-only", r.Scheme())
	}
	return w.Write(ctx, loc, defs)
}
