package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	pkgLog "travel-assistant-core/pkg/log"
)

// Catalog is the set of intent labels the generator scores and the
// synthesizer expands. Reads are concurrent; hot reload swaps the entry
// set atomically under the write lock.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string

	l pkgLog.Logger
	v *viper.Viper
}

// New builds a catalog from the compiled-in defaults.
func New(l pkgLog.Logger) (*Catalog, error) {
	c := &Catalog{l: l}
	if err := c.replace(defaultEntries()); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromEntries builds a catalog from an explicit entry set.
func NewFromEntries(entries []Entry, l pkgLog.Logger) (*Catalog, error) {
	c := &Catalog{l: l}
	if err := c.replace(entries); err != nil {
		return nil, err
	}
	return c, nil
}

// Load builds a catalog from a YAML file and watches it for changes.
// A missing file falls back to the compiled-in defaults; a file that fails
// validation on reload keeps the previous entry set.
func Load(path string, l pkgLog.Logger) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)

	c := &Catalog{l: l, v: v}

	if err := v.ReadInConfig(); err != nil {
		l.Warnf(context.Background(), "catalog: %s not readable, using built-in defaults: %v", path, err)
		if repErr := c.replace(defaultEntries()); repErr != nil {
			return nil, repErr
		}
		return c, nil
	}

	entries, err := parseEntries(v)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid %s: %w", path, err)
	}
	if err := c.replace(entries); err != nil {
		return nil, fmt.Errorf("catalog: invalid %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		ctx := context.Background()
		reloaded, perr := parseEntries(v)
		if perr != nil {
			l.Errorf(ctx, "catalog: reload of %s failed, keeping previous entries: %v", e.Name, perr)
			return
		}
		if rerr := c.replace(reloaded); rerr != nil {
			l.Errorf(ctx, "catalog: reload of %s rejected, keeping previous entries: %v", e.Name, rerr)
			return
		}
		l.Infof(ctx, "catalog: reloaded %d entries from %s", len(reloaded), e.Name)
	})
	v.WatchConfig()

	return c, nil
}

func parseEntries(v *viper.Viper) ([]Entry, error) {
	var raw struct {
		Intents []Entry `mapstructure:"intents"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, err
	}
	return raw.Intents, nil
}

// replace validates and atomically installs a new entry set.
func (c *Catalog) replace(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCatalog
	}

	m := make(map[string]Entry, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Label == "" {
			return ErrEmptyLabel
		}
		if e.Label == LabelUnknown {
			return fmt.Errorf("%w: %q is reserved", ErrDuplicateLabel, LabelUnknown)
		}
		if _, dup := m[e.Label]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, e.Label)
		}
		if len(e.Steps) == 0 {
			return fmt.Errorf("%w: %s", ErrNoSteps, e.Label)
		}
		m[e.Label] = e
		order = append(order, e.Label)
	}

	c.mu.Lock()
	c.entries = m
	c.order = order
	c.mu.Unlock()
	return nil
}

// Get returns the entry for label.
func (c *Catalog) Get(label string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[label]
	return e, ok
}

// Labels returns all labels in declaration order.
func (c *Catalog) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, c.entries[label])
	}
	return out
}
