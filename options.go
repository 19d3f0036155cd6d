package fenseg

import (
	"io"
	"math/bits"

	"github.com/sirupsen/logrus"
)

const (
	// arenaSlack multiplies the per-position path length when pre-sizing the arena.
	arenaSlack = 2
	// MaxArenaPresize caps the derived initial arena capacity (in nodes).
	// Larger arenas still grow on demand.
	MaxArenaPresize = 1 << 22
)

// Options holds the configuration of an Index.
type Options struct {
	// ArenaCapacity is the initial number of nodes reserved in the arena.
	// If <= 0, it is derived from the number of positions and the domain size.
	ArenaCapacity int
	// Persistent switches updates to path copying, so a View taken
	// before an update keeps answering from the old state without copying the arena.
	Persistent bool
	// Unchecked disables the point-count check that rejects deletes of absent values.
	Unchecked bool
	// Logger receives debug events. Defaults to a discarding logger.
	Logger logrus.FieldLogger
}

// Option configures an Index.
type Option func(*Options)

// WithArenaCapacity sets the initial arena capacity in nodes.
func WithArenaCapacity(nodes int) Option {
	return func(o *Options) {
		o.ArenaCapacity = nodes
	}
}

// WithPersistent enables path-copying updates.
func WithPersistent() Option {
	return func(o *Options) {
		o.Persistent = true
	}
}

// WithUncheckedUpdates skips the negative-count check on every update.
// Deleting a value that is not present then leaves the index in an undefined state.
func WithUncheckedUpdates() Option {
	return func(o *Options) {
		o.Unchecked = true
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}

// arenaCapacity returns the initial arena size for n positions over a domain of s ranks.
// Every position sits under ceil(log2 n)+1 Fenwick roots, each owning a path of
// bits.Len(s)+1 nodes, but most paths share their upper nodes, so a single path per
// position times a small slack is a good starting point.
func (o *Options) arenaCapacity(n, s int) int {
	if o != nil && o.ArenaCapacity > 0 {
		return o.ArenaCapacity
	}
	c := n * (bits.Len(uint(s)) + 1) * arenaSlack
	if c <= 0 || c > MaxArenaPresize {
		c = MaxArenaPresize
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
