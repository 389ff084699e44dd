package multimap

import "log/slog"

// defaultPoolCapacityMultiple sets the element pool's bound as a multiple
// of capacity when the caller doesn't pick one explicitly — a small reserve
// is enough to absorb bursts of churn without the pool itself becoming an
// unbounded cache of empty wrappers (spec §4.6.5, "implementation-defined").
const defaultPoolCapacityMultiple = 2

// config collects the knobs applied by Option before a Cache is built. It
// is deliberately not the generic Cache type itself, so Option stays a
// plain func(*config) and one Option value works across every entity kind's
// Cache instantiation — mirroring the teacher's functional-options pattern
// (options.go: Option func(*Cache)) while accounting for Cache now being
// generic per entity kind.
type config struct {
	capacity     int
	poolCapacity int
	logger       *slog.Logger
}

// Option configures a Cache at construction time. This project uses the
// functional-options pattern rather than a config struct passed directly to
// New, so adding a new knob never changes New's signature.
type Option func(*config)

// WithCapacity sets the soft target for the number of registered elements
// (spec §4.6.5 map_capacity_exceeded: |snapshot_map| > capacity). Unlike
// most size knobs, 0 is a meaningful, spec-defined value here, not "use the
// default": it means every unpinned insertion is evicted immediately,
// matching shared_multi_map.cc's behavior when m_capacity is 0. A negative
// n disables eviction-by-capacity entirely (unbounded); that's what New
// uses when WithCapacity is never called.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithPoolCapacity sets the bound on the element pool (spec §4.6.5
// pool_capacity_exceeded). If unset, it defaults to
// defaultPoolCapacityMultiple * capacity.
func WithPoolCapacity(n int) Option {
	return func(c *config) { c.poolCapacity = n }
}

// WithLogger sets the logger used for anomaly-level diagnostics (shutdown
// leaks, no-op SetSticky calls). Defaults to
// slog.Default(). The cache never logs on its hot path.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	// capacity defaults to unbounded (negative) rather than the zero
	// value, since 0 is itself a meaningful, spec-defined capacity (see
	// WithCapacity) and must not be silently treated as "unset".
	c := config{capacity: -1, logger: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.poolCapacity <= 0 {
		if c.capacity > 0 {
			c.poolCapacity = c.capacity * defaultPoolCapacityMultiple
		} else {
			c.poolCapacity = 0
		}
	}
	return c
}
