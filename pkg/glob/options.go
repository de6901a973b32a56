package glob

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// UnlimitedDepth disables the traversal depth bound.
const UnlimitedDepth = -1

// Options configures both traversal engines. Instances are immutable
// once built and may be shared freely across workers.
type Options struct {
	// CaseSensitive controls pattern matching case sensitivity.
	CaseSensitive bool

	// FollowSymlinks makes the traversal recurse through symlinks that
	// point at directories.
	FollowSymlinks bool

	// MaxDepth bounds how many directory levels below a root are
	// explored; a root itself sits at depth 0. UnlimitedDepth removes
	// the bound; 0 matches only the roots themselves.
	MaxDepth int

	// MaxInflight caps concurrent directory expansions in the
	// streaming engine. Must be at least 1.
	MaxInflight int

	// Predicates filters matched paths by metadata.
	Predicates Predicates

	// RejectPathTraversal refuses patterns containing ".." segments.
	RejectPathTraversal bool

	// Logger receives traversal diagnostics. Defaults to a nop logger.
	Logger *zap.Logger

	// OnSkip, when set, receives per-entry traversal errors that the
	// sync engine skips over.
	OnSkip func(error)
}

// DefaultOptions returns the documented defaults: case-sensitive
// matching, no symlink following, unlimited depth, traversal rejection
// on, and a concurrency cap equal to the CPU count.
func DefaultOptions() Options {
	return Options{
		CaseSensitive:       true,
		FollowSymlinks:      false,
		MaxDepth:            UnlimitedDepth,
		MaxInflight:         runtime.NumCPU(),
		RejectPathTraversal: true,
		Logger:              zap.NewNop(),
	}
}

// Builder assembles Options through chained calls.
type Builder struct {
	opts Options
}

// NewBuilder starts from DefaultOptions.
func NewBuilder() *Builder {
	return &Builder{opts: DefaultOptions()}
}

func (b *Builder) CaseSensitive(v bool) *Builder {
	b.opts.CaseSensitive = v
	return b
}

func (b *Builder) FollowSymlinks(v bool) *Builder {
	b.opts.FollowSymlinks = v
	return b
}

func (b *Builder) MaxDepth(d int) *Builder {
	b.opts.MaxDepth = d
	return b
}

func (b *Builder) MaxInflight(n int) *Builder {
	b.opts.MaxInflight = n
	return b
}

func (b *Builder) Predicates(p Predicates) *Builder {
	b.opts.Predicates = p
	return b
}

func (b *Builder) RejectPathTraversal(v bool) *Builder {
	b.opts.RejectPathTraversal = v
	return b
}

func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.opts.Logger = l
	return b
}

func (b *Builder) OnSkip(fn func(error)) *Builder {
	b.opts.OnSkip = fn
	return b
}

// Build validates and returns the options.
func (b *Builder) Build() (Options, error) {
	if b.opts.MaxInflight < 1 {
		return Options{}, fmt.Errorf("max inflight must be at least 1, got %d", b.opts.MaxInflight)
	}
	if b.opts.MaxDepth < UnlimitedDepth {
		return Options{}, fmt.Errorf("max depth must be %d or a non-negative bound, got %d", UnlimitedDepth, b.opts.MaxDepth)
	}
	if b.opts.Logger == nil {
		b.opts.Logger = zap.NewNop()
	}
	return b.opts, nil
}
