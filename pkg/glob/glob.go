// Package glob is a file-globbing engine: it compiles human-authored
// path patterns (globs, brace groups, extended globs and explicit
// regexes) and walks directory trees yielding the paths that match.
//
// The package offers a batch engine (GlobSync) and a back-pressured
// streaming engine (GlobStream) sharing the same compiled Patterns and
// Options. Compiled matchers and file metadata are served from
// process-wide LRU+TTL caches; see Metrics and ResetCaches.
//
// Pattern syntax:
//
//	?  *  **          standard glob; ** must occupy a whole segment
//	[abc] [!abc]      character classes
//	{a,b}  {1..9..2}  brace alternatives and numeric ranges
//	@( ) *( ) +( )    extended glob groups
//	?( ) !( )
//	re:<regex>        explicit regex over the full relative path
//	\                 escapes the next metacharacter
//
// Patterns use / as separator on every platform; matching is performed
// against the /-separated path of each entry relative to its walk root.
package glob

import (
	"context"

	"go.uber.org/zap"
)

// Find compiles the patterns and runs the synchronous engine over the
// roots, returning all matching paths.
func Find(patterns []string, roots []string, opts Options) ([]string, error) {
	pats, err := CompileMany(patterns, opts)
	if err != nil {
		return nil, err
	}
	return GlobSync(pats, opts, roots)
}

// FindStream compiles the patterns and launches the streaming engine
// over the roots. Compilation errors are returned immediately rather
// than through the stream.
func FindStream(ctx context.Context, patterns []string, roots []string, opts Options) (*Stream, error) {
	pats, err := CompileMany(patterns, opts)
	if err != nil {
		return nil, err
	}
	return GlobStream(ctx, pats, opts, roots), nil
}

func withNopLogger(opts Options) Options {
	opts.Logger = zap.NewNop()
	return opts
}
