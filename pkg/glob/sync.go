package glob

import "os"

// GlobSync walks the roots depth-first on the calling goroutine and
// returns every path matching the compiled patterns. Results are emitted
// in traversal order; within one directory, the OS enumeration order is
// preserved. Per-entry problems are logged and handed to Options.OnSkip;
// a root-level problem aborts the call.
func GlobSync(patterns *Patterns, opts Options, roots []string) ([]string, error) {
	if opts.Logger == nil {
		opts = withNopLogger(opts)
	}

	var out []string
	for _, root := range roots {
		f, err := prepRoot(root)
		if err != nil {
			return nil, err
		}
		w := newWalker(patterns, opts, root)

		// The root itself is a candidate at depth 0.
		emit, err := w.examineRoot(f)
		if err != nil {
			w.skip(err)
		}
		if emit != "" {
			out = append(out, emit)
		}

		if err := w.walkSync(f, &out, true); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (w *walker) walkSync(f *frame, out *[]string, isRoot bool) error {
	// Entries of this directory sit at depth f.depth+1; with MaxDepth 0
	// only the roots themselves are candidates.
	if w.opts.MaxDepth != UnlimitedDepth && f.depth+1 > w.opts.MaxDepth {
		return nil
	}

	entries, err := os.ReadDir(f.path)
	if err != nil {
		if isRoot {
			return ioErr(f.path, err)
		}
		w.skip(ioErr(f.path, err))
		return nil
	}

	for _, de := range entries {
		emit, child, err := w.examine(f, de)
		if err != nil {
			w.skip(err)
		}
		if emit != "" {
			*out = append(*out, emit)
		}
		if child != nil {
			if err := w.walkSync(child, out, false); err != nil {
				return err
			}
		}
	}
	return nil
}
