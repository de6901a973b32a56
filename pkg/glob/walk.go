package glob

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/IvanShishkin/pathhound/internal/fsmeta"
)

// frame is the traversal state for one directory. Frames form a chain up
// to the walk root; the chain is the ancestor set used by the symlink
// cycle guard. A frame is owned exclusively by the worker exploring it.
type frame struct {
	path  string // filesystem path the directory is read through
	rel   string // /-separated path relative to the walk root, "" at the root
	depth int    // levels below the root
	canon string // canonical path, cycle fallback when dev/ino is unavailable

	dev, ino uint64
	hasID    bool

	parent *frame
}

// onChain reports whether the device+inode pair already appears on the
// frame chain.
func (f *frame) onChain(dev, ino uint64) bool {
	for a := f; a != nil; a = a.parent {
		if a.hasID && a.dev == dev && a.ino == ino {
			return true
		}
	}
	return false
}

func (f *frame) canonOnChain(canon string) bool {
	for a := f; a != nil; a = a.parent {
		if a.canon != "" && a.canon == canon {
			return true
		}
	}
	return false
}

// prepRoot stats a walk root and builds its frame, recording the root's
// device+inode (or, where that is unavailable, its resolved path) for the
// cycle guard. The frame's path is the root as given. Root problems are
// fatal to the whole call.
func prepRoot(root string) (*frame, error) {
	p := fsmeta.EnsureLongPath(root)
	fi, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, &Error{Kind: KindSymlinkCycle, Path: root, Err: err}
		}
		return nil, ioErr(root, err)
	}
	if !fi.IsDir() {
		return nil, ioErr(root, errors.New("not a directory"))
	}

	f := &frame{path: p}
	if dev, ino, ok := fsmeta.DevIno(fi); ok {
		f.dev, f.ino, f.hasID = dev, ino, true
	} else if canon, err := filepath.EvalSymlinks(p); err == nil {
		f.canon = canon
	}
	return f, nil
}

// walker holds the per-call state shared by every frame of one root.
type walker struct {
	pats *Patterns
	opts Options
	stat *fsmeta.Statter
	// base is the root exactly as the caller spelled it, trailing
	// separators trimmed; output paths are built from it so results are
	// absolute iff the root was.
	base string
}

func newWalker(pats *Patterns, opts Options, root string) *walker {
	return &walker{
		pats: pats,
		opts: opts,
		stat: statter(),
		base: strings.TrimRight(root, `/\`),
	}
}

func (w *walker) outPath(rel string) string {
	return w.base + string(filepath.Separator) + filepath.FromSlash(rel)
}

func (w *walker) rootPath() string {
	if w.base == "" {
		return string(filepath.Separator)
	}
	return w.base
}

// examineRoot evaluates the walk root itself, which is a depth-0
// candidate like any other entry. Its match candidate is ".".
func (w *walker) examineRoot(f *frame) (string, error) {
	if !w.pats.Match(".") {
		return "", nil
	}
	ok, err := w.passesPredicates(f.path)
	if err != nil || !ok {
		return "", err
	}
	return w.rootPath(), nil
}

// examine evaluates one directory entry. It returns the output path when
// the entry matched and passed the predicates (empty otherwise), a child
// frame when the walk should descend, and any per-entry error. A
// non-nil error never aborts the walk; callers route it to diagnostics.
func (w *walker) examine(f *frame, de os.DirEntry) (string, *frame, error) {
	name := de.Name()
	rel := name
	if f.rel != "" {
		rel = f.rel + "/" + name
	}
	full := filepath.Join(f.path, name)

	var emit string
	var entryErr error
	if w.pats.Match(rel) {
		ok, perr := w.passesPredicates(full)
		switch {
		case perr != nil:
			// Metadata problems skip the emission but never stop the
			// recursion decision below.
			entryErr = perr
		case ok:
			emit = w.outPath(rel)
		}
	}

	isLink := de.Type()&fs.ModeSymlink != 0
	if !de.IsDir() && !(isLink && w.opts.FollowSymlinks) {
		return emit, nil, entryErr
	}
	// This entry sits at depth f.depth+1; descending would surface
	// entries at f.depth+2.
	if w.opts.MaxDepth != UnlimitedDepth && f.depth+2 > w.opts.MaxDepth {
		return emit, nil, entryErr
	}

	var fi os.FileInfo
	var err error
	if isLink {
		fi, err = os.Stat(full) // resolve the target
	} else {
		fi, err = de.Info()
	}
	if err != nil {
		if errors.Is(err, syscall.ELOOP) || os.IsNotExist(err) {
			// Broken or self-referential link; nothing to descend into.
			return emit, nil, entryErr
		}
		return emit, nil, ioErr(full, err)
	}
	if !fi.IsDir() {
		return emit, nil, entryErr
	}

	child := &frame{path: full, rel: rel, depth: f.depth + 1, parent: f}
	if dev, ino, ok := fsmeta.DevIno(fi); ok {
		if f.onChain(dev, ino) {
			return emit, nil, entryErr // cycle, skip silently
		}
		child.dev, child.ino, child.hasID = dev, ino, true
	} else if isLink {
		canon, cerr := filepath.EvalSymlinks(full)
		if cerr == nil {
			if f.canonOnChain(canon) {
				return emit, nil, entryErr
			}
			child.canon = canon
		}
	}
	return emit, child, entryErr
}

func (w *walker) passesPredicates(full string) (bool, error) {
	p := w.opts.Predicates
	if p.Empty() {
		return true, nil
	}
	follow := w.opts.FollowSymlinks
	if p.FollowSymlinks != nil {
		follow = *p.FollowSymlinks
	}
	e, err := w.stat.Stat(full, follow)
	if err != nil {
		return false, ioErr(full, err)
	}
	if e.NotFound {
		return false, nil
	}
	return p.Matches(e), nil
}

// skip routes a per-entry error to the log and the diagnostics sink.
func (w *walker) skip(err error) {
	w.opts.Logger.Warn("skipping entry", zap.Error(err))
	if w.opts.OnSkip != nil {
		w.opts.OnSkip(err)
	}
}
