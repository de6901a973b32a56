// Package fsmeta fetches filesystem metadata through an LRU+TTL cache.
//
// Entries carry everything the predicate filter needs (size, kind, mtime
// and, where the platform reports one, ctime) so repeated filtering of
// the same path costs a single stat.
package fsmeta

import (
	"io/fs"
	"os"
	"time"

	"github.com/IvanShishkin/pathhound/internal/cache"
)

// Kind classifies a filesystem object.
type Kind uint8

const (
	KindOther Kind = iota
	KindFile
	KindDir
	KindSymlink
)

// Entry is the cached metadata for one path. NotFound entries are cached
// as well so repeated lookups of missing paths stay cheap.
type Entry struct {
	Size          int64
	Kind          Kind
	ModTime       time.Time
	ChangeTime    time.Time
	HasChangeTime bool
	NotFound      bool
	// Followed reports whether the entry describes a symlink target
	// rather than the link itself.
	Followed bool
}

type key struct {
	path   string
	follow bool
}

// Statter resolves path metadata with caching. Safe for concurrent use.
type Statter struct {
	cache *cache.Cache[key, Entry]
}

// NewStatter creates a Statter whose cache holds capacity entries for at
// most ttl.
func NewStatter(capacity int, ttl time.Duration) *Statter {
	return &Statter{cache: cache.New[key, Entry](capacity, ttl)}
}

// Stat returns metadata for path. With follow set, symlinks are resolved
// and the target's metadata is returned; otherwise the link itself is
// described. The returned entry has NotFound set when the path (or, when
// following, its target) does not exist.
func (s *Statter) Stat(path string, follow bool) (Entry, error) {
	k := key{path: path, follow: follow}
	if e, ok := s.cache.Get(k); ok {
		return e, nil
	}

	e, err := statEntry(path, follow)
	if err != nil {
		return Entry{}, err
	}
	s.cache.Put(k, e)
	return e, nil
}

// Metrics returns the metadata cache counters.
func (s *Statter) Metrics() cache.Metrics {
	return s.cache.Metrics()
}

// Purge drops all cached entries.
func (s *Statter) Purge() {
	s.cache.Purge()
}

func statEntry(path string, follow bool) (Entry, error) {
	var fi os.FileInfo
	var err error
	if follow {
		fi, err = os.Stat(path)
	} else {
		fi, err = os.Lstat(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{NotFound: true, Followed: follow}, nil
		}
		return Entry{}, err
	}
	return fromFileInfo(fi, follow), nil
}

func fromFileInfo(fi os.FileInfo, followed bool) Entry {
	e := Entry{
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		Kind:     kindOf(fi.Mode()),
		Followed: followed,
	}
	if ct, ok := changeTime(fi); ok {
		e.ChangeTime = ct
		e.HasChangeTime = true
	}
	return e
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	}
	return KindOther
}
