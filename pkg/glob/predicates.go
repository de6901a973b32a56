package glob

import (
	"time"

	"github.com/IvanShishkin/pathhound/internal/fsmeta"
)

// FileType selects which filesystem object kinds a predicate accepts.
type FileType int

const (
	FileTypeAny FileType = iota
	FileTypeFile
	FileTypeDir
	FileTypeSymlink
)

// Predicates filters matched paths by their metadata. The zero value
// accepts everything. Size bounds are in bytes; time bounds compare
// against the metadata's reported instants.
type Predicates struct {
	MinSize     *int64
	MaxSize     *int64
	FileType    FileType
	MTimeAfter  *time.Time
	MTimeBefore *time.Time
	CTimeAfter  *time.Time
	CTimeBefore *time.Time

	// FollowSymlinks overrides the option-level symlink setting for
	// metadata resolution only. Nil inherits the traversal option.
	FollowSymlinks *bool
}

// Empty reports whether no predicate is configured, letting the engines
// skip the metadata fetch entirely.
func (p Predicates) Empty() bool {
	return p.MinSize == nil && p.MaxSize == nil && p.FileType == FileTypeAny &&
		p.MTimeAfter == nil && p.MTimeBefore == nil &&
		p.CTimeAfter == nil && p.CTimeBefore == nil
}

// Matches evaluates the predicates against one metadata entry,
// short-circuiting on the first failure. Entries without a change time
// pass the ctime checks only when those predicates are absent.
func (p Predicates) Matches(e fsmeta.Entry) bool {
	if p.MinSize != nil && e.Size < *p.MinSize {
		return false
	}
	if p.MaxSize != nil && e.Size > *p.MaxSize {
		return false
	}

	switch p.FileType {
	case FileTypeFile:
		if e.Kind != fsmeta.KindFile {
			return false
		}
	case FileTypeDir:
		if e.Kind != fsmeta.KindDir {
			return false
		}
	case FileTypeSymlink:
		if e.Kind != fsmeta.KindSymlink {
			return false
		}
	}

	if p.MTimeAfter != nil && e.ModTime.Before(*p.MTimeAfter) {
		return false
	}
	if p.MTimeBefore != nil && e.ModTime.After(*p.MTimeBefore) {
		return false
	}

	if p.CTimeAfter != nil || p.CTimeBefore != nil {
		if !e.HasChangeTime {
			return false
		}
		if p.CTimeAfter != nil && e.ChangeTime.Before(*p.CTimeAfter) {
			return false
		}
		if p.CTimeBefore != nil && e.ChangeTime.After(*p.CTimeBefore) {
			return false
		}
	}

	return true
}
