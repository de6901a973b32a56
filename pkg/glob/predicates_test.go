package glob

import (
	"testing"
	"time"

	"github.com/IvanShishkin/pathhound/internal/fsmeta"
)

func i64(v int64) *int64        { return &v }
func ts(t time.Time) *time.Time { return &t }

func TestPredicates_Empty(t *testing.T) {
	if !(Predicates{}).Empty() {
		t.Error("zero predicates not Empty()")
	}
	if (Predicates{MinSize: i64(1)}).Empty() {
		t.Error("sized predicates reported Empty()")
	}
	// The follow override alone does not make predicates non-empty.
	follow := true
	if !(Predicates{FollowSymlinks: &follow}).Empty() {
		t.Error("follow-only predicates not Empty()")
	}
}

func TestPredicates_Size(t *testing.T) {
	e := fsmeta.Entry{Size: 100, Kind: fsmeta.KindFile}

	tests := []struct {
		name string
		p    Predicates
		want bool
	}{
		{"no bounds", Predicates{}, true},
		{"min ok", Predicates{MinSize: i64(100)}, true},
		{"min fail", Predicates{MinSize: i64(101)}, false},
		{"max ok", Predicates{MaxSize: i64(100)}, true},
		{"max fail", Predicates{MaxSize: i64(99)}, false},
		{"window", Predicates{MinSize: i64(50), MaxSize: i64(150)}, true},
	}
	for _, tt := range tests {
		if got := tt.p.Matches(e); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPredicates_FileType(t *testing.T) {
	file := fsmeta.Entry{Kind: fsmeta.KindFile}
	dir := fsmeta.Entry{Kind: fsmeta.KindDir}
	link := fsmeta.Entry{Kind: fsmeta.KindSymlink}

	if !(Predicates{FileType: FileTypeFile}).Matches(file) {
		t.Error("file predicate rejected a file")
	}
	if (Predicates{FileType: FileTypeFile}).Matches(dir) {
		t.Error("file predicate accepted a directory")
	}
	if !(Predicates{FileType: FileTypeDir}).Matches(dir) {
		t.Error("dir predicate rejected a directory")
	}
	if !(Predicates{FileType: FileTypeSymlink}).Matches(link) {
		t.Error("symlink predicate rejected a symlink")
	}
	for _, e := range []fsmeta.Entry{file, dir, link} {
		if !(Predicates{FileType: FileTypeAny}).Matches(e) {
			t.Error("any predicate rejected an entry")
		}
	}
}

func TestPredicates_Times(t *testing.T) {
	now := time.Now()
	e := fsmeta.Entry{
		ModTime:       now,
		ChangeTime:    now,
		HasChangeTime: true,
	}

	if !(Predicates{MTimeAfter: ts(now.Add(-time.Hour))}).Matches(e) {
		t.Error("mtime after rejected a newer file")
	}
	if (Predicates{MTimeAfter: ts(now.Add(time.Hour))}).Matches(e) {
		t.Error("mtime after accepted an older file")
	}
	if !(Predicates{MTimeBefore: ts(now.Add(time.Hour))}).Matches(e) {
		t.Error("mtime before rejected an older file")
	}
	if !(Predicates{CTimeAfter: ts(now.Add(-time.Hour)), CTimeBefore: ts(now.Add(time.Hour))}).Matches(e) {
		t.Error("ctime window rejected a file inside it")
	}
}

func TestPredicates_MissingChangeTime(t *testing.T) {
	e := fsmeta.Entry{ModTime: time.Now()} // no ctime reported

	if (Predicates{CTimeAfter: ts(time.Now().Add(-time.Hour))}).Matches(e) {
		t.Error("ctime predicate matched an entry without a change time")
	}
	if !(Predicates{}).Matches(e) {
		t.Error("absent predicates must match entries without timestamps")
	}
}

func TestPredicates_ShortCircuitOrder(t *testing.T) {
	// Size fails first; the type predicate must not rescue the entry.
	e := fsmeta.Entry{Size: 1, Kind: fsmeta.KindFile}
	p := Predicates{MinSize: i64(100), FileType: FileTypeFile}
	if p.Matches(e) {
		t.Error("failing size predicate did not short-circuit")
	}
}
