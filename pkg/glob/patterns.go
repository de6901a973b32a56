package glob

import (
	"errors"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/IvanShishkin/pathhound/internal/brace"
	"github.com/IvanShishkin/pathhound/internal/extglob"
)

type matcherKind uint8

const (
	kindLiteral matcherKind = iota
	kindGlob
	kindRegex
	kindExtglob
)

func (k matcherKind) String() string {
	switch k {
	case kindLiteral:
		return "literal"
	case kindGlob:
		return "glob"
	case kindRegex:
		return "regex"
	case kindExtglob:
		return "extglob"
	}
	return "unknown"
}

// matcher is one compiled expanded pattern. All kinds match against the
// full /-separated path relative to a walk root.
type matcher struct {
	kind          matcherKind
	source        string
	caseSensitive bool

	re *regexp.Regexp
	// vetoes reject candidates matching a negated extglob group.
	vetoes []*regexp.Regexp
}

func (m *matcher) matches(rel string) bool {
	switch m.kind {
	case kindLiteral:
		if m.caseSensitive {
			return rel == m.source
		}
		return strings.EqualFold(rel, m.source)
	case kindGlob:
		candidate := rel
		if !m.caseSensitive {
			candidate = strings.ToLower(rel)
		}
		ok, err := doublestar.Match(m.source, candidate)
		return err == nil && ok
	case kindRegex, kindExtglob:
		if !m.re.MatchString(rel) {
			return false
		}
		for _, veto := range m.vetoes {
			if veto.MatchString(rel) {
				return false
			}
		}
		return true
	}
	return false
}

// Patterns is an immutable ordered collection of compiled matchers,
// shared read-only by all traversal workers.
type Patterns struct {
	matchers      []*matcher
	caseSensitive bool
}

// Len returns the number of compiled matchers.
func (p *Patterns) Len() int {
	return len(p.matchers)
}

// Match reports whether the /-separated relative path matches any
// pattern. Matchers are tried in compilation order.
func (p *Patterns) Match(rel string) bool {
	for _, m := range p.matchers {
		if m.matches(rel) {
			return true
		}
	}
	return false
}

// CompileMany expands, classifies and compiles the input patterns into a
// Patterns collection. Compilation is all-or-nothing: the first failing
// pattern aborts with no partial result. Compiled matchers are served
// from the process-wide matcher cache when possible.
func CompileMany(patterns []string, opts Options) (*Patterns, error) {
	out := &Patterns{caseSensitive: opts.CaseSensitive}

	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}

		if opts.RejectPathTraversal && hasTraversal(pattern) {
			return nil, patternErr(KindPathTraversal, pattern, nil)
		}

		expansions, err := expandBraces(pattern)
		if err != nil {
			return nil, err
		}

		for _, expanded := range expansions {
			m, err := compileOne(expanded, opts.CaseSensitive)
			if err != nil {
				return nil, err
			}
			out.matchers = append(out.matchers, m)
		}
	}

	return out, nil
}

func expandBraces(pattern string) ([]string, error) {
	if !strings.Contains(pattern, "{") {
		return []string{pattern}, nil
	}
	expanded, err := brace.Expand(pattern)
	if err != nil {
		switch {
		case errors.Is(err, brace.ErrDepth):
			return nil, patternErr(KindBraceExpansionDepth, pattern, err)
		case errors.Is(err, brace.ErrCount):
			return nil, patternErr(KindBraceExpansionCount, pattern, err)
		}
		return nil, patternErr(KindInvalidPattern, pattern, err)
	}
	return expanded, nil
}

// hasTraversal reports whether any /-separated segment of the pattern is
// a ".." escape.
func hasTraversal(pattern string) bool {
	for _, seg := range strings.Split(pattern, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// compileOne classifies a single expanded pattern and builds its
// matcher, consulting the matcher cache for the compiled kinds.
func compileOne(pattern string, caseSensitive bool) (*matcher, error) {
	if tail, ok := strings.CutPrefix(pattern, "re:"); ok {
		return cachedCompile(kindRegex, tail, caseSensitive, func() (*matcher, error) {
			re, err := regexp.Compile(tail)
			if err != nil {
				return nil, patternErr(KindRegex, tail, err)
			}
			return &matcher{kind: kindRegex, source: tail, caseSensitive: caseSensitive, re: re}, nil
		})
	}

	if extglob.HasOperators(pattern) {
		return cachedCompile(kindExtglob, pattern, caseSensitive, func() (*matcher, error) {
			return compileExtglob(pattern, caseSensitive)
		})
	}

	if isLiteral(pattern) {
		return &matcher{kind: kindLiteral, source: pattern, caseSensitive: caseSensitive}, nil
	}

	return cachedCompile(kindGlob, pattern, caseSensitive, func() (*matcher, error) {
		return compileGlob(pattern, caseSensitive)
	})
}

func compileExtglob(pattern string, caseSensitive bool) (*matcher, error) {
	res, err := extglob.Translate(pattern, caseSensitive)
	if err != nil {
		if errors.Is(err, extglob.ErrTooComplex) {
			return nil, patternErr(KindRegexTooComplex, pattern, err)
		}
		return nil, patternErr(KindInvalidPattern, pattern, err)
	}
	re, err := compileBounded(res.Source)
	if err != nil {
		return nil, patternErr(KindRegex, pattern, err)
	}
	m := &matcher{kind: kindExtglob, source: pattern, caseSensitive: caseSensitive, re: re}
	for _, comp := range res.Companions {
		veto, err := compileBounded(comp)
		if err != nil {
			return nil, patternErr(KindRegex, pattern, err)
		}
		m.vetoes = append(m.vetoes, veto)
	}
	return m, nil
}

func compileGlob(pattern string, caseSensitive bool) (*matcher, error) {
	source := pattern
	if !caseSensitive {
		source = strings.ToLower(pattern)
	}
	if !doublestar.ValidatePattern(source) {
		return nil, patternErr(KindInvalidPattern, pattern, doublestar.ErrBadPattern)
	}
	return &matcher{kind: kindGlob, source: source, caseSensitive: caseSensitive}, nil
}

// maxRegexSource bounds accepted regex sources; longer ones are rejected
// before compilation to keep matcher state small.
const maxRegexSource = 1000

func compileBounded(source string) (*regexp.Regexp, error) {
	if len(source) > maxRegexSource {
		return nil, errors.New("generated expression too long")
	}
	return regexp.Compile(source)
}

// isLiteral reports that a pattern carries no glob metacharacters and
// can be matched by string comparison.
func isLiteral(pattern string) bool {
	return !strings.ContainsAny(pattern, `*?[\`)
}
