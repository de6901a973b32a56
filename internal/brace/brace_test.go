package brace

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExpand_Alternatives(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"no braces", "plain.txt", []string{"plain.txt"}},
		{"simple", "file.{txt,md}", []string{"file.txt", "file.md"}},
		{"surrounded", "a{b,c}d", []string{"abd", "acd"}},
		{"cartesian order", "a{1,2}b{3,4}", []string{"a1b3", "a1b4", "a2b3", "a2b4"}},
		{"nested", "a{b{1,2},c}d", []string{"ab1d", "ab2d", "acd"}},
		{"empty alternative", "a{,b}", []string{"a", "ab"}},
		{"escaped braces stay literal", `a\{b,c\}d`, []string{`a\{b,c\}d`}},
		{"unbalanced left literal", "a{b,c", []string{"a{b,c"}},
		{"unbalanced right literal", "ab,c}", []string{"ab,c}"}},
		{"single item not a group", "a{b}c", []string{"a{b}c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand_NumericRanges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"ascending", "test{1..3}", []string{"test1", "test2", "test3"}},
		{"descending", "test{3..1}", []string{"test3", "test2", "test1"}},
		{"step", "x{0..10..5}", []string{"x0", "x5", "x10"}},
		{"descending step", "x{10..0..5}", []string{"x10", "x5", "x0"}},
		{"negative step normalized", "x{10..0..-5}", []string{"x10", "x5", "x0"}},
		{"zero padding", "x{08..10}", []string{"x08", "x09", "x10"}},
		{"padding needs equal width", "x{8..10}", []string{"x8", "x9", "x10"}},
		{"negative endpoints", "x{-1..1}", []string{"x-1", "x0", "x1"}},
		{"range inside alternatives", "a{x,{1..2}}b", []string{"axb", "a1b", "a2b"}},
		{"not a range is literal", "a{1..b}c", []string{"a{1..b}c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand_DepthLimit(t *testing.T) {
	// 9 levels of nesting exceeds MaxDepth = 8.
	deep := strings.Repeat("{a,", 9) + "b" + strings.Repeat("}", 9)
	_, err := Expand(deep)
	if !errors.Is(err, ErrDepth) {
		t.Errorf("Expand(deep) error = %v, want ErrDepth", err)
	}

	// 8 levels is still fine.
	ok := strings.Repeat("{a,", 8) + "b" + strings.Repeat("}", 8)
	if _, err := Expand(ok); err != nil {
		t.Errorf("Expand(nested at limit) error = %v", err)
	}
}

func TestExpand_CountLimit(t *testing.T) {
	_, err := Expand("{1..100000}")
	if !errors.Is(err, ErrCount) {
		t.Errorf("Expand(big range) error = %v, want ErrCount", err)
	}

	// Cartesian growth across several groups also trips the cap.
	_, err = Expand("{1..100}{1..100}{1..100}")
	if !errors.Is(err, ErrCount) {
		t.Errorf("Expand(cartesian blowup) error = %v, want ErrCount", err)
	}
}

func TestExpand_OutputHasNoGroups(t *testing.T) {
	outs, err := Expand("a{b,{1..3}}c{d,e}")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(outs) != 8 {
		t.Fatalf("Expand() produced %d items, want 8", len(outs))
	}
	for _, out := range outs {
		if strings.ContainsAny(out, "{}") {
			t.Errorf("expanded output %q still contains braces", out)
		}
	}
}
