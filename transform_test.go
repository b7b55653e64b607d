package logsafe

import (
	"reflect"
	"strings"
	"testing"
)

type Tree struct {
	Name string  `json:"name"`
	Kids []*Tree `json:"kids"`
}

type Grid struct {
	Cells [][]*Leaf `json:"cells"`
}

func TestTransform_FieldDirectives(t *testing.T) {
	Reset()
	if err := Register[Secret](); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tests := []struct {
		name  string
		value Secret
		want  string
	}{
		{
			name:  "mask truncate size null",
			value: Secret{PIN: "123456", Bio: "abcdef", Tags: []int{1, 2, 3, 4}},
			want:  "pin=****56, bio=abc...(truncated), tags=4, opt=null",
		},
		{
			name:  "present pointers",
			value: Secret{PIN: "12", Bio: "abc", Tags: []int{}, Note: strPtr("hi"), Opt: strPtr("on")},
			want:  "pin=**, bio=abc, tags=0, note=hi, opt=on",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.value); got != tt.want {
				t.Errorf("Serialize() = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestTransform_DirectiveOrder(t *testing.T) {
	Reset()
	if err := Register[Directives](); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	v := Directives{
		Email:   "alice@example.com",
		Token:   "hello",
		Short:   "abcdefgh",
		Count:   map[string]int{"x": 1, "y": 2},
		Renamed: "r",
		Hidden:  "do not log",
		Labels:  map[string]string{"z": "1", "a": "2"},
		private: "p",
	}

	want := "email=a****@example.com" +
		", token=2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" +
		", short=" + strings.Repeat("*", 16) + "d)" +
		", count=2" +
		", alias=r" +
		", labels={a=2, z=1}"
	if got := Serialize(v); got != want {
		t.Errorf("Serialize() = %v\nwant %q", got, want)
	}
}

func TestTransform_CollectionDepth(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		want     string
	}{
		{"zero", 0, "name=root, kids=[MAX_DEPTH_REACHED]"},
		{"one", 1, "name=root, kids=[{name=k1, kids=[MAX_DEPTH_REACHED]}]"},
		{"two", 2, "name=root, kids=[{name=k1, kids=[{name=k2}]}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			if err := Register[Tree](WithMaxDepth(tt.maxDepth)); err != nil {
				t.Fatalf("Register() error: %v", err)
			}

			root := &Tree{Name: "root", Kids: []*Tree{{Name: "k1", Kids: []*Tree{{Name: "k2"}}}}}
			if got := Serialize(root); got != tt.want {
				t.Errorf("Serialize() = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestTransform_NestedCollectionDepth(t *testing.T) {
	Reset()
	if err := Register[Leaf](); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tests := []struct {
		maxDepth int
		want     string
	}{
		{1, "cells=[[[MAX_DEPTH_REACHED]]]"},
		{2, "cells=[[{a=x, b=0}]]"},
	}

	for _, tt := range tests {
		if err := Register[Grid](WithMaxDepth(tt.maxDepth)); err != nil {
			t.Fatalf("Register() error: %v", err)
		}
		got := Serialize(Grid{Cells: [][]*Leaf{{{A: "x"}}}})
		if got != tt.want {
			t.Errorf("maxDepth %d: Serialize() = %v, want %q", tt.maxDepth, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"abcdef", 3, "abc...(truncated)"},
		{"héllo wörld", 4, "héll...(truncated)"},
		{"abc", 0, "...(truncated)"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestSizeOf(t *testing.T) {
	tags := []string{"a", "b"}
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"slice", []int{1, 2, 3, 4}, 4},
		{"array", [3]string{}, 3},
		{"map", map[string]int{"a": 1}, 1},
		{"string runes", "héllo", 5},
		{"pointer to slice", &tags, 2},
		{"number text", 12345, 5},
		{"nil pointer", (*string)(nil), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sizeOf(reflect.ValueOf(tt.value)); got != tt.want {
				t.Errorf("sizeOf(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestTextOf(t *testing.T) {
	s := "pointed"
	self := map[string]any{}
	self["self"] = self
	loop := make([]any, 1)
	loop[0] = loop
	nested := map[string]any{"list": []any{self}}
	tests := []struct {
		name  string
		value reflect.Value
		want  string
	}{
		{"string", reflect.ValueOf("plain"), "plain"},
		{"string pointer", reflect.ValueOf(&s), "pointed"},
		{"int", reflect.ValueOf(42), "42"},
		{"struct", reflect.ValueOf(Leaf{A: "x", B: 1}), "{x 1}"},
		{"invalid", reflect.Value{}, "null"},
		{"self map", reflect.ValueOf(self), string(MarkerCircular)},
		{"self slice", reflect.ValueOf(loop), string(MarkerCircular)},
		{"nested cycle", reflect.ValueOf(nested), string(MarkerCircular)},
		{"pointer to self map", reflect.ValueOf(&self), string(MarkerCircular)},
		{"bytes", reflect.ValueOf([]byte("hi")), "[104 105]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textOf(tt.value); got != tt.want {
				t.Errorf("textOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
