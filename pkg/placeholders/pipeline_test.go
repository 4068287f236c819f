package placeholders

import (
	"reflect"
	"testing"
)

func TestSplitStages(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"thing:id", []string{"thing:id"}},
		{"thing:id | fn:upper()", []string{"thing:id", "fn:upper()"}},
		{
			"thing:name | fn:substring-before(':') | fn:default(thing:name)",
			[]string{"thing:name", "fn:substring-before(':')", "fn:default(thing:name)"},
		},
		// separators inside quotes stay put
		{"header:x | fn:default('a|b')", []string{"header:x", "fn:default('a|b')"}},
	}

	for _, tt := range tests {
		if got := splitStages(tt.expr); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitStages(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"'a'", []string{"'a'"}},
		{"'a', 'b'", []string{"'a'", "'b'"}},
		{"header:x, 'eq', 'a,b'", []string{"header:x", "'eq'", "'a,b'"}},
	}

	for _, tt := range tests {
		if got := splitArgs(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitArgs(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseStage(t *testing.T) {
	name, args, err := parseStage("fn:filter(header:x, 'eq', 'y')")
	if err != nil {
		t.Fatalf("parseStage error = %v", err)
	}
	if name != "filter" {
		t.Errorf("name = %q", name)
	}
	if len(args) != 3 {
		t.Errorf("args = %v", args)
	}

	if _, _, err := parseStage("upper()"); err == nil {
		t.Error("parseStage accepted stage without fn: prefix")
	}
	if _, _, err := parseStage("fn:Upper()"); err == nil {
		t.Error("parseStage accepted upper-case function name")
	}
}
