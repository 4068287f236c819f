package expression

import (
	"testing"
)

func TestPatternMatchesCurrentForm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", "{{thing:id}}", "thing:id"},
		{"padded", "{{ thing:id }}", "thing:id"},
		{"extra padding", "{{   header:device_id   }}", "header:device_id"},
		{"with pipeline", "{{ thing:name | fn:default('x') }}", "thing:name | fn:default('x')"},
		{"inside text", "prefix {{ topic:full }} suffix", "topic:full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Pattern().FindStringSubmatch(tt.input)
			if m == nil {
				t.Fatalf("no match in %q", tt.input)
			}
			got := m[Pattern().SubexpIndex(GroupCurrent)]
			if got != tt.want {
				t.Errorf("group %s = %q, want %q", GroupCurrent, got, tt.want)
			}
		})
	}
}

func TestPatternMatchesLegacyForm(t *testing.T) {
	m := Pattern().FindStringSubmatch("topic/${thing:id}/data")
	if m == nil {
		t.Fatal("no match")
	}
	if got := m[Pattern().SubexpIndex(GroupLegacy)]; got != "thing:id" {
		t.Errorf("group %s = %q, want %q", GroupLegacy, got, "thing:id")
	}
	if cur := m[Pattern().SubexpIndex(GroupCurrent)]; cur != "" {
		t.Errorf("group %s = %q, want empty", GroupCurrent, cur)
	}
}

func TestPatternNonMatches(t *testing.T) {
	inputs := []string{
		"no placeholder here",
		"{single:brace}",
		"{{}}",
		"{{   }}",
		"${with space}",
		"${}",
	}
	for _, input := range inputs {
		if ContainsPlaceholder(input) {
			t.Errorf("ContainsPlaceholder(%q) = true, want false", input)
		}
	}
}

func TestGroupNamesMatchPattern(t *testing.T) {
	for _, name := range GroupNames() {
		if Pattern().SubexpIndex(name) < 0 {
			t.Errorf("group %q not present in pattern", name)
		}
	}
}
