package placeholders

import "testing"

func TestElementConstructors(t *testing.T) {
	if got := Resolved("x").Type(); got != ElementResolved {
		t.Errorf("Resolved type = %v", got)
	}
	if got := Unresolved().Type(); got != ElementUnresolved {
		t.Errorf("Unresolved type = %v", got)
	}
	if got := Deleted().Type(); got != ElementDeleted {
		t.Errorf("Deleted type = %v", got)
	}

	value, ok := Resolved("x").Value()
	if !ok || value != "x" {
		t.Errorf("Resolved value = %q, %v", value, ok)
	}
	if _, ok := Unresolved().Value(); ok {
		t.Error("Unresolved carries a value")
	}
	if _, ok := Deleted().Value(); ok {
		t.Error("Deleted carries a value")
	}
}

func TestMapActsOnlyOnResolved(t *testing.T) {
	appendY := func(s string) string { return s + "y" }

	got := Resolved("x").Map(appendY)
	if value, _ := got.Value(); value != "xy" {
		t.Errorf("Resolved map = %q, want %q", value, "xy")
	}

	// f must never be invoked for the other variants
	invoked := false
	spy := func(s string) string { invoked = true; return s }

	if got := Unresolved().Map(spy); got != Unresolved() {
		t.Errorf("Unresolved map = %v", got)
	}
	if got := Deleted().Map(spy); got != Deleted() {
		t.Errorf("Deleted map = %v", got)
	}
	if invoked {
		t.Error("map invoked f on a non-resolved element")
	}
}

func TestElementString(t *testing.T) {
	tests := []struct {
		element PipelineElement
		want    string
	}{
		{Resolved("abc"), "resolved(abc)"},
		{Unresolved(), "unresolved"},
		{Deleted(), "deleted"},
	}
	for _, tt := range tests {
		if got := tt.element.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
