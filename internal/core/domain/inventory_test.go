package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseIdentifier_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"too short", "AF001"},
		{"seven chars", "AF00123"},
		{"nine chars", "AF0012345"},
		{"non-digit trailing char", "af00123X"},
		{"digit in prefix", "A1001234"},
		{"letter in digits", "AFA01234"},
		{"space", "AF 01234"},
		{"non-ascii prefix", "ÅF01234"},
		{"one char", "A"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIdentifier(tc.raw)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat for %q, got: %v", tc.raw, err)
			}

			var formatErr *InvalidFormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("expected *InvalidFormatError, got %T", err)
			}
			if formatErr.Raw != tc.raw {
				t.Errorf("expected raw %q, got %q", tc.raw, formatErr.Raw)
			}
		})
	}
}

func TestParseIdentifier_Valid(t *testing.T) {
	for _, raw := range []string{"AF001234", "af001234", "Zz999999", "AA000001"} {
		id, err := ParseIdentifier(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if id.String() != raw {
			t.Errorf("expected %q, got %q", raw, id.String())
		}
		if id.Prefix() != raw[:2] {
			t.Errorf("expected prefix %q, got %q", raw[:2], id.Prefix())
		}
	}
}

func TestParseIdentifier_Prefix(t *testing.T) {
	id, err := ParseIdentifier("AF001234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Prefix() != "AF" {
		t.Errorf("expected prefix AF, got %s", id.Prefix())
	}
}

func TestInvalidFormatError_Message(t *testing.T) {
	_, err := ParseIdentifier("bad")
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("expected raw value in message, got: %s", err.Error())
	}
}

func TestNewInventory(t *testing.T) {
	inv, err := NewInventory("AB123456", "widget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ID.String() != "AB123456" || inv.Name != "widget" {
		t.Errorf("unexpected inventory: %+v", inv)
	}

	_, err = NewInventory("AB12345", "widget")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got: %v", err)
	}
}

func TestIdentifier_IsZero(t *testing.T) {
	var id Identifier
	if !id.IsZero() {
		t.Error("expected zero identifier")
	}
	if id.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", id.Prefix())
	}

	id, _ = ParseIdentifier("AB123456")
	if id.IsZero() {
		t.Error("expected non-zero identifier")
	}
}

func TestLookupIdentifier(t *testing.T) {
	id, ok := LookupIdentifier("AF001234")
	if !ok || id.String() != "AF001234" {
		t.Errorf("expected AF001234, got %q ok=%v", id, ok)
	}

	for _, raw := range []string{"", "AF001", "af00123X"} {
		if id, ok := LookupIdentifier(raw); ok || !id.IsZero() {
			t.Errorf("expected no identifier for %q", raw)
		}
	}

	allocs := testing.AllocsPerRun(100, func() {
		LookupIdentifier("af00123X")
	})
	if allocs != 0 {
		t.Errorf("expected malformed lookup not to allocate, got %v allocs", allocs)
	}
}

func TestIsValidPrefix(t *testing.T) {
	for _, p := range []string{"AF", "zz", "Qa"} {
		if !IsValidPrefix(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range []string{"", "A", "A1", "ABC", "1A"} {
		if IsValidPrefix(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
