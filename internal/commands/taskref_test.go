package commands

import (
	"testing"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.ID != "" {
		t.Errorf("expected no ID, got %q", ref.ID)
	}
}

func TestParseTaskRef_BareID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"65f1c0ab"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "65f1c0ab" {
		t.Errorf("expected ID 65f1c0ab, got %q", ref.ID)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
}

func TestParseTaskRef_PrefixedNumericID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"id:123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "123" {
		t.Errorf("expected ID 123, got %q", ref.ID)
	}
	if ref.String() != "id:123" {
		t.Errorf("expected String id:123, got %q", ref.String())
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{})
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_InvalidRef_Error(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"id:"}, "invalid task reference: id:"},
		{[]string{"a", "3"}, "invalid task reference: a 3"},
		{[]string{""}, "invalid task reference: "},
	}
	for _, tt := range tests {
		_, err := ParseTaskRef(tt.args)
		if err == nil {
			t.Errorf("expected error for %q", tt.args)
			continue
		}
		if err.Error() != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, err.Error())
		}
	}
}
