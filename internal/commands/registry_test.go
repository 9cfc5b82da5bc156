package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.Register(&RmCmd{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Register(&ListCmd{}); err == nil {
		t.Error("expected error registering list twice")
	}
	if cmd, ok := r.Find("ls"); !ok || cmd.Name() != "list" {
		t.Errorf("expected alias ls to find list, got %v", cmd)
	}
}

func TestRegistry_AllSortedUnique(t *testing.T) {
	r := NewRegistry()
	for _, c := range []Command{&RmCmd{}, &AddCmd{}, &ListCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	if got := strings.Join(names, ","); got != "add,list,rm" {
		t.Errorf("expected add,list,rm, got %s", got)
	}
}

func TestWriteHelp_ListsEveryCommand(t *testing.T) {
	var buf bytes.Buffer
	writeHelp(&buf, DefaultRegistry)

	for _, cmd := range DefaultRegistry.All() {
		if !strings.Contains(buf.String(), cmd.Usage()) {
			t.Errorf("expected help to include %q", cmd.Usage())
		}
	}
	if !strings.Contains(buf.String(), "list (ls)") {
		t.Error("expected aliases in help")
	}
}
