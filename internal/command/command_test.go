package command

import (
	"errors"
	"testing"
)

func echoCommand(id, source string) *Command {
	return &Command{
		ID:     id,
		Source: source,
		Handler: func(args []string) (string, error) {
			return id, nil
		},
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(echoCommand("bus", "builtin")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Has("bus") {
		t.Error("expected command to be registered")
	}

	if err := r.Register(echoCommand("bus", "builtin")); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("expected ErrDuplicateCommand, got %v", err)
	}
	if err := r.Register(&Command{ID: "nil"}); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	r.Register(echoCommand("bus", "builtin"))

	out, err := r.Execute("bus", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "bus" {
		t.Errorf("expected handler output, got %q", out)
	}

	if _, err := r.Execute("nope", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	r.Register(echoCommand("bus", "builtin"))

	if !r.Unregister("bus") {
		t.Error("expected Unregister to report removal")
	}
	if r.Unregister("bus") {
		t.Error("expected second Unregister to report absence")
	}
}

func TestRegistry_UnregisterBySource(t *testing.T) {
	r := NewRegistry()
	r.Register(echoCommand("a", "plugin.x"))
	r.Register(echoCommand("b", "plugin.x"))
	r.Register(echoCommand("c", "builtin"))

	if got := r.UnregisterBySource("plugin.x"); got != 2 {
		t.Errorf("expected 2 removed, got %d", got)
	}
	if !r.Has("c") {
		t.Error("expected builtin command to survive")
	}
}

func TestRegistry_All_Sorted(t *testing.T) {
	r := NewRegistry()
	r.Register(echoCommand("zeta", "builtin"))
	r.Register(echoCommand("alpha", "builtin"))

	all := r.All()
	if len(all) != 2 || all[0].ID != "alpha" || all[1].ID != "zeta" {
		t.Errorf("expected sorted commands, got %v", all)
	}
}
