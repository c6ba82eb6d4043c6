package api

import (
	"reflect"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestBridge_ToGo(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	if err := L.DoString(`
		value_bool = true
		value_int = 42
		value_float = 1.5
		value_str = "hello"
		value_arr = {1, 2, 3}
		value_map = {x = 1, y = "two"}
	`); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		global string
		want   any
	}{
		{"value_bool", true},
		{"value_int", int64(42)},
		{"value_float", 1.5},
		{"value_str", "hello"},
		{"value_arr", []any{int64(1), int64(2), int64(3)}},
		{"value_map", map[string]any{"x": int64(1), "y": "two"}},
		{"value_missing", nil},
	}

	for _, tt := range tests {
		got := b.ToGo(L.GetGlobal(tt.global))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ToGo(%s) = %#v, want %#v", tt.global, got, tt.want)
		}
	}
}

func TestBridge_ToGo_Circular(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	if err := L.DoString(`
		t = {name = "loop"}
		t.self = t
	`); err != nil {
		t.Fatal(err)
	}

	got := b.ToGo(L.GetGlobal("t"))
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["name"] != "loop" {
		t.Errorf("expected name preserved, got %v", m["name"])
	}
	if m["self"] != nil {
		t.Errorf("expected circular reference broken, got %v", m["self"])
	}
}

func TestBridge_ToLua_RoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	in := map[string]any{
		"n":    int64(7),
		"f":    2.5,
		"s":    "str",
		"ok":   true,
		"list": []any{"a", "b"},
		"sub":  map[string]any{"k": int64(1)},
	}

	got := b.ToGo(b.ToLua(in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %#v, want %#v", got, in)
	}
}

func TestBridge_ToLua_Nil(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	if b.ToLua(nil) != lua.LNil {
		t.Error("expected nil to convert to LNil")
	}
}
