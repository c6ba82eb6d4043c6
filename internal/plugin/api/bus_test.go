package api

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/plugbus/internal/broker"
)

// newLuaParticipant wires a fresh Lua state to b under the given name.
func newLuaParticipant(t *testing.T, b *broker.Broker, name string) (*lua.LState, *BusModule) {
	t.Helper()

	L := lua.NewState()
	t.Cleanup(func() { L.Close() })

	m := NewBusModule(b.Register(name), zerolog.Nop())
	if err := m.Register(L); err != nil {
		t.Fatal(err)
	}
	return L, m
}

func TestBusModule_AnswerFromLua(t *testing.T) {
	b := broker.New()
	L, _ := newLuaParticipant(t, b, "lua.fmt")

	if err := L.DoString(`
		bus.answer("format", function(channel, args)
			return { got = args.x, on = channel }
		end)
	`); err != nil {
		t.Fatal(err)
	}

	asker := b.Register("asker")
	result, ok, err := asker.Request("format", map[string]any{"x": int64(42)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected the Lua handler to answer")
	}
	m := result.(map[string]any)
	if m["got"] != int64(42) || m["on"] != "format" {
		t.Errorf("unexpected result: %#v", m)
	}
}

func TestBusModule_AnswerError_Propagates(t *testing.T) {
	b := broker.New()
	L, _ := newLuaParticipant(t, b, "lua.bad")

	if err := L.DoString(`
		bus.answer("q", function(channel, args)
			error("handler blew up")
		end)
	`); err != nil {
		t.Fatal(err)
	}

	asker := b.Register("asker")
	_, ok, err := asker.Request("q", nil)
	if !ok {
		t.Fatal("expected the handler to be found")
	}
	if err == nil || !strings.Contains(err.Error(), "handler blew up") {
		t.Errorf("expected the Lua error to propagate, got %v", err)
	}
}

func TestBusModule_ListenFromLua(t *testing.T) {
	b := broker.New()
	L, _ := newLuaParticipant(t, b, "lua.ui")

	if err := L.DoString(`
		seen = {}
		bus.listen("buffer.*", function(channel, data, meta)
			seen.channel = channel
			seen.source = meta.source
			seen.line = data.line
		end)
	`); err != nil {
		t.Fatal(err)
	}

	src := b.Register("engine")
	if count := src.Broadcast("buffer.changed", map[string]any{"line": int64(3)}); count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}

	seen := L.GetGlobal("seen").(*lua.LTable)
	if got := lua.LVAsString(seen.RawGetString("channel")); got != "buffer.changed" {
		t.Errorf("channel = %q", got)
	}
	if got := lua.LVAsString(seen.RawGetString("source")); got != "engine" {
		t.Errorf("source = %q", got)
	}
	if got := seen.RawGetString("line"); got != lua.LNumber(3) {
		t.Errorf("line = %v", got)
	}
}

func TestBusModule_ListenError_Isolated(t *testing.T) {
	b := broker.New()
	L, _ := newLuaParticipant(t, b, "lua.bad")

	if err := L.DoString(`
		bus.listen("evt", function(channel, data, meta)
			error("listener broke")
		end)
	`); err != nil {
		t.Fatal(err)
	}

	good := b.Register("good")
	ran := false
	good.Listen("evt", func(channel string, data any, meta broker.Meta) error {
		ran = true
		return nil
	})

	src := b.Register("src")
	if count := src.Broadcast("evt", nil); count != 1 {
		t.Errorf("expected only the healthy handler counted, got %d", count)
	}
	if !ran {
		t.Error("expected the Go handler to run despite the Lua failure")
	}
}

func TestBusModule_RequestAndBroadcastFromLua(t *testing.T) {
	b := broker.New()

	upper := b.Register("upper")
	upper.Answer("upcase", func(channel string, args any) (any, error) {
		return strings.ToUpper(args.(string)), nil
	})

	var heard any
	sink := b.Register("sink")
	sink.Listen("notified", func(channel string, data any, meta broker.Meta) error {
		heard = data
		return nil
	})

	L, _ := newLuaParticipant(t, b, "lua.caller")
	if err := L.DoString(`
		result, found = bus.request("upcase", "hello")
		missing, missing_found = bus.request("nope")
		count = bus.broadcast("notified", result)
	`); err != nil {
		t.Fatal(err)
	}

	if got := lua.LVAsString(L.GetGlobal("result")); got != "HELLO" {
		t.Errorf("result = %q", got)
	}
	if L.GetGlobal("found") != lua.LTrue {
		t.Error("expected found to be true")
	}
	if L.GetGlobal("missing_found") != lua.LFalse {
		t.Error("expected absence to report found=false without raising")
	}
	if L.GetGlobal("count") != lua.LNumber(1) {
		t.Errorf("count = %v", L.GetGlobal("count"))
	}
	if heard != "HELLO" {
		t.Errorf("expected the broadcast payload, got %v", heard)
	}
}

func TestBusModule_RequestPrefer(t *testing.T) {
	b := broker.New()

	h1 := b.Register("handler1")
	h1.Answer("format", func(channel string, args any) (any, error) { return "one", nil })
	h2 := b.Register("handler2")
	h2.Answer("format", func(channel string, args any) (any, error) { return "two", nil })

	L, _ := newLuaParticipant(t, b, "lua.caller")
	if err := L.DoString(`
		first = bus.request("format", nil, {"handler1", "handler2"})
		second = bus.request("format", nil, "handler2")
	`); err != nil {
		t.Fatal(err)
	}

	if got := lua.LVAsString(L.GetGlobal("first")); got != "one" {
		t.Errorf("first = %q", got)
	}
	if got := lua.LVAsString(L.GetGlobal("second")); got != "two" {
		t.Errorf("second = %q", got)
	}
}

func TestBusModule_ClearFromLua(t *testing.T) {
	b := broker.New()
	L, _ := newLuaParticipant(t, b, "lua.ui")

	if err := L.DoString(`
		bus.listen("test.*", function() end)
		bus.clear("test.*")
	`); err != nil {
		t.Fatal(err)
	}

	if got := len(b.BroadcastHandlers("*", "*")); got != 0 {
		t.Errorf("expected listener cleared, got %d keys", got)
	}
}

func TestBusModule_Cleanup(t *testing.T) {
	b := broker.New()
	L, m := newLuaParticipant(t, b, "lua.p")

	if err := L.DoString(`
		bus.answer("q", function() return 1 end)
		bus.listen("evt.*", function() end)
	`); err != nil {
		t.Fatal(err)
	}

	other := b.Register("other")
	other.Listen("evt.*", func(channel string, data any, meta broker.Meta) error { return nil })

	m.Cleanup()

	if got := len(b.RequestHandlers("*", "lua.p")); got != 0 {
		t.Errorf("expected request handlers removed, got %d", got)
	}
	if got := b.BroadcastHandlers("*", "lua.p"); len(got) != 0 {
		t.Errorf("expected broadcast handlers removed, got %v", got)
	}
	// The other participant's overlapping registration survives.
	if got := b.BroadcastHandlers("*", "other"); len(got) != 1 {
		t.Errorf("expected other's handler to survive, got %v", got)
	}
}

func TestBusModule_Name(t *testing.T) {
	b := broker.New()
	L, _ := newLuaParticipant(t, b, "lua.me")

	if err := L.DoString(`n = bus.name()`); err != nil {
		t.Fatal(err)
	}
	if got := lua.LVAsString(L.GetGlobal("n")); got != "lua.me" {
		t.Errorf("name = %q", got)
	}
}
