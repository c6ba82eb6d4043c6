package api

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/plugbus/internal/broker"
)

// prefix keys inside the handler table so a channel and a pattern with the
// same spelling pin distinct functions.
const (
	answerKeyPrefix = "answer\x00"
	listenKeyPrefix = "listen\x00"
)

// BusModule binds a participant handle into a Lua state as the global
// `bus` table.
type BusModule struct {
	handle *broker.Handle
	log    zerolog.Logger

	L          *lua.LState
	bridge     *Bridge
	handlerTbl *lua.LTable
	handlerKey string

	// mu guards the bookkeeping maps only. Lua calls are deliberately not
	// locked: the host drives each state from one goroutine, and locking
	// around dispatch would deadlock re-entrant handlers.
	mu        sync.Mutex
	published map[string]bool // stored keys, for cleanup
}

// NewBusModule creates a bus module bound to the plugin's handle.
func NewBusModule(handle *broker.Handle, log zerolog.Logger) *BusModule {
	return &BusModule{
		handle:     handle,
		log:        log,
		handlerKey: "_plugbus_handlers_" + handle.Name(),
		published:  make(map[string]bool),
	}
}

// Register installs the module into the Lua state.
func (m *BusModule) Register(L *lua.LState) error {
	m.L = L
	m.bridge = NewBridge(L)

	// Handler functions live in a global table so Lua GC keeps them alive
	// for as long as the broker references them.
	m.handlerTbl = L.NewTable()
	L.SetGlobal(m.handlerKey, m.handlerTbl)

	mod := L.NewTable()
	L.SetField(mod, "answer", L.NewFunction(m.answer))
	L.SetField(mod, "listen", L.NewFunction(m.listen))
	L.SetField(mod, "request", L.NewFunction(m.request))
	L.SetField(mod, "broadcast", L.NewFunction(m.broadcast))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "name", L.NewFunction(m.name))

	L.SetGlobal("bus", mod)

	m.log.Debug().Str("participant", m.handle.Name()).Msg("bus module registered")
	return nil
}

// Cleanup removes every handler this module published and releases the
// pinned functions. Called when the plugin is unloaded.
func (m *BusModule) Cleanup() {
	m.mu.Lock()
	published := m.published
	m.published = make(map[string]bool)
	m.mu.Unlock()

	// Clearing with the stored key as filter always matches that key
	// exactly (a pattern matches its own spelling), and only entries owned
	// by this participant are touched.
	for key := range published {
		m.handle.Clear(key)
	}

	if m.L != nil {
		m.L.SetGlobal(m.handlerKey, lua.LNil)
	}
	m.L = nil
	m.handlerTbl = nil
}

// track records a published key for cleanup.
func (m *BusModule) track(key string) {
	m.mu.Lock()
	m.published[key] = true
	m.mu.Unlock()
}

// bus.answer(channel, fn)
func (m *BusModule) answer(L *lua.LState) int {
	channel := L.CheckString(1)
	fn := L.CheckFunction(2)

	// Republishing overwrites the pinned function along with the handler.
	pinKey := answerKeyPrefix + channel
	m.handlerTbl.RawSetString(pinKey, fn)
	m.track(channel)

	m.handle.Answer(channel, func(ch string, args any) (any, error) {
		return m.callAnswer(pinKey, ch, args)
	})
	return 0
}

// callAnswer invokes a pinned Lua request handler. A Lua error propagates
// to the requester, matching the request protocol's failure policy.
func (m *BusModule) callAnswer(pinKey, channel string, args any) (any, error) {
	lfn, ok := m.handlerTbl.RawGetString(pinKey).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("request handler for %s was unloaded", channel)
	}

	err := m.L.CallByParam(lua.P{Fn: lfn, NRet: 1, Protect: true},
		lua.LString(channel), m.bridge.ToLua(args))
	if err != nil {
		return nil, err
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return m.bridge.ToGo(ret), nil
}

// bus.listen(pattern, fn)
func (m *BusModule) listen(L *lua.LState) int {
	pat := L.CheckString(1)
	fn := L.CheckFunction(2)

	pinKey := listenKeyPrefix + pat
	m.handlerTbl.RawSetString(pinKey, fn)
	m.track(pat)

	m.handle.Listen(pat, func(ch string, data any, meta broker.Meta) error {
		return m.callListen(pinKey, ch, data, meta)
	})
	return 0
}

// callListen invokes a pinned Lua broadcast handler. A Lua error is
// returned to the broker, which isolates and reports it.
func (m *BusModule) callListen(pinKey, channel string, data any, meta broker.Meta) error {
	lfn, ok := m.handlerTbl.RawGetString(pinKey).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("broadcast handler for %s was unloaded", channel)
	}

	metaTbl := m.L.NewTable()
	m.L.SetField(metaTbl, "source", lua.LString(meta.Source))
	m.L.SetField(metaTbl, "channel", lua.LString(meta.Channel))

	return m.L.CallByParam(lua.P{Fn: lfn, NRet: 0, Protect: true},
		lua.LString(channel), m.bridge.ToLua(data), metaTbl)
}

// bus.request(channel [, args [, prefer]]) -> result, found
// prefer may be a single name pattern or a list of them. A handler failure
// raises a Lua error, the same way a direct call would fail.
func (m *BusModule) request(L *lua.LState) int {
	channel := L.CheckString(1)
	args := m.bridge.ToGo(L.Get(2))

	var opts []broker.RequestOption
	switch pv := L.Get(3).(type) {
	case lua.LString:
		opts = append(opts, broker.WithPrefer(string(pv)))
	case *lua.LTable:
		var prefer []string
		pv.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				prefer = append(prefer, string(s))
			}
		})
		if len(prefer) > 0 {
			opts = append(opts, broker.WithPrefer(prefer...))
		}
	}

	result, found, err := m.handle.Request(channel, args, opts...)
	if err != nil {
		L.RaiseError("request %s: %v", channel, err)
		return 0
	}
	if !found {
		L.Push(lua.LNil)
		L.Push(lua.LFalse)
		return 2
	}
	L.Push(m.bridge.ToLua(result))
	L.Push(lua.LTrue)
	return 2
}

// bus.broadcast(channel [, data]) -> count
func (m *BusModule) broadcast(L *lua.LState) int {
	channel := L.CheckString(1)
	data := m.bridge.ToGo(L.Get(2))

	count := m.handle.Broadcast(channel, data)
	L.Push(lua.LNumber(count))
	return 1
}

// bus.clear(filter)
func (m *BusModule) clear(L *lua.LState) int {
	m.handle.Clear(L.CheckString(1))
	return 0
}

// bus.name() -> participant name
func (m *BusModule) name(L *lua.LState) int {
	L.Push(lua.LString(m.handle.Name()))
	return 1
}
