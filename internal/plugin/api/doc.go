// Package api exposes the broker to Lua plugins.
//
// Each plugin's Lua state receives a global `bus` table bound to the
// plugin's participant handle:
//
//	bus.answer(channel, fn)            -- publish a request handler
//	bus.listen(pattern, fn)            -- publish a broadcast handler
//	bus.request(channel, args, prefer) -- returns result, found
//	bus.broadcast(channel, data)       -- returns delivery count
//	bus.clear(filter)                  -- remove own handlers
//	bus.name()                         -- the participant name
//
// Handler functions are pinned in a Lua table so the collector cannot
// reclaim them while the broker still references them.
//
// gopher-lua's LState is not goroutine-safe, and broker dispatch is
// synchronous on the caller's goroutine. The host must therefore drive a
// plugin's state, and every broker operation that can reach its handlers,
// from a single goroutine. That also keeps re-entrant dispatch (a handler
// issuing its own request) safe.
package api
