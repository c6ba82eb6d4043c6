// Package broker implements the in-process message broker that lets
// independently authored plugins exchange requests and events through named
// channels without holding references to each other.
//
// # Model
//
// A Broker holds three tables: registered participants (name plus advisory
// metadata), request handlers keyed by (literal channel, owner name), and
// broadcast handlers keyed by (glob pattern, owner name). A participant
// registers a name and receives a Handle bound to that name; all publishing
// and dispatching goes through the handle, so a participant can only ever
// remove its own handlers.
//
// # Protocols
//
// Two interaction protocols with deliberately different failure policies:
//
//   - Request (pull): Handle.Request finds a single request handler for an
//     exact channel, guided by an ordered preference list of owner-name
//     patterns, and invokes it on the calling goroutine. A handler failure
//     propagates to the caller unchanged, exactly like a direct call. No
//     matching handler is not an error; it reports absence.
//
//   - Broadcast (push): Handle.Broadcast invokes every handler whose stored
//     pattern matches the channel. Each invocation is isolated: an error or
//     panic is reported through the Notifier and swallowed, the remaining
//     handlers still run, and the call returns the count of handlers that
//     completed cleanly.
//
// Dispatch is synchronous and runs to completion on the caller's goroutine;
// there are no timeouts and no cancellation. The registry itself is guarded
// by a single broker-wide mutex so a multi-threaded host observes the same
// atomicity a single-threaded one gets for free. Handlers are invoked
// outside the lock and may call back into the broker.
//
// # Lifecycle
//
// Brokers are explicit objects, not package state: construct with New, and
// as many independent brokers as needed may coexist (one per test, one per
// embedding). Reset clears all tables atomically for test isolation.
package broker
