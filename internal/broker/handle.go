package broker

import (
	"runtime/debug"

	"github.com/dshills/plugbus/internal/broker/pattern"
)

// Handle is a participant's bound view of the broker. It carries the owning
// name explicitly, so all publish and clear operations are scoped to that
// name and can never touch another participant's handlers.
type Handle struct {
	name   string
	broker *Broker
}

// Name returns the owning participant's name.
func (h *Handle) Name() string {
	return h.name
}

// Broker returns the broker this handle is bound to.
func (h *Handle) Broker() *Broker {
	return h.broker
}

// Answer publishes a request handler for an exact channel. The channel is
// stored and matched literally; wildcards in it carry no meaning at request
// time. Publishing twice for the same channel replaces the prior handler.
// A nil handler is ignored.
func (h *Handle) Answer(channel string, fn RequestHandler) {
	if fn == nil {
		return
	}

	b := h.broker
	b.mu.Lock()
	defer b.mu.Unlock()

	owners := b.answerers[channel]
	if owners == nil {
		owners = make(map[string]RequestHandler)
		b.answerers[channel] = owners
	}
	owners[h.name] = fn
}

// Request calls a single request handler published on the exact channel.
//
// The preference list (see WithPrefer) is tried in order: for each pattern,
// the handlers stored under channel are scanned for an owner whose name
// matches, and the first hit is invoked immediately. When several owners
// match one preference pattern the pick is unspecified; narrow the
// preference to a single name for determinism.
//
// The returned bool reports whether any handler was found; absence is not
// an error. A found handler's failure, error or panic alike, propagates to
// the caller unchanged, the same way a direct call would fail.
func (h *Handle) Request(channel string, args any, opts ...RequestOption) (any, bool, error) {
	cfg := requestConfig{prefer: []string{"*"}}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := h.broker
	fn, ok := b.findAnswerer(channel, cfg.prefer)
	if !ok {
		b.requestsMissed.Add(1)
		return nil, false, nil
	}

	b.requestsServed.Add(1)
	result, err := fn(channel, args)
	return result, true, err
}

// findAnswerer resolves the preference scan atomically and returns the
// chosen handler, which is invoked after the lock is released.
func (b *Broker) findAnswerer(channel string, prefer []string) (RequestHandler, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	owners := b.answerers[channel]
	if len(owners) == 0 {
		return nil, false
	}

	for _, pref := range prefer {
		for owner, fn := range owners {
			if pattern.Match(owner, pref) {
				return fn, true
			}
		}
	}
	return nil, false
}

// Listen publishes a broadcast handler under a glob pattern. Unlike request
// channels, the stored key is matched as a pattern against the channel of
// every broadcast. Publishing twice for the same pattern replaces the prior
// handler. A nil handler is ignored.
func (h *Handle) Listen(pat string, fn BroadcastHandler) {
	if fn == nil {
		return
	}

	b := h.broker
	b.mu.Lock()
	defer b.mu.Unlock()

	owners := b.listeners[pat]
	if owners == nil {
		owners = make(map[string]BroadcastHandler)
		b.listeners[pat] = owners
	}
	owners[h.name] = fn
}

// delivery pairs a matched broadcast handler with its owner for invocation
// outside the registry lock.
type delivery struct {
	owner string
	fn    BroadcastHandler
}

// Broadcast invokes every broadcast handler whose stored pattern matches
// channel, passing the data value and a Meta naming this participant as the
// source. Invocation order across patterns and owners is unspecified.
//
// Each invocation is isolated: a handler error or panic is reported to the
// broker's Notifier and swallowed, and the remaining handlers still run.
// The return value counts handlers that completed without error; absence of
// any matching handler yields zero, not an error.
func (h *Handle) Broadcast(channel string, data any) int {
	b := h.broker
	meta := Meta{Source: h.name, Channel: channel}

	b.mu.RLock()
	var matched []delivery
	for pat, owners := range b.listeners {
		if !pattern.Match(channel, pat) {
			continue
		}
		for owner, fn := range owners {
			matched = append(matched, delivery{owner: owner, fn: fn})
		}
	}
	b.mu.RUnlock()

	b.broadcasts.Add(1)

	succeeded := 0
	for _, d := range matched {
		if err := b.deliver(d, channel, data, meta); err != nil {
			b.notifier.HandlerFailed(d.owner, channel, err)
			continue
		}
		succeeded++
	}
	return succeeded
}

// deliver invokes one broadcast handler, converting a panic into a
// PanicError so no handler can take down the dispatch loop.
func (b *Broker) deliver(d delivery, channel string, data any, meta Meta) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = &PanicError{
				Participant: d.owner,
				Channel:     channel,
				Value:       r,
				Stack:       debug.Stack(),
			}
		}
	}()

	b.handlersInvoked.Add(1)
	if err := d.fn(channel, data, meta); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	return nil
}

// Clear removes this participant's handlers, from both tables, under every
// stored key that matches filter. The stored key keeps its role as the
// pattern and filter is the candidate, so for literal request channels
// this degenerates to exact equality: Clear("test.*") removes a request
// handler on a channel literally named "test.*" and nothing else, while a
// broadcast registration under the pattern "test.*" is removed because the
// pattern matches the filter text. Keys left without handlers are deleted.
// Other participants' entries are never touched.
func (h *Handle) Clear(filter string) {
	b := h.broker
	b.mu.Lock()
	defer b.mu.Unlock()

	clearOwned(b.answerers, h.name, filter)
	clearOwned(b.listeners, h.name, filter)
}

// clearOwned removes owner's entries under keys matching filter, deleting
// keys that end up empty so introspection never sees dangling collections.
func clearOwned[H any](table map[string]map[string]H, owner, filter string) {
	for key, owners := range table {
		if !pattern.Match(filter, key) {
			continue
		}
		if _, ok := owners[owner]; !ok {
			continue
		}
		delete(owners, owner)
		if len(owners) == 0 {
			delete(table, key)
		}
	}
}
