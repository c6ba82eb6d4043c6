package broker

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Broker is the registry and dispatch engine. It holds all registered
// participants and their published handlers and implements both dispatch
// protocols plus the introspection queries.
//
// All methods are safe for concurrent use. A single mutex guards the whole
// registry; handler invocation happens outside the lock.
type Broker struct {
	mu sync.RWMutex

	id string

	// participants maps name to stored metadata.
	participants map[string]Participant

	// answerers maps literal channel to owner name to handler.
	answerers map[string]map[string]RequestHandler

	// listeners maps glob pattern to owner name to handler.
	listeners map[string]map[string]BroadcastHandler

	notifier Notifier
	log      zerolog.Logger

	// Stats
	requestsServed  atomic.Uint64
	requestsMissed  atomic.Uint64
	broadcasts      atomic.Uint64
	handlersInvoked atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// New creates an empty broker. Independent brokers never share state.
func New(opts ...Option) *Broker {
	b := &Broker{
		id:           uuid.NewString(),
		participants: make(map[string]Participant),
		answerers:    make(map[string]map[string]RequestHandler),
		listeners:    make(map[string]map[string]BroadcastHandler),
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.notifier == nil {
		b.notifier = &logNotifier{log: b.log}
	}
	return b
}

// ID returns the broker instance identifier, used to tell brokers apart in
// logs when several coexist.
func (b *Broker) ID() string {
	return b.id
}

// Register stores metadata under name and returns a handle bound to it.
// Registration always succeeds: a second registration under the same name
// overwrites the stored metadata but leaves previously published handlers
// untouched, since those live independently in the handler tables.
func (b *Broker) Register(name string, opts ...ParticipantOption) *Handle {
	p := Participant{Name: name}
	for _, opt := range opts {
		opt(&p)
	}

	b.mu.Lock()
	b.participants[name] = p
	b.mu.Unlock()

	b.log.Debug().
		Str("broker", b.id).
		Str("participant", name).
		Str("version", p.Version).
		Msg("participant registered")

	return &Handle{name: name, broker: b}
}

// Reset atomically clears all participants and handlers. Intended for test
// isolation; handles bound to this broker remain usable afterwards.
func (b *Broker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.participants = make(map[string]Participant)
	b.answerers = make(map[string]map[string]RequestHandler)
	b.listeners = make(map[string]map[string]BroadcastHandler)
}

// Stats returns current dispatch counters.
func (b *Broker) Stats() Stats {
	return Stats{
		RequestsServed:  b.requestsServed.Load(),
		RequestsMissed:  b.requestsMissed.Load(),
		Broadcasts:      b.broadcasts.Load(),
		HandlersInvoked: b.handlersInvoked.Load(),
		HandlerErrors:   b.handlerErrors.Load(),
		HandlerPanics:   b.handlerPanics.Load(),
	}
}

// logNotifier is the default Notifier, reporting failures to the broker's
// logger.
type logNotifier struct {
	log zerolog.Logger
}

// HandlerFailed implements the Notifier interface.
func (n *logNotifier) HandlerFailed(participant, channel string, err error) {
	n.log.Error().
		Err(err).
		Str("participant", participant).
		Str("channel", channel).
		Msg("broadcast handler failed")
}
