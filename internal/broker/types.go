package broker

// Meta describes the origin of a broadcast delivery.
type Meta struct {
	// Source is the name of the broadcasting participant.
	Source string

	// Channel is the concrete channel the broadcast was sent on, which may
	// be narrower than the pattern the handler was registered under.
	Channel string
}

// RequestHandler answers requests on an exact channel.
// The args value is the caller's payload, passed through opaque; the broker
// never inspects it. A returned error propagates to the requester unchanged.
type RequestHandler func(channel string, args any) (any, error)

// BroadcastHandler receives broadcasts on a pattern of channels.
// A returned error marks the delivery as failed; it is reported to the
// broker's Notifier and never propagated to the broadcaster or to other
// handlers.
type BroadcastHandler func(channel string, data any, meta Meta) error

// Participant is the stored registration record for a named participant.
// Everything beyond Name is advisory metadata: the declared channel lists
// document intent for introspection and are never enforced by the broker.
type Participant struct {
	// Name uniquely identifies the participant.
	Name string

	// Version is the participant's self-reported version string.
	Version string

	// Answers lists channels the participant intends to answer requests on.
	Answers []string

	// Emits lists channels the participant intends to broadcast on.
	Emits []string

	// Listens lists patterns the participant intends to listen on.
	Listens []string
}

// Notifier receives broadcast delivery failures. Failures carry the owning
// participant's name and the channel; they are reported here instead of
// propagating so one broken listener cannot break the rest.
type Notifier interface {
	HandlerFailed(participant, channel string, err error)
}

// NotifierFunc is a function adapter for Notifier.
type NotifierFunc func(participant, channel string, err error)

// HandlerFailed implements the Notifier interface.
func (f NotifierFunc) HandlerFailed(participant, channel string, err error) {
	f(participant, channel, err)
}

// Stats contains broker dispatch counters.
type Stats struct {
	// RequestsServed is the number of requests that reached a handler.
	RequestsServed uint64

	// RequestsMissed is the number of requests that found no handler.
	RequestsMissed uint64

	// Broadcasts is the total number of broadcast calls.
	Broadcasts uint64

	// HandlersInvoked is the total number of broadcast handler invocations.
	HandlersInvoked uint64

	// HandlerErrors is the number of broadcast handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of broadcast handlers that panicked.
	HandlerPanics uint64
}
