package broker

import "github.com/rs/zerolog"

// Option configures a Broker.
type Option func(*Broker)

// WithNotifier sets the notifier that receives broadcast handler failures.
func WithNotifier(n Notifier) Option {
	return func(b *Broker) {
		if n != nil {
			b.notifier = n
		}
	}
}

// WithLogger sets the broker's logger. Unless WithNotifier overrides it,
// broadcast handler failures are reported through this logger as well.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Broker) {
		b.log = log
	}
}

// ParticipantOption sets registration metadata.
type ParticipantOption func(*Participant)

// WithVersion sets the participant's version string.
func WithVersion(version string) ParticipantOption {
	return func(p *Participant) {
		p.Version = version
	}
}

// WithAnswers declares channels the participant intends to answer on.
func WithAnswers(channels ...string) ParticipantOption {
	return func(p *Participant) {
		p.Answers = channels
	}
}

// WithEmits declares channels the participant intends to broadcast on.
func WithEmits(channels ...string) ParticipantOption {
	return func(p *Participant) {
		p.Emits = channels
	}
}

// WithListens declares patterns the participant intends to listen on.
func WithListens(patterns ...string) ParticipantOption {
	return func(p *Participant) {
		p.Listens = patterns
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestConfig)

// requestConfig contains per-request settings.
type requestConfig struct {
	prefer []string
}

// WithPrefer sets the ordered preference list of owner-name patterns used
// to pick among multiple handlers for the same channel. The default is the
// single wildcard pattern, which matches every participant.
func WithPrefer(patterns ...string) RequestOption {
	return func(c *requestConfig) {
		if len(patterns) > 0 {
			c.prefer = patterns
		}
	}
}
