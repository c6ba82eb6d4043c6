package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/plugbus/internal/broker"
)

const busUsage = `usage: bus <subcommand>
  list participants [name-pattern]
  list channels [channel-pattern]
  list handlers|answerers [channel-pattern] [name-pattern]
  list listeners [pattern-filter] [name-pattern]
  inspect <channel>
  send <channel> [json]
  call <channel> [json]`

// BusCommand renders broker introspection as human-readable text and
// offers send/call helpers for poking channels by hand. It consumes only
// the broker's public operations.
type BusCommand struct {
	b      *broker.Broker
	handle *broker.Handle
}

// NewBusCommand builds the bus command, registering itself on the broker
// as the "command" participant so send/call have an owning name.
func NewBusCommand(b *broker.Broker) *BusCommand {
	return &BusCommand{
		b:      b,
		handle: b.Register("command", broker.WithVersion("builtin")),
	}
}

// Command returns the registry entry for this command.
func (c *BusCommand) Command() *Command {
	return &Command{
		ID:          "bus",
		Description: "inspect and poke the message broker",
		Source:      "builtin",
		Handler:     c.run,
	}
}

func (c *BusCommand) run(args []string) (string, error) {
	if len(args) == 0 {
		return busUsage, nil
	}

	switch args[0] {
	case "list":
		return c.list(args[1:])
	case "inspect":
		if len(args) < 2 {
			return "", fmt.Errorf("%w: inspect <channel>", ErrMissingArgument)
		}
		return c.inspect(args[1]), nil
	case "send":
		return c.send(args[1:])
	case "call":
		return c.call(args[1:])
	case "help":
		return busUsage, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownSubcommand, args[0])
	}
}

func (c *BusCommand) list(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: list <participants|channels|handlers|listeners>", ErrMissingArgument)
	}

	// Omitted filters default to the universal wildcard.
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return "*"
	}

	switch args[0] {
	case "participants":
		return c.renderParticipants(arg(1)), nil
	case "channels":
		return c.renderChannels(arg(1)), nil
	case "handlers", "answerers":
		view := c.b.RequestHandlers(arg(1), arg(2))
		return renderHandlerView("CHANNEL", view, sortedKeys(view)), nil
	case "listeners":
		view := c.b.BroadcastHandlers(arg(1), arg(2))
		return renderHandlerView("PATTERN", view, sortedKeys(view)), nil
	default:
		return "", fmt.Errorf("%w: list %s", ErrUnknownSubcommand, args[0])
	}
}

func (c *BusCommand) renderParticipants(namePattern string) string {
	ps := c.b.Participants(namePattern)
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []string{
			p.Name,
			p.Version,
			strings.Join(p.Answers, ","),
			strings.Join(p.Listens, ","),
		})
	}
	return renderTable([]string{"NAME", "VERSION", "ANSWERS", "LISTENS"}, rows)
}

func (c *BusCommand) renderChannels(channelPattern string) string {
	channels := c.b.Channels(channelPattern)
	if len(channels) == 0 {
		return "no channels registered\n"
	}
	return strings.Join(channels, "\n") + "\n"
}

// inspect prints both handler views filtered to one channel.
func (c *BusCommand) inspect(channel string) string {
	var sb strings.Builder

	sb.WriteString("request handlers:\n")
	answerers := c.b.RequestHandlers(channel, "*")
	if len(answerers) == 0 {
		sb.WriteString("  (none)\n")
	} else {
		sb.WriteString(renderHandlerView("CHANNEL", answerers, sortedKeys(answerers)))
	}

	sb.WriteString("broadcast handlers:\n")
	listeners := c.b.BroadcastHandlers(channel, "*")
	if len(listeners) == 0 {
		sb.WriteString("  (none)\n")
	} else {
		sb.WriteString(renderHandlerView("PATTERN", listeners, sortedKeys(listeners)))
	}

	return sb.String()
}

func (c *BusCommand) send(args []string) (string, error) {
	channel, payload, err := payloadArgs(args, "send")
	if err != nil {
		return "", err
	}
	count := c.handle.Broadcast(channel, payload)
	return fmt.Sprintf("delivered to %d handler(s)\n", count), nil
}

func (c *BusCommand) call(args []string) (string, error) {
	channel, payload, err := payloadArgs(args, "call")
	if err != nil {
		return "", err
	}
	result, ok, err := c.handle.Request(channel, payload)
	if err != nil {
		return "", err
	}
	if !ok {
		return "no handler answered\n", nil
	}
	return fmt.Sprintf("%v\n", result), nil
}

// payloadArgs parses "<channel> [json]"; the payload defaults to nil.
func payloadArgs(args []string, verb string) (string, any, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("%w: %s <channel> [json]", ErrMissingArgument, verb)
	}
	channel := args[0]
	if len(args) == 1 {
		return channel, nil, nil
	}

	raw := strings.Join(args[1:], " ")
	if !gjson.Valid(raw) {
		return "", nil, fmt.Errorf("%w: %s", ErrBadPayload, raw)
	}
	return channel, gjson.Parse(raw).Value(), nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
