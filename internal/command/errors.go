package command

import "errors"

// Sentinel errors for the command surface.
var (
	// ErrDuplicateCommand is returned when registering an ID that exists.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrUnknownCommand is returned when executing an unregistered ID.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownSubcommand is returned for an unrecognized subcommand.
	ErrUnknownSubcommand = errors.New("unknown subcommand")

	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing argument")

	// ErrBadPayload is returned when a payload argument is not valid JSON.
	ErrBadPayload = errors.New("payload is not valid JSON")

	// ErrNilHandler is returned when registering a command without a handler.
	ErrNilHandler = errors.New("command handler cannot be nil")
)
