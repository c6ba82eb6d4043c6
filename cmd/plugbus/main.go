// Package main is the entry point for the plugbus host: it wires the
// broker, the Lua plugin host, and the command surface into a small
// line-oriented shell.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dshills/plugbus/internal/broker"
	"github.com/dshills/plugbus/internal/command"
	"github.com/dshills/plugbus/internal/config"
	"github.com/dshills/plugbus/internal/logging"
	"github.com/dshills/plugbus/internal/plugin"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "plugbus.toml", "path to config file")
	pluginDir := flag.String("plugins", "", "plugin directory (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("plugbus %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		return 1
	}
	if *pluginDir != "" {
		cfg.Plugins.Dir = *pluginDir
	}

	log := logging.New(cfg.Logging, os.Stderr)

	brokerLog := log
	if !cfg.Broker.LogDispatch {
		brokerLog = log.Level(zerolog.WarnLevel)
	}
	bus := broker.New(broker.WithLogger(brokerLog))
	hostHandle := bus.Register("host", broker.WithVersion(version), broker.WithEmits("config.changed"))

	// Plugins
	host := plugin.NewHost(bus, log)
	defer host.Close()
	if cfg.Plugins.Enabled {
		loaded, err := host.LoadAll(cfg.Plugins.Dir)
		if err != nil {
			log.Warn().Err(err).Msg("plugin scan failed")
		} else {
			log.Info().Int("count", loaded).Msg("plugins loaded")
		}
	}

	// Commands
	commands := command.NewRegistry()
	if err := commands.Register(command.NewBusCommand(bus).Command()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Config live reload: broadcast so interested plugins can react.
	watcher, err := config.NewWatcher(*configPath, func(path string) {
		if _, err := config.Load(path); err != nil {
			log.Warn().Err(err).Msg("config reload failed")
			return
		}
		count := hostHandle.Broadcast("config.changed", map[string]any{"path": path})
		log.Info().Int("notified", count).Msg("config reloaded")
	})
	if err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	} else {
		defer watcher.Close()
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		os.Exit(0)
	}()

	return repl(commands, os.Stdin)
}

// repl reads commands line by line until EOF or quit.
func repl(commands *command.Registry, in *os.File) int {
	fmt.Println("plugbus ready; try 'bus list channels' or 'help'")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return 0
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return 0
		case "help":
			for _, cmd := range commands.All() {
				fmt.Printf("%-12s %s\n", cmd.ID, cmd.Description)
			}
			fmt.Printf("%-12s %s\n", "help", "list commands")
			fmt.Printf("%-12s %s\n", "quit", "exit")
		default:
			out, err := commands.Execute(fields[0], fields[1:])
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Print(out)
		}
	}
}
