package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/plugbus/internal/broker"
	"github.com/dshills/plugbus/internal/plugin/api"
)

// Plugin is a loaded plugin instance.
type Plugin struct {
	// ID uniquely identifies this load of the plugin, for log correlation.
	ID string

	// Manifest is the plugin's parsed manifest.
	Manifest Manifest

	// Dir is the plugin's directory.
	Dir string

	state *lua.LState
	bus   *api.BusModule
}

// Name returns the plugin's participant name.
func (p *Plugin) Name() string {
	return p.Manifest.Name
}

// Host loads plugins and binds them to a broker.
type Host struct {
	mu sync.Mutex

	broker  *broker.Broker
	log     zerolog.Logger
	plugins map[string]*Plugin
}

// NewHost creates a plugin host for the given broker.
func NewHost(b *broker.Broker, log zerolog.Logger) *Host {
	return &Host{
		broker:  b,
		log:     log,
		plugins: make(map[string]*Plugin),
	}
}

// LoadAll scans root for plugin directories (subdirectories containing a
// manifest) and loads each one. A broken plugin is logged and skipped; the
// returned count is the number loaded successfully. The error is non-nil
// only when root itself cannot be read.
func (h *Host) LoadAll(root string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("reading plugin dir %s: %w", root, err)
	}

	loaded := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
			continue
		}

		p, err := h.Load(dir)
		if err != nil {
			h.log.Error().Err(err).Str("dir", dir).Msg("plugin failed to load")
			continue
		}
		h.log.Info().
			Str("plugin", p.Name()).
			Str("version", p.Manifest.Version).
			Str("instance", p.ID).
			Msg("plugin loaded")
		loaded++
	}
	return loaded, nil
}

// Load loads one plugin directory: parse the manifest, register the
// participant, bind the bus module, and run the entry script.
func (h *Host) Load(dir string) (*Plugin, error) {
	m, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	if _, exists := h.plugins[m.Name]; exists {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrPluginExists, m.Name)
	}
	h.mu.Unlock()

	handle := h.broker.Register(m.Name,
		broker.WithVersion(m.Version),
		broker.WithAnswers(m.Answers...),
		broker.WithEmits(m.Emits...),
		broker.WithListens(m.Listens...),
	)

	L := lua.NewState()
	bus := api.NewBusModule(handle, h.log)
	if err := bus.Register(L); err != nil {
		L.Close()
		return nil, err
	}

	if err := L.DoFile(filepath.Join(dir, m.Main)); err != nil {
		bus.Cleanup()
		L.Close()
		return nil, fmt.Errorf("running %s: %w", m.Main, err)
	}

	p := &Plugin{
		ID:       uuid.NewString(),
		Manifest: m,
		Dir:      dir,
		state:    L,
		bus:      bus,
	}

	h.mu.Lock()
	h.plugins[m.Name] = p
	h.mu.Unlock()

	return p, nil
}

// Unload removes a plugin's handlers and closes its Lua state.
func (h *Host) Unload(name string) error {
	h.mu.Lock()
	p, exists := h.plugins[name]
	if exists {
		delete(h.plugins, name)
	}
	h.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}

	p.bus.Cleanup()
	p.state.Close()
	h.log.Info().Str("plugin", name).Msg("plugin unloaded")
	return nil
}

// Plugins returns the loaded plugins sorted by name.
func (h *Host) Plugins() []*Plugin {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Plugin, 0, len(h.plugins))
	for _, p := range h.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Close unloads every plugin.
func (h *Host) Close() {
	for _, p := range h.Plugins() {
		_ = h.Unload(p.Name())
	}
}
