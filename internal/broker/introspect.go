package broker

import (
	"sort"

	"github.com/dshills/plugbus/internal/broker/pattern"
)

// orWildcard substitutes the universal pattern for an omitted filter.
func orWildcard(filter string) string {
	if filter == "" {
		return "*"
	}
	return filter
}

// Participants returns the registered participants whose name matches
// namePattern, sorted by name. The empty string is treated as "*".
func (b *Broker) Participants(namePattern string) []Participant {
	namePattern = orWildcard(namePattern)

	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Participant
	for name, p := range b.participants {
		if pattern.Match(name, namePattern) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RequestHandlers returns a mapping from each stored request channel
// matching channelPattern to the sorted owner names matching namePattern.
// Channels whose owners are all filtered out are omitted.
func (b *Broker) RequestHandlers(channelPattern, namePattern string) map[string][]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return collectOwners(b.answerers, channelPattern, namePattern)
}

// BroadcastHandlers returns a mapping from each stored broadcast pattern
// matching patternFilter to the sorted owner names matching namePattern.
// Note the filter is applied to the stored pattern string itself, not to
// channels the pattern would match.
func (b *Broker) BroadcastHandlers(patternFilter, namePattern string) map[string][]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return collectOwners(b.listeners, patternFilter, namePattern)
}

// Channels returns the deduplicated, sorted union of every literal request
// channel and every broadcast pattern matching channelPattern, for a
// unified view of what is registered.
func (b *Broker) Channels(channelPattern string) []string {
	channelPattern = orWildcard(channelPattern)

	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[string]struct{})
	for channel := range b.answerers {
		if pattern.Match(channel, channelPattern) {
			seen[channel] = struct{}{}
		}
	}
	for pat := range b.listeners {
		if pattern.Match(pat, channelPattern) {
			seen[pat] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// collectOwners filters a handler table by key and owner patterns.
func collectOwners[H any](table map[string]map[string]H, keyPattern, namePattern string) map[string][]string {
	keyPattern = orWildcard(keyPattern)
	namePattern = orWildcard(namePattern)

	out := make(map[string][]string)
	for key, owners := range table {
		if !pattern.Match(key, keyPattern) {
			continue
		}
		var names []string
		for owner := range owners {
			if pattern.Match(owner, namePattern) {
				names = append(names, owner)
			}
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		out[key] = names
	}
	return out
}
