// Package featureflags gates gradual rollouts of comment features. The flag
// list ships as a single env string (FEATURE_FLAGS) so a deploy can flip the
// realtime event stream on, off, or onto a percentage of users without a
// rebuild.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager evaluates flags parsed from a comma-separated key=value list, e.g.
// "realtime=on,comment_drafts=25%". Keys and values are case-insensitive.
type Manager struct {
	flags map[string]string
}

// NewManager parses the raw flag list. Malformed entries (no "=", empty key
// or value) are skipped rather than failing startup.
func NewManager(raw string) *Manager {
	flags := make(map[string]string)

	for _, entry := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" || value == "" {
			continue
		}
		flags[name] = value
	}

	return &Manager{flags: flags}
}

// Enabled evaluates a flag for one user. Values "on"/"true"/"1" and
// "off"/"false"/"0" apply to everyone; "N%" enrolls a deterministic N% of
// users, so a given user stays in or out of the rollout across requests.
// Unknown flags and unrecognized values evaluate false.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	// Anonymous requests never join a partial rollout.
	if userID == 0 {
		return false
	}
	return rolloutBucket(name, userID) < pct
}

// Raw returns a copy of the configured flag values as parsed.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for name, value := range m.flags {
		out[name] = value
	}
	return out
}

// Snapshot evaluates every configured flag for one user. Served on
// /api/users/me/flags so clients learn their rollout assignments up front.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// rolloutBucket hashes flag name and user into a stable 0-99 bucket.
func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
