package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // nothing streamed; the ring is dumped on failure
	LevelPhase               // driver and pass boundaries
	LevelDetail              // per-file events
	LevelDebug               // everything including node events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// widest scope let through by each level; zero lets nothing through
var levelScopes = [...]Scope{LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag or config value to a Level. The empty string
// means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelScopes) && scope <= levelScopes[l]
}
