package expand

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tetherlang/tether/internal/typesystem"
)

// LogEntry is one recorded inference outcome.
type LogEntry struct {
	Session uuid.UUID
	Text    string
}

// TypeLog is the append-only record of inferred-type decisions. It is
// observability only: nothing in the expander reads it back. Safe for
// concurrent use so parallel pipeline stages can share one log.
type TypeLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewTypeLog() *TypeLog {
	return &TypeLog{}
}

func (l *TypeLog) Append(session uuid.UUID, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Session: session, Text: text})
}

// Entries returns a copy of the recorded entries.
func (l *TypeLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// MostSpecific reduces a list of candidate types to the single most
// specific concrete class via a champion scan: each candidate that is a
// strict subclass of the current champion replaces it. Unknown
// candidates are skipped; an empty or all-Unknown list yields Unknown.
// Unrelated candidates keep the earlier champion, so order decides ties
// between siblings.
//
// Every call records its verdict in the type log.
func (e *Expander) MostSpecific(candidates []typesystem.Type) typesystem.Type {
	var champion *typesystem.TClass
	for _, t := range candidates {
		c, ok := typesystem.AsClass(t)
		if !ok {
			continue
		}
		if champion == nil || typesystem.SubclassOf(c, champion) {
			champion = c
		}
	}

	names := make([]string, 0, len(candidates))
	for _, t := range candidates {
		names = append(names, t.String())
	}
	verdict := "Unknown"
	if champion != nil {
		verdict = champion.Name
	}
	e.log.Append(e.session, fmt.Sprintf("mostSpecific(%s) = %s", strings.Join(names, ", "), verdict))

	if champion == nil {
		return typesystem.Unknown
	}
	return champion
}
