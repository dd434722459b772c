package shadow

import (
	"fmt"
	"strings"
)

// EventEntry is one recorded world event.
type EventEntry struct {
	Seq      int
	Category string  // rebuild, toggle, query
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[#003] rebuild  edges            gen=2 region=(0,0 40x30)
func (e EventEntry) String() string {
	return fmt.Sprintf("[#%03d] %-8s %-16s %s", e.Seq, e.Category, e.Key, e.Value)
}

// EventLog collects structured events from a World. It is unbounded and
// machine-readable; hosts print or filter it.
type EventLog struct {
	entries []EventEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-query entries
// are recorded as well as rebuilds and edits.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (l *EventLog) Add(category, key, value string, numVal float64) {
	l.entries = append(l.entries, EventEntry{
		Seq:      len(l.entries),
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (l *EventLog) AddVerbose(category, key, value string, numVal float64) {
	if !l.verbose {
		return
	}
	l.Add(category, key, value, numVal)
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []EventEntry {
	return l.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Format returns all entries as newline-separated log lines.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
