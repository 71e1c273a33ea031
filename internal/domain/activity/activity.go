// Package activity holds the typed view of project activity events.
package activity

import "time"

// Event is one entry in a project's activity feed.
type Event struct {
	Event   string `json:"event"`
	User    string `json:"user,omitempty"`
	Job     string `json:"job,omitempty"`
	Spider  string `json:"spider,omitempty"`
	Comment string `json:"comment,omitempty"`
	TS      int64  `json:"_ts,omitempty"`
}

// Time returns the event timestamp, zero when the feed omitted it.
func (e Event) Time() time.Time {
	if e.TS == 0 {
		return time.Time{}
	}
	return time.UnixMilli(e.TS)
}
