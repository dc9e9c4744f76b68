package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Session is a single talk as published by the conference API.
type Session struct {
	Code     string
	Title    string
	TrackID  Identifier
	Duration int // minutes
	Speakers []Speaker
	Slot     *Slot // nil when the session is not scheduled
}

// Speaker is a person presenting a session.
type Speaker struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Slot places a session in time and space.
type Slot struct {
	Start time.Time
	End   time.Time
	Room  string

	// StartRaw is the start timestamp as published. The calendar day of a
	// session is its first ten characters.
	StartRaw string
}

// Scheduled reports whether the session has a slot.
func (s Session) Scheduled() bool { return s.Slot != nil }

// SpeakerNames returns the display names of all speakers in order.
// Speakers without a name are kept as empty strings.
func (s Session) SpeakerNames() []string {
	names := make([]string, 0, len(s.Speakers))
	for _, sp := range s.Speakers {
		names = append(names, sp.Name)
	}
	return names
}

// Day returns the ISO date (YYYY-MM-DD) the slot starts on.
func (s Slot) Day() string {
	if len(s.StartRaw) >= 10 {
		return s.StartRaw[:10]
	}
	return s.Start.Format(time.DateOnly)
}

// Minutes returns the length of the slot in whole minutes.
func (s Slot) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Identifier is an opaque id that the API may publish either as a number
// or as a string. Null decodes to the empty identifier.
type Identifier string

// UnmarshalJSON implements json.Unmarshaler.
func (id *Identifier) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = Identifier(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = Identifier(n.String())
	return nil
}

// String returns the identifier as published.
func (id Identifier) String() string { return string(id) }

// LocalizedString holds a text published per language, e.g. {"en": "Hall A"}.
// A plain JSON string is stored under the empty language key.
type LocalizedString map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (l *LocalizedString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LocalizedString{"": s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// In returns the text for lang. An unlocalized string matches any language.
func (l LocalizedString) In(lang string) (string, bool) {
	if v, ok := l[""]; ok {
		return v, true
	}
	v, ok := l[lang]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Prefer returns the text for lang, falling back to the alphabetically
// first non-empty language.
func (l LocalizedString) Prefer(lang string) (string, bool) {
	if v, ok := l.In(lang); ok {
		return v, true
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(l[k]) != "" {
			return l[k], true
		}
	}
	return "", false
}
