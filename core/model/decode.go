package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLanguage selects localized room names and titles when no language
// is configured.
const DefaultLanguage = "en"

var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// DecodeOptions tunes DecodeSessions.
type DecodeOptions struct {
	// Language picks the room name and title out of localized objects.
	Language string
}

// MalformedRecordError reports a session record that cannot be used.
type MalformedRecordError struct {
	Index  int
	Code   string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed response: %s: %s", e.Field, e.Reason)
	}
	if e.Code != "" {
		return fmt.Sprintf("malformed session %q (#%d): %s: %s", e.Code, e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed session #%d: %s: %s", e.Index, e.Field, e.Reason)
}

type envelope struct {
	Results *[]json.RawMessage `json:"results"`
}

type wireSession struct {
	Code     string          `json:"code"`
	ID       Identifier      `json:"id"`
	Title    LocalizedString `json:"title"`
	TrackID  Identifier      `json:"track_id"`
	Duration *int            `json:"duration"`
	Speakers []Speaker       `json:"speakers"`
	Slot     *wireSlot       `json:"slot"`
}

type wireSlot struct {
	Start *string         `json:"start"`
	End   *string         `json:"end"`
	Room  LocalizedString `json:"room"`
}

// ParseTimestamp parses an ISO 8601 timestamp with minute, second or
// offset precision. The wall clock is kept as published.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// DecodeSessions parses a {"results": [...]} document and validates every
// record. The first invalid record aborts decoding with a
// *MalformedRecordError.
func DecodeSessions(data []byte, opts DecodeOptions) ([]Session, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &MalformedRecordError{Index: -1, Field: "document", Reason: err.Error()}
	}
	if env.Results == nil {
		return nil, &MalformedRecordError{Index: -1, Field: "results", Reason: "missing"}
	}
	sessions := make([]Session, 0, len(*env.Results))
	seen := make(map[string]int, len(*env.Results))
	for i, raw := range *env.Results {
		s, err := decodeSession(i, raw, opts)
		if err != nil {
			return nil, err
		}
		if s.Code != "" {
			if prev, dup := seen[s.Code]; dup {
				return nil, &MalformedRecordError{Index: i, Code: s.Code, Field: "code",
					Reason: fmt.Sprintf("duplicate of session #%d", prev)}
			}
			seen[s.Code] = i
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func decodeSession(i int, raw json.RawMessage, opts DecodeOptions) (Session, error) {
	var w wireSession
	if err := json.Unmarshal(raw, &w); err != nil {
		return Session{}, &MalformedRecordError{Index: i, Field: "record", Reason: err.Error()}
	}
	code := w.Code
	if code == "" {
		code = w.ID.String()
	}
	bad := func(field, reason string) error {
		return &MalformedRecordError{Index: i, Code: code, Field: field, Reason: reason}
	}

	if w.Title == nil {
		return Session{}, bad("title", "missing")
	}
	title, _ := w.Title.Prefer(opts.Language)
	s := Session{
		Code:     code,
		Title:    title,
		TrackID:  w.TrackID,
		Speakers: w.Speakers,
	}
	if w.Duration != nil {
		if *w.Duration < 0 {
			return Session{}, bad("duration", fmt.Sprintf("negative value %d", *w.Duration))
		}
		s.Duration = *w.Duration
	}
	if w.Slot == nil {
		return s, nil
	}

	if w.Slot.Start == nil {
		return Session{}, bad("slot.start", "missing")
	}
	if w.Slot.End == nil {
		return Session{}, bad("slot.end", "missing")
	}
	start, err := ParseTimestamp(*w.Slot.Start)
	if err != nil {
		return Session{}, bad("slot.start", err.Error())
	}
	end, err := ParseTimestamp(*w.Slot.End)
	if err != nil {
		return Session{}, bad("slot.end", err.Error())
	}
	if end.Before(start) {
		return Session{}, bad("slot.end", "before slot start")
	}
	if w.Slot.Room == nil {
		return Session{}, bad("slot.room", "missing")
	}
	room, ok := w.Slot.Room.In(opts.Language)
	if !ok {
		return Session{}, bad("slot.room", fmt.Sprintf("no name for language %q", opts.Language))
	}
	s.Slot = &Slot{Start: start, End: end, Room: room, StartRaw: *w.Slot.Start}
	if w.Duration == nil {
		s.Duration = s.Slot.Minutes()
	}
	return s, nil
}
