// Package directory defines the Smart Directory record shapes as the backend
// serves them. Field names on the wire are Spanish and are kept verbatim.
package directory

import (
	"bytes"
	"encoding/json"
	"time"
)

// Record is any document the backend identifies by an opaque string id.
type Record interface {
	RecordID() string
}

// =============================================================================
// PARTNERS (socios)
// =============================================================================

// Partner is a clinic or professional listed in the directory.
type Partner struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"nombre"`
	Phone     string `json:"telefono"`
	Specialty string `json:"especialidad"`
	Location  string `json:"ubicacion"`
	Active    bool   `json:"activo"`
}

// NewPartner returns the blank draft used by the create form.
func NewPartner() Partner {
	return Partner{Active: true}
}

func (p Partner) RecordID() string { return p.ID }

// StatusLabel is the badge shown in the ESTADO column.
func (p Partner) StatusLabel() string {
	if p.Active {
		return "ACTIVO"
	}
	return "INACTIVO"
}

// =============================================================================
// RECOMMENDATIONS (recomendaciones)
// =============================================================================

// RecommendationStatus is the triage state of a referral.
type RecommendationStatus string

const (
	StatusPending  RecommendationStatus = "pendiente"
	StatusAccepted RecommendationStatus = "aceptado"
	StatusRejected RecommendationStatus = "rechazado"
)

// Known reports whether s is one of the three triage states.
func (s RecommendationStatus) Known() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Recommendation links a patient to a partner.
type Recommendation struct {
	ID       string               `json:"_id"`
	Patient  string               `json:"paciente"`
	Partner  string               `json:"socio"`
	Symptoms string               `json:"sintomas"`
	Date     string               `json:"fecha"`
	Status   RecommendationStatus `json:"estado"`
}

func (r Recommendation) RecordID() string { return r.ID }

// =============================================================================
// CONVERSATIONS (conversaciones)
// =============================================================================

// ConversationActive is the only estado value rendered as live.
const ConversationActive = "activo"

// Conversation is a message thread tied to a phone number. The message list
// is opaque; Raw keeps the whole document for the detail view.
type Conversation struct {
	ID        string            `json:"_id"`
	Number    string            `json:"numero"`
	Language  string            `json:"idioma"`
	Status    string            `json:"estado"`
	UpdatedAt string            `json:"updatedAt"`
	Messages  []json.RawMessage `json:"mensajes,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (c Conversation) RecordID() string { return c.ID }

// IsActive reports whether the thread is still open.
func (c Conversation) IsActive() bool { return c.Status == ConversationActive }

// UnmarshalJSON decodes the known fields and retains the original bytes.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	type plain Conversation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Conversation(p)
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Pretty returns the full document indented with two spaces, keys in the
// order the backend sent them.
func (c Conversation) Pretty() string {
	src := c.Raw
	if len(src) == 0 {
		b, err := json.Marshal(c)
		if err != nil {
			return ""
		}
		src = b
	}
	var out bytes.Buffer
	if err := json.Indent(&out, src, "", "  "); err != nil {
		return string(src)
	}
	return out.String()
}

// =============================================================================
// LOGS
// =============================================================================

// Level is a log severity as stored by the backend.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Levels lists the severities in the order the filter bar shows them.
var Levels = []Level{LevelInfo, LevelWarn, LevelError, LevelDebug}

// LogEntry is an operational event written by the backend.
type LogEntry struct {
	ID        string          `json:"_id,omitempty"`
	Level     Level           `json:"nivel"`
	Message   string          `json:"mensaje"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"datos,omitempty"`
}

func (l LogEntry) RecordID() string { return l.ID }

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// Zoneless layouts are read as local wall-clock time.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the timestamp shapes the backend is known to emit and
// returns them in local time.
func ParseTime(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local(), true
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as a day/month/year date, or s itself if unparseable.
func FormatDate(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006")
}

// FormatClock renders s as a wall-clock time, or s itself if unparseable.
func FormatClock(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return s
	}
	return t.Format("15:04:05")
}
