package devotion

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects which devotion a session walks through.
type Kind int

const (
	Rosary      Kind = iota // Holy Rosary, mystery set chosen by weekday
	DivineMercy             // Chaplet of the Divine Mercy
)

// String returns the CLI name of the kind.
func (k Kind) String() string {
	switch k {
	case DivineMercy:
		return "divine-mercy"
	default:
		return "rosary"
	}
}

// TitleKey returns the catalog key naming the devotion.
func (k Kind) TitleKey() string {
	if k == DivineMercy {
		return KeyDivineMercy
	}
	return KeyRosary
}

// IsDM reports whether the kind is the Divine Mercy chaplet.
func (k Kind) IsDM() bool {
	return k == DivineMercy
}

// KindFromDM maps the persisted is_dm flag to a Kind.
func KindFromDM(isDM bool) Kind {
	if isDM {
		return DivineMercy
	}
	return Rosary
}

// ParseKind parses a CLI kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rosary", "r", "":
		return Rosary, nil
	case "divine-mercy", "divinemercy", "dm", "chaplet":
		return DivineMercy, nil
	default:
		return Rosary, fmt.Errorf("unknown devotion %q: must be rosary or divine-mercy", s)
	}
}

// Session is one attempt at a devotion.
type Session struct {
	// ID is assigned by the store; zero before the first save.
	ID int64

	Kind Kind

	// Start is when the session was created. The zero value is treated
	// as the Unix epoch.
	Start time.Time

	// Stop is nil while the session is in progress.
	Stop *time.Time

	// Intention is the optional, already sanitized personal intention.
	Intention string
}

// StartMillis returns the start time in epoch milliseconds, or 0 when unset.
func (s Session) StartMillis() int64 {
	if s.Start.IsZero() {
		return 0
	}
	return s.Start.UnixMilli()
}

// StartOrEpoch returns Start, falling back to the Unix epoch in local time.
func (s Session) StartOrEpoch() time.Time {
	if s.Start.IsZero() {
		return time.UnixMilli(0)
	}
	return s.Start
}

// Finished reports whether the session has a stop time.
func (s Session) Finished() bool {
	return s.Stop != nil
}

// Duration returns the time between start and stop (zero while unfinished).
func (s Session) Duration() time.Duration {
	if s.Stop == nil || s.Start.IsZero() {
		return 0
	}
	d := s.Stop.Sub(s.Start)
	if d < 0 {
		return 0
	}
	return d
}

// TitleKey returns the catalog key used to label the session in history:
// the chaplet name, or the mystery set of the session's start day.
func (s Session) TitleKey() string {
	if s.Kind == DivineMercy {
		return KeyDivineMercy
	}
	return SelectMysterySet(s.StartOrEpoch()).NameKey()
}
