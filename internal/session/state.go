package session

import (
	"errors"
	"time"
)

// Phase is the lifecycle phase of the current devotion session.
type Phase int

const (
	PhaseIdle      Phase = iota // No session; start screen
	PhaseIntending              // Intention dialog open, nothing persisted yet
	PhaseActive                 // Walking the pages of a saved session
	PhaseFinished               // Last session completed with a stop time
	PhaseAbandoned              // Unfinished session discarded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseIntending:
		return "intending"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Idle reports whether a new session may be started without abandoning one.
func (p Phase) Idle() bool {
	return p == PhaseIdle || p == PhaseFinished || p == PhaseAbandoned
}

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrNotIntending    = errors.New("no intention pending")
	ErrAlreadyResolved = errors.New("confirmation already resolved")
	ErrLastPage        = errors.New("already on the last page")
	ErrFirstPage       = errors.New("already on the first page")
)

// Clock abstracts time to keep the lifecycle deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Setting keys persisted in the settings store.
const (
	SettingSessionID = "session_id"
	SettingIndex     = "index"
	SettingDM        = "dm"
	SettingWelcome   = "welcome"
	SettingLocale    = "locale"
)

const (
	dmYes = "YES"
	dmNo  = "NO"
)
