package devotion

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PageType distinguishes title pages from prayer pages.
type PageType string

const (
	TypeIntro  PageType = "intro"
	TypePrayer PageType = "prayer"
)

// Subtype sizes an intro page.
type Subtype string

const (
	SubtypeBig   Subtype = "big"
	SubtypeSmall Subtype = "small"
)

// Stanza is one call-and-response unit of a prayer page.
type Stanza struct {
	Title    string `json:"t,omitempty"`
	Call     string `json:"v,omitempty"`
	Response string `json:"r"`
}

// Page is a single screen in a devotion. Text fields hold catalog keys.
type Page struct {
	Type        PageType `json:"type"`
	Subtype     Subtype  `json:"subtype,omitempty"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description,omitempty"`
	Picture     string   `json:"picture,omitempty"`
	Prayer      []Stanza `json:"prayer,omitempty"`
	Timestamp   int64    `json:"timestamp,omitempty"`
	Intention   string   `json:"intention,omitempty"`
	AltNext     string   `json:"altNext,omitempty"`
	Rosary      int      `json:"rosary,omitempty"`
	ExtraSub    string   `json:"extraSub,omitempty"`
}

// IsIntro reports whether the page is a title page.
func (p Page) IsIntro() bool { return p.Type == TypeIntro }

// IsFinish reports whether advancing past the page completes the session.
func (p Page) IsFinish() bool { return p.AltNext == NextFinish }

const keyPrefix = "p_"

// Key returns the key of the n-th page (1-based).
func Key(n int) string {
	return keyPrefix + strconv.Itoa(n)
}

// ParseKey returns the 1-based position encoded in a page key.
func ParseKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Pages is the ordered page sequence of a session, keyed p_1..p_N.
type Pages struct {
	list []Page
}

// Len returns the number of pages.
func (p Pages) Len() int { return len(p.list) }

// At returns the n-th page (1-based).
func (p Pages) At(n int) (Page, bool) {
	if n < 1 || n > len(p.list) {
		return Page{}, false
	}
	return p.list[n-1], true
}

// Get returns the page stored under key.
func (p Pages) Get(key string) (Page, bool) {
	n, ok := ParseKey(key)
	if !ok {
		return Page{}, false
	}
	return p.At(n)
}

// Last returns the final page.
func (p Pages) Last() (Page, bool) {
	return p.At(len(p.list))
}

// Keys returns the page keys in order.
func (p Pages) Keys() []string {
	keys := make([]string, len(p.list))
	for i := range p.list {
		keys[i] = Key(i + 1)
	}
	return keys
}

// All returns a copy of the pages in order.
func (p Pages) All() []Page {
	out := make([]Page, len(p.list))
	copy(out, p.list)
	return out
}

// Map returns the pages keyed by page key.
func (p Pages) Map() map[string]Page {
	m := make(map[string]Page, len(p.list))
	for i, pg := range p.list {
		m[Key(i+1)] = pg
	}
	return m
}

// MarshalJSON encodes the pages as an object whose keys keep page order.
func (p Pages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pg := range p.list {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(Key(i + 1))
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(pg)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
