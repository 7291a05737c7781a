package devotion

import (
	"fmt"
	"time"
)

// MysterySet indexes one of the four thematic groups of mysteries.
type MysterySet int

const (
	Joyful    MysterySet = 0
	Luminous  MysterySet = 1
	Sorrowful MysterySet = 2
	Glorious  MysterySet = 3
)

// MysterySets lists every set in index order.
var MysterySets = []MysterySet{Joyful, Luminous, Sorrowful, Glorious}

// mysteryDays maps each set to the weekdays on which it is prayed.
// Together the entries cover the week exactly once.
var mysteryDays = [...][]time.Weekday{
	Joyful:    {time.Monday, time.Saturday},
	Luminous:  {time.Thursday},
	Sorrowful: {time.Tuesday, time.Friday},
	Glorious:  {time.Wednesday, time.Sunday},
}

// SelectMysterySet returns the mystery set prayed on the weekday of t,
// evaluated in t's location.
func SelectMysterySet(t time.Time) MysterySet {
	day := t.Weekday()
	for i, days := range mysteryDays {
		for _, d := range days {
			if d == day {
				return MysterySet(i)
			}
		}
	}
	// Unreachable while mysteryDays partitions the week.
	return Joyful
}

// Days returns the weekdays assigned to the set.
func (m MysterySet) Days() []time.Weekday {
	if m < 0 || int(m) >= len(mysteryDays) {
		return nil
	}
	out := make([]time.Weekday, len(mysteryDays[m]))
	copy(out, mysteryDays[m])
	return out
}

// NameKey is the catalog key of the set's name, e.g. MYSTERIES.NAME_2.
func (m MysterySet) NameKey() string {
	return fmt.Sprintf("MYSTERIES.NAME_%d", int(m))
}

// MysteryKey is the catalog key naming one mystery of the set (offset 0-4).
func (m MysterySet) MysteryKey(offset int) string {
	return fmt.Sprintf("MYSTERIES.NAME_%d_%d", int(m), offset)
}

// DescriptionKey is the catalog key describing one mystery of the set.
func (m MysterySet) DescriptionKey(offset int) string {
	return fmt.Sprintf("MYSTERIES.DESC_%d_%d", int(m), offset)
}

// Picture is the image reference of the set itself.
func (m MysterySet) Picture() string {
	return fmt.Sprintf("%d", int(m))
}

// MysteryPicture is the image reference of one mystery of the set.
func (m MysterySet) MysteryPicture(offset int) string {
	return fmt.Sprintf("%d_%d", int(m), offset)
}

func (m MysterySet) String() string {
	switch m {
	case Joyful:
		return "joyful"
	case Luminous:
		return "luminous"
	case Sorrowful:
		return "sorrowful"
	case Glorious:
		return "glorious"
	default:
		return fmt.Sprintf("MysterySet(%d)", int(m))
	}
}
