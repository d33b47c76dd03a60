package data

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field a collection is ordered by.
type SortKey string

const (
	SortByTime  SortKey = "time"
	SortByTitle SortKey = "title"
)

// ParseSortKey accepts "time" or "title".
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTime:
		return SortByTime, nil
	case SortByTitle:
		return SortByTitle, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want time or title)", s)
}

// ParseLocale returns the collation language for tag, falling back to the
// root locale when tag is empty or malformed.
func ParseLocale(tag string) language.Tag {
	if tag == "" {
		return language.Und
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und
	}
	return t
}

// AppendReminder returns a new slice with r at the end.
func AppendReminder(reminders []Reminder, r Reminder) []Reminder {
	out := make([]Reminder, 0, len(reminders)+1)
	out = append(out, reminders...)
	return append(out, r)
}

// FindReminder returns the reminder with the given ID.
func FindReminder(reminders []Reminder, id string) (Reminder, bool) {
	for _, r := range reminders {
		if r.ID == id {
			return r, true
		}
	}
	return Reminder{}, false
}

// MatchPrefix returns every reminder whose ID equals or starts with prefix.
// Prefixes shorter than four characters only match exact IDs.
func MatchPrefix(reminders []Reminder, prefix string) []Reminder {
	var matches []Reminder
	for _, r := range reminders {
		if r.ID == prefix || (len(prefix) >= 4 && strings.HasPrefix(r.ID, prefix)) {
			matches = append(matches, r)
		}
	}
	return matches
}

// DeleteReminder removes the reminder with the given ID and reports whether
// one was found.
func DeleteReminder(reminders []Reminder, id string) ([]Reminder, bool) {
	out := slices.DeleteFunc(slices.Clone(reminders), func(r Reminder) bool {
		return r.ID == id
	})
	return out, len(out) != len(reminders)
}

// DeleteByTitle removes every reminder titled title and returns how many
// were removed.
func DeleteByTitle(reminders []Reminder, title string) ([]Reminder, int) {
	out := slices.DeleteFunc(slices.Clone(reminders), func(r Reminder) bool {
		return r.Title == title
	})
	return out, len(reminders) - len(out)
}

// SetTime replaces the time of the reminder with the given ID.
func SetTime(reminders []Reminder, id, clock string) ([]Reminder, bool) {
	out := slices.Clone(reminders)
	for i := range out {
		if out[i].ID == id {
			out[i].Time = clock
			return out, true
		}
	}
	return out, false
}

// SortReminders returns a copy ordered ascending by key using locale-aware
// collation. Equal keys keep their relative order.
func SortReminders(reminders []Reminder, key SortKey, tag language.Tag) []Reminder {
	c := collate.New(tag)
	field := func(r Reminder) string {
		if key == SortByTitle {
			return r.Title
		}
		return r.Time
	}
	out := slices.Clone(reminders)
	slices.SortStableFunc(out, func(a, b Reminder) int {
		return c.CompareString(field(a), field(b))
	})
	return out
}
