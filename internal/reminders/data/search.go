package data

import "github.com/sahilm/fuzzy"

// SearchString is the text a reminder is fuzzy-matched against.
func SearchString(r Reminder) string {
	return r.Time + " " + r.Title + " " + r.Description
}

// Search returns the reminders fuzzy-matching query, best match first. An
// empty query returns the collection unchanged.
func Search(reminders []Reminder, query string) []Reminder {
	if query == "" {
		return reminders
	}
	names := make([]string, len(reminders))
	for i, r := range reminders {
		names[i] = SearchString(r)
	}
	matches := fuzzy.Find(query, names)
	out := make([]Reminder, len(matches))
	for i, match := range matches {
		out[i] = reminders[match.Index]
	}
	return out
}
