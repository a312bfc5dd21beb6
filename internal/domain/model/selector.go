package model

import "strings"

type MatchReason string

const (
	MatchUniqueID MatchReason = "unique_id"
	MatchName     MatchReason = "name"
)

// Selector picks lights by exact unique ID or by case-insensitive name substring.
type Selector struct {
	UniqueID      string
	NameSubstring string
}

// Matches returns one reason per criterion the light satisfies. A light
// matching both criteria yields two reasons and is acted on twice.
func (s Selector) Matches(l Light) []MatchReason {
	var reasons []MatchReason
	if s.UniqueID != "" && l.UniqueID == s.UniqueID {
		reasons = append(reasons, MatchUniqueID)
	}
	if s.NameSubstring != "" && strings.Contains(strings.ToLower(l.Name), strings.ToLower(s.NameSubstring)) {
		reasons = append(reasons, MatchName)
	}
	return reasons
}
