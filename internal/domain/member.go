package domain

import "strings"

// Consent is the per-member flag governing what the public export may show.
type Consent string

const (
	// ConsentGranted publishes every field verbatim.
	ConsentGranted Consent = "granted"
	// ConsentRefused excludes the member from the public export entirely.
	ConsentRefused Consent = "refused"
	// ConsentPending keeps the member listed by name with personal fields masked.
	ConsentPending Consent = "pending"
)

// ParseConsent maps a raw cell value to a consent state. Matching is by
// case-insensitive prefix so variants like "Oui, bien sûr" still count.
// Anything unrecognized (including empty) is pending: the policy fails open
// toward redaction, never toward exclusion.
func ParseConsent(raw string) Consent {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(value, "oui"):
		return ConsentGranted
	case strings.HasPrefix(value, "non"):
		return ConsentRefused
	default:
		return ConsentPending
	}
}

// Membership type buckets used when aggregating excluded members.
const (
	TypeRegular = "regulier"
	TypeStudent = "etudiant"
	TypePartner = "partenaire"
)

// ExcludedStats counts members who refused a public profile. They never get
// a row of their own, but the totals still feed the directory's badges.
type ExcludedStats struct {
	Total   int
	Regular int
	Student int
	Partner int
}

// Add registers one excluded member under its membership-type bucket.
func (s *ExcludedStats) Add(membershipType string) {
	s.Total++
	lowered := strings.ToLower(membershipType)
	switch {
	case strings.Contains(lowered, "régulier") || strings.Contains(lowered, TypeRegular):
		s.Regular++
	case strings.Contains(lowered, "étudiant") || strings.Contains(lowered, TypeStudent):
		s.Student++
	case strings.Contains(lowered, TypePartner):
		s.Partner++
	}
}

// StatsRowMarker identifies the aggregate row appended to the public table.
// The presentation layer recognizes it by this value in the first-name column
// and renders the counts instead of a member card.
const StatsRowMarker = "__STATS_EXCLUDED__"

// StatsRowConsent is the consent-column value of the aggregate row.
const StatsRowConsent = "stats"
