package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bottin/internal/config"
	"bottin/internal/domain"
)

func testSchema() config.SchemaConfig {
	return config.SchemaConfig{
		FirstName:      "Prénom",
		LastName:       "Nom de la famille",
		Email:          "E-mail / Courriel",
		Institution:    "Institution / organisation 1",
		Status:         "Statut actuel",
		MembershipType: "Type d'adhesion",
		Consent:        "Consentement",
		FirstAxis:      "1e Axe d'intérêt",
	}
}

func testRules(schema config.SchemaConfig) config.RedactionConfig {
	return config.RedactionConfig{
		SensitiveColumns: []string{schema.Email, schema.Institution, "ORCID", "CV / LinkedIn"},
		Placeholders: map[string]string{
			schema.Email:       "membre@rsn-placeholder.ca",
			schema.Institution: "Institution non divulguée",
		},
	}
}

func testTable(rows ...[]string) domain.Table {
	s := testSchema()
	return domain.Table{
		Header: []string{
			s.FirstName, s.LastName, s.Email, s.Institution,
			s.MembershipType, s.Consent, s.FirstAxis, "ORCID", "CV / LinkedIn",
		},
		Rows: rows,
	}
}

func newTestRedactor() *Redactor {
	schema := testSchema()
	return New(schema, testRules(schema), nil)
}

func TestConsentedMemberCopiedVerbatim(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"A.", "Dupont", "a.dupont@uni.ca", "Université X", "Membre régulier", "Oui", "Axe 1", "https://orcid.org/0000-1", "https://example.org/cv"},
	)

	out, summary, err := r.Apply(table)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Public)
	require.Equal(t, 0, summary.Pending())
	require.Equal(t, 0, summary.Excluded.Total)

	require.Len(t, out.Rows, 2) // member + stats row
	require.Equal(t, "a.dupont@uni.ca", out.Rows[0][2])
	require.Equal(t, "https://orcid.org/0000-1", out.Rows[0][7])
	require.Equal(t, "https://example.org/cv", out.Rows[0][8])
}

func TestRefusedMemberExcludedAndCounted(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"B.", "Martin", "b@x.ca", "Y", "Membre partenaire", "Non", "", "", ""},
	)

	out, summary, err := r.Apply(table)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Excluded.Total)
	require.Equal(t, 1, summary.Excluded.Partner)
	require.Len(t, out.Rows, 1) // stats row only

	for _, row := range out.Rows {
		require.NotEqual(t, "Martin", row[1], "refused member must not appear in public output")
	}
}

func TestPendingMemberMaskedButListed(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"A.", "Dupont", "a@x.ca", "Université X", "Chercheur", "", "Axe 2", "https://orcid.org/0000-1", ""},
	)

	out, summary, err := r.Apply(table)
	require.NoError(t, err)
	require.Equal(t, 1, summary.PendingWithProfile)
	require.Equal(t, 0, summary.PendingWithoutProfile)

	row := out.Rows[0]
	require.Equal(t, "A.", row[0], "name survives redaction")
	require.Equal(t, "Dupont", row[1])
	require.Equal(t, "membre@rsn-placeholder.ca", row[2], "placeholder where configured")
	require.Equal(t, "Institution non divulguée", row[3])
	require.Equal(t, "Chercheur", row[4], "structural field untouched")
	require.Equal(t, "Axe 2", row[6], "structural field untouched")
	require.Equal(t, "", row[7], "blank where no placeholder configured")
}

func TestUnrecognizedConsentFailsOpenToRedaction(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"C.", "Tremblay", "c@x.ca", "Z", "Membre étudiant", "peut-être", "", "", ""},
	)

	out, summary, err := r.Apply(table)
	require.NoError(t, err)
	require.Equal(t, 0, summary.Excluded.Total, "unrecognized consent must not exclude")
	require.Equal(t, 1, summary.PendingWithoutProfile)
	require.Equal(t, "Tremblay", out.Rows[0][1])
	require.Equal(t, "", out.Rows[0][7])
}

func TestConsentPrefixMatching(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"D.", "Roy", "d@x.ca", "Z", "Membre régulier", "Oui, avec plaisir", "", "", ""},
		[]string{"E.", "Gagnon", "e@x.ca", "Z", "Membre régulier", "non merci", "", "", ""},
	)

	_, summary, err := r.Apply(table)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Public)
	require.Equal(t, 1, summary.Excluded.Total)
	require.Equal(t, 1, summary.Excluded.Regular)
}

func TestMissingRequiredColumnFailsWholeRun(t *testing.T) {
	r := newTestRedactor()

	table := domain.Table{
		Header: []string{"Prénom", "Nom de la famille", "Consentement"},
		Rows:   [][]string{{"A.", "Dupont", "Oui"}},
	}

	_, _, err := r.Apply(table)
	require.Error(t, err)

	var missing *domain.MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "Type d'adhesion", missing.Column)
}

func TestHeaderOnlyInputYieldsZeroedStatsRow(t *testing.T) {
	r := newTestRedactor()

	out, summary, err := r.Apply(testTable())
	require.NoError(t, err)
	require.Equal(t, 0, summary.Excluded.Total)
	require.Len(t, out.Rows, 1)

	stats := out.Rows[0]
	require.Equal(t, domain.StatsRowMarker, stats[0])
	require.Equal(t, "0,0,0,0", stats[2])
	require.Equal(t, domain.StatsRowConsent, stats[5])
}

func TestEmptyNameRowsDropped(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"", "", "padding@x.ca", "", "", "Oui", "", "", ""},
		[]string{"A.", "Dupont", "a@x.ca", "X", "Membre régulier", "Oui", "", "", ""},
	)

	out, summary, err := r.Apply(table)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Public)
	require.Len(t, out.Rows, 2)
}

func TestOutputGroupsPublicThenPendingThenStats(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"P1", "Pending", "p@x.ca", "X", "Membre régulier", "", "", "", ""},
		[]string{"C1", "Consented", "c@x.ca", "X", "Membre régulier", "Oui", "", "", ""},
		[]string{"N1", "Refused", "n@x.ca", "X", "Membre régulier", "Non", "", "", ""},
	)

	out, _, err := r.Apply(table)
	require.NoError(t, err)
	require.Len(t, out.Rows, 3)
	require.Equal(t, "Consented", out.Rows[0][1])
	require.Equal(t, "Pending", out.Rows[1][1])
	require.Equal(t, domain.StatsRowMarker, out.Rows[2][0])
}

func TestApplyIsDeterministic(t *testing.T) {
	r := newTestRedactor()

	build := func() domain.Table {
		return testTable(
			[]string{"A.", "Dupont", "a@x.ca", "X", "Membre régulier", "Oui", "", "", ""},
			[]string{"B.", "Martin", "b@x.ca", "X", "Membre partenaire", "Non", "", "", ""},
			[]string{"C.", "Roy", "c@x.ca", "X", "Membre étudiant", "", "Axe 1", "", ""},
		)
	}

	first, firstSummary, err := r.Apply(build())
	require.NoError(t, err)
	second, secondSummary, err := r.Apply(build())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, firstSummary, secondSummary)
}

func TestRaggedRowsPaddedToHeader(t *testing.T) {
	r := newTestRedactor()

	table := testTable(
		[]string{"A.", "Dupont", "a@x.ca", "X", "Membre régulier", "Oui"},
	)

	out, _, err := r.Apply(table)
	require.NoError(t, err)
	require.Len(t, out.Rows[0], len(table.Header))
}

func TestOverflowCellsNeverReachPublicOutput(t *testing.T) {
	r := newTestRedactor()

	// A cell beyond the header has no column name, so the sensitive-column
	// rules cannot address it; it must be dropped, not passed through.
	table := testTable(
		[]string{"A.", "Dupont", "a@x.ca", "Université X", "Chercheur", "", "", "https://orcid.org/0000-1", "", "carnet de notes privé"},
		[]string{"B.", "Roy", "b@x.ca", "Université X", "Chercheur", "Oui", "", "", "", "colonne fantôme"},
	)

	out, _, err := r.Apply(table)
	require.NoError(t, err)

	for _, row := range out.Rows {
		require.Len(t, row, len(table.Header))
		for _, cell := range row {
			require.NotContains(t, cell, "privé")
			require.NotContains(t, cell, "fantôme")
		}
	}
}
