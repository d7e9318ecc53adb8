package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{120, TierHot},
		{81, TierHot},
		{80, TierHot},
		{79, TierWarm},
		{60, TierWarm},
		{59, TierCold},
		{40, TierCold},
		{39, TierNotQualified},
		{0, TierNotQualified},
		{-5, TierNotQualified},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain host", "https://acme.com", "acme.com"},
		{"www stripped", "https://www.acme.com/about", "acme.com"},
		{"uppercase host", "https://WWW.ACME.COM", "acme.com"},
		{"subdomain kept", "https://app.acme.io", "app.acme.io"},
		{"empty", "", ""},
		{"no host", "/relative/path", ""},
		{"unparsable", "://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainOf(tt.input))
		})
	}
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "acme.com", EmailDomain("jane@acme.com"))
	assert.Equal(t, "acme.com", EmailDomain("jane@ACME.COM"))
	assert.Equal(t, "", EmailDomain("not-an-email"))
	assert.Equal(t, "", EmailDomain("trailing@"))
	assert.Equal(t, "", EmailDomain(""))
}

func TestCompanyRecordDomain(t *testing.T) {
	c := CompanyRecord{Website: "https://www.acme.com"}
	assert.Equal(t, "acme.com", c.Domain())

	assert.Equal(t, "", CompanyRecord{}.Domain())
}

func TestContactIsPlaceholder(t *testing.T) {
	assert.True(t, Contact{Provenance: ProvenancePlaceholder}.IsPlaceholder())
	assert.False(t, Contact{Provenance: ProvenanceScraped}.IsPlaceholder())
	assert.False(t, Contact{Provenance: ProvenanceSynthesized}.IsPlaceholder())
	assert.False(t, Contact{}.IsPlaceholder())
}

func TestBatchResultScore(t *testing.T) {
	withResult := BatchResult{
		Result: &ResearchResult{Scoring: ScoringResult{TotalScore: 88}},
	}
	assert.Equal(t, 88, withResult.Score())

	errored := BatchResult{Error: "boom"}
	assert.Equal(t, 0, errored.Score())
}
