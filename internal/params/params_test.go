package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize(Parameters{})

	assert.Equal(t, DefaultSections, got.Sections)
	assert.Equal(t, DefaultBulletsPerSection, got.BulletsPerSection)
	assert.Equal(t, DefaultTone, got.Tone)
	assert.Equal(t, DefaultTemperature, got.Temperature)
	assert.Equal(t, DefaultStretchLevel, got.StretchLevel)
	assert.Equal(t, DefaultSections, got.SectionLayout)
	assert.Empty(t, got.CoverLetterInserts)
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(Parameters{
		Sections:          []string{"  Leadership ", "", "Projects"},
		BulletsPerSection: 5,
		Temperature:       0.9,
		MaxOutputTokens:   9000,
		StretchLevel:      7,
	})
	second := Normalize(first)

	assert.Equal(t, first, second)
}

func TestNormalizeClampsStretchLevel(t *testing.T) {
	assert.Equal(t, 3, Normalize(Parameters{StretchLevel: 12}).StretchLevel)
	assert.Equal(t, 0, Normalize(Parameters{StretchLevel: -4}).StretchLevel)
}

func TestNormalizeTokenFloorAndCeiling(t *testing.T) {
	low := Normalize(Parameters{MaxOutputTokens: 200})
	assert.Equal(t, 2500, low.MaxOutputTokens)

	manyBullets := Normalize(Parameters{
		Sections:          []string{"A"},
		BulletsPerSection: 5,
		MaxOutputTokens:   1200,
	})
	assert.Equal(t, 3000, manyBullets.MaxOutputTokens)

	dense := Normalize(Parameters{
		Sections:          []string{"A", "B", "C"},
		BulletsPerSection: 4,
		MaxOutputTokens:   1200,
	})
	assert.Equal(t, 3500, dense.MaxOutputTokens)

	high := Normalize(Parameters{MaxOutputTokens: 20000})
	assert.Equal(t, AbsoluteMaxTokens, high.MaxOutputTokens)
}

func TestNormalizeSectionsOverrideLayout(t *testing.T) {
	got := Normalize(Parameters{
		Sections:      []string{"Projects"},
		SectionLayout: []string{"Leadership", "Skills & Tools"},
	})

	assert.Equal(t, []string{"Projects"}, got.SectionLayout)
}

func TestSplitList(t *testing.T) {
	got := SplitList("Professional Experience, Leadership\nProjects,,  ")

	assert.Equal(t, []string{"Professional Experience", "Leadership", "Projects"}, got)
}

func TestStretchDescriptorClamps(t *testing.T) {
	assert.Equal(t, StretchDescriptors[0], StretchDescriptor(-1))
	assert.Equal(t, StretchDescriptors[3], StretchDescriptor(9))
	assert.Contains(t, StretchDescriptor(2), "Balanced")
}
