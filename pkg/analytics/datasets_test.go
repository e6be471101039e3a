package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunnelConversionIsDerived(t *testing.T) {
	stages := Funnel()
	require.Len(t, stages, len(funnelCounts))
	assert.Equal(t, 100.0, stages[0].ConversionRate)
	// 31200 / 52000
	assert.Equal(t, 60.0, stages[1].ConversionRate)
	// 7850 / 9100
	assert.Equal(t, 86.26, stages[4].ConversionRate)
	// 7850 / 52000
	assert.Equal(t, 15.1, stages[4].OverallRate)
	for i := 1; i < len(stages); i++ {
		assert.LessOrEqual(t, stages[i].Users, stages[i-1].Users)
	}
}

func TestEverySectionExports(t *testing.T) {
	for _, s := range Sections {
		cols, recs, err := Export(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, cols, s)
		assert.NotEmpty(t, recs, s)
	}
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("funnel")
	require.NoError(t, err)
	assert.Equal(t, SectionFunnel, s)

	_, err = ParseSection("payments")
	assert.True(t, errors.Is(err, ErrUnknownSection))
	_, err = Dataset("payments")
	assert.True(t, errors.Is(err, ErrUnknownSection))
}
