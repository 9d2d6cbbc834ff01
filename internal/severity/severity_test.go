package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected Severity
		known    bool
	}{
		{"critical", Critical, true},
		{"CRITICAL", Critical, true},
		{" High ", High, true},
		{"medium", Medium, true},
		{"low", Low, true},
		{"info", Info, true},
		{"", Info, false},
		{"bogus", Info, false},
		{"blocker", Info, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, known := Parse(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.known, known)
		})
	}
}

func TestRankOrdering(t *testing.T) {
	// ascending canonical order: info < low < medium < high < critical
	for i := 1; i < len(Levels); i++ {
		assert.Greater(t, Levels[i].Rank(), Levels[i-1].Rank(),
			"%s must outrank %s", Levels[i], Levels[i-1])
	}
}

func TestPresentationFallback(t *testing.T) {
	// malformed or future severities render as info, never fail
	assert.Equal(t, Color("info"), Color("not-a-severity"))
	assert.Equal(t, Icon("info"), Icon("not-a-severity"))
	assert.Equal(t, Style("info"), Style("not-a-severity"))

	assert.Equal(t, "red", Color("critical"))
	assert.Equal(t, "🟢", Icon("LOW"))
}
