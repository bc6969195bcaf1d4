package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComboMultiplier(t *testing.T) {
	tests := []struct {
		comboBefore int
		expected    float64
	}{
		{0, 1.0},
		{1, 1.1},
		{5, 1.5},
		{10, 2.0},
		{25, 2.0},
		{-3, 1.0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.expected, ComboMultiplier(tc.comboBefore), 1e-9, "combo %d", tc.comboBefore)
	}
}

func TestScoreFinalPointsProperty(t *testing.T) {
	pt := NewPointTable(testConfig())

	for _, kind := range Kinds {
		for combo := 0; combo <= 30; combo++ {
			res := pt.Score(kind, combo)
			if kind.IsBomb() {
				assert.True(t, res.IsBomb)
				assert.Zero(t, res.FinalPoints, "bomb at combo %d", combo)
				continue
			}
			// floor(base * min(1 + 0.1c, 2)) in exact integer arithmetic
			expected := res.BasePoints * (10 + min(combo, 10)) / 10
			assert.Equal(t, expected, res.FinalPoints, "%s at combo %d", kind, combo)
			assert.False(t, res.IsBomb)
		}
	}
}

func TestScoreExamples(t *testing.T) {
	pt := NewPointTable(testConfig())

	tests := []struct {
		kind        Kind
		comboBefore int
		expected    int
	}{
		{KindWatermelon, 0, 50},
		{KindWatermelon, 1, 55},
		{KindApple, 0, 10},
		{KindBanana, 3, 19},
		{KindGrape, 7, 42},
		{KindOrange, 12, 40},
	}
	for _, tc := range tests {
		res := pt.Score(tc.kind, tc.comboBefore)
		assert.Equal(t, tc.expected, res.FinalPoints, "%s at combo %d", tc.kind, tc.comboBefore)
	}
}

func TestScoreUnknownKind(t *testing.T) {
	pt := NewPointTable(testConfig())
	res := pt.Score(Kind("kiwi"), 3)

	assert.Zero(t, res.BasePoints)
	assert.Zero(t, res.FinalPoints)
	assert.False(t, res.IsBomb)
}

func TestNextCombo(t *testing.T) {
	window := time.Second

	assert.Equal(t, 1, NextCombo(time.Time{}, testEpoch, 0, window), "first catch")
	assert.Equal(t, 3, NextCombo(testEpoch, testEpoch.Add(999*time.Millisecond), 2, window))
	assert.Equal(t, 1, NextCombo(testEpoch, testEpoch.Add(time.Second), 2, window), "window is exclusive")
	assert.Equal(t, 1, NextCombo(testEpoch, testEpoch.Add(100*time.Millisecond), 0, window), "after a bomb")
}

func TestComboLabel(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, ""},
		{1, ""},
		{2, "2x Combo!"},
		{4, "4x Combo!"},
		{5, "5x Combo! On fire!"},
		{10, "10x MEGA COMBO!"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, ComboLabel(tc.count))
	}
}
