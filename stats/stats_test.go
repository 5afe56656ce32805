package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbarrick/gogp/stats"
)

// Adapted from the teacher's stats_test.go (TestMerge/TestMax/TestMin).

func data() (s stats.Stats) {
	for _, x := range []float64{855, 802, 760, 801, 799} {
		s = s.Insert(x)
	}
	return s
}

func TestMerge(t *testing.T) {
	var a, b stats.Stats
	for i := float64(0); i < 5; i++ {
		a = a.Insert(i)
	}
	for i := float64(5); i < 10; i++ {
		b = b.Insert(i)
	}
	merged := a.Merge(b)
	assert.Equal(t, 4.5, merged.Mean())
	assert.Equal(t, 8.25, merged.Variance())
	assert.Equal(t, 4.5, merged.Median())
}

func TestMaxMin(t *testing.T) {
	s := data()
	assert.Equal(t, 855.0, s.Max())
	assert.Equal(t, 760.0, s.Min())
}

func TestMedianOdd(t *testing.T) {
	var s stats.Stats
	for _, x := range []float64{3, 1, 2} {
		s = s.Insert(x)
	}
	assert.Equal(t, 2.0, s.Median())
}

func TestMedianEven(t *testing.T) {
	var s stats.Stats
	for _, x := range []float64{4, 1, 3, 2} {
		s = s.Insert(x)
	}
	assert.Equal(t, 2.5, s.Median())
}

func TestPeaksSimpleRise(t *testing.T) {
	peaks := stats.Peaks([]float64{1, 2, 3, 2, 1})
	if assert.Len(t, peaks, 1) {
		assert.Equal(t, 2, peaks[0].Start)
		assert.Equal(t, 2, peaks[0].End)
		assert.Equal(t, 3.0, peaks[0].Value)
	}
}

func TestPeaksFlatTop(t *testing.T) {
	peaks := stats.Peaks([]float64{1, 2, 3, 3, 3, 2, 1})
	if assert.Len(t, peaks, 1) {
		assert.Equal(t, 2, peaks[0].Start)
		assert.Equal(t, 4, peaks[0].End)
		assert.Equal(t, 3, peaks[0].Duration)
		assert.Equal(t, 3.0, peaks[0].Value)
	}
}

func TestPeaksTrailingRise(t *testing.T) {
	// A monotone rise that never comes back down still closes via the
	// sentinel, producing a single peak at the final index.
	peaks := stats.Peaks([]float64{1, 2, 3})
	if assert.Len(t, peaks, 1) {
		assert.Equal(t, 2, peaks[0].Start)
		assert.Equal(t, 3.0, peaks[0].Value)
	}
}

func TestPeaksMultiple(t *testing.T) {
	peaks := stats.Peaks([]float64{0, 5, 0, 7, 1, 7, 7, 0})
	assert.Len(t, peaks, 3)
	for _, p := range peaks {
		assert.Contains(t, []float64{5, 7}, p.Value)
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1, stats.Sign(5))
	assert.Equal(t, -1, stats.Sign(-5))
	assert.Equal(t, 0, stats.Sign(0))
}
