// Package stats implements the utility kernel of spec §4.8: a running
// statistics accumulator (lifted from the teacher's stats.go and extended
// with a running median), a time-series peak detector, and sign.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// Stats is an immutable statistics accumulator over a stream of fitness
// values. Grounded on the teacher's Stats type (stats.go): Insert/Merge use
// Welford's online algorithm so accumulation never needs the raw samples
// except for Median, which keeps a sorted copy.
type Stats struct {
	max, min float64
	mean     float64
	sumsq    float64 // sum of squares of deviation from the mean
	len      float64
	sorted   []float64 // retained only to support Median
}

// Insert folds x into the statistics, returning the updated value.
func (s Stats) Insert(x float64) Stats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}

	delta := x - s.mean
	newlen := s.len + 1

	s.max = math.Max(s.max, x)
	s.min = math.Min(s.min, x)
	s.mean += delta / newlen
	s.sumsq += delta * delta * (s.len / newlen)
	s.len = newlen

	idx := sort.SearchFloat64s(s.sorted, x)
	sorted := make([]float64, len(s.sorted)+1)
	copy(sorted, s.sorted[:idx])
	sorted[idx] = x
	copy(sorted[idx+1:], s.sorted[idx:])
	s.sorted = sorted

	return s
}

// Merge combines two independently-accumulated Stats.
func (s Stats) Merge(t Stats) Stats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}

	delta := t.mean - s.mean
	newlen := t.len + s.len

	s.max = math.Max(s.max, t.max)
	s.min = math.Min(s.min, t.min)
	s.mean += delta * (t.len / newlen)
	s.sumsq += t.sumsq
	s.sumsq += delta * delta * (t.len * s.len / newlen)
	s.len = newlen

	merged := make([]float64, 0, len(s.sorted)+len(t.sorted))
	i, j := 0, 0
	for i < len(s.sorted) && j < len(t.sorted) {
		if s.sorted[i] <= t.sorted[j] {
			merged = append(merged, s.sorted[i])
			i++
		} else {
			merged = append(merged, t.sorted[j])
			j++
		}
	}
	merged = append(merged, s.sorted[i:]...)
	merged = append(merged, t.sorted[j:]...)
	s.sorted = merged

	return s
}

func (s Stats) Max() float64 { return s.max }
func (s Stats) Min() float64 { return s.min }
func (s Stats) Range() float64 { return s.max - s.min }
func (s Stats) Mean() float64  { return s.mean }

// Median returns the middle value (average of the two middle values for an
// even-length stream) of everything inserted so far.
func (s Stats) Median() float64 {
	n := len(s.sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return s.sorted[n/2]
	}
	return (s.sorted[n/2-1] + s.sorted[n/2]) / 2
}

// Variance returns the population variance of fitness.
func (s Stats) Variance() float64 { return s.sumsq / s.len }

// StdDeviation returns the population standard deviation of fitness.
func (s Stats) StdDeviation() float64 { return math.Sqrt(s.sumsq / s.len) }

// Len returns the number of samples inserted.
func (s Stats) Len() int { return int(s.len) }

func (s Stats) String() string {
	return fmt.Sprintf("Max: %f | Min: %f | Median: %f | SD: %f",
		s.Max(), s.Min(), s.Median(), s.StdDeviation())
}

// Sign returns -1, 0, or +1 according to the sign of x.
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
