package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	require.Equal(t, 5, s.Len())
	assert.Equal(t, values, s.Values)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"valid", []float64{1, 2, 3, 2, 1}, false},
		{"empty", []float64{}, true},
		{"constant", []float64{5, 5, 5, 5}, true},
		{"nan", []float64{1, math.NaN(), 3}, true},
		{"inf", []float64{1, math.Inf(1), 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.values).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsConstant(t *testing.T) {
	assert.True(t, New([]float64{2, 2, 2}).IsConstant())
	assert.True(t, New([]float64{7}).IsConstant())
	assert.False(t, New([]float64{2, 2, 3}).IsConstant())
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			assert.InDelta(t, tt.expected, s.Mean(), 1e-10)
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 4.571428571428571, s.Variance(), 1e-10)
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, math.Sqrt(4.571428571428571), s.Std(), 1e-10)
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 9.0, s.Max())
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"odd", []float64{1, 3, 5}, 3.0},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{5}, 5.0},
		{"unsorted", []float64{5, 1, 3}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			assert.InDelta(t, tt.expected, s.Median(), 1e-10)
		})
	}
}

func TestSummarize(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	sum := s.Summarize()

	assert.Equal(t, 8, sum.Count)
	assert.InDelta(t, 5.0, sum.Mean, 1e-10)
	assert.InDelta(t, 2.0, sum.Min, 1e-10)
	assert.InDelta(t, 9.0, sum.Max, 1e-10)
	assert.InDelta(t, 4.5, sum.Median, 1e-10)
}

func TestDiff(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	assert.Equal(t, []float64{2, 3, 4, 5}, diff.Values)
}

func TestDiffN(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15, 21})
	diff2 := s.DiffN(2)

	assert.Equal(t, []float64{5, 7, 9, 11}, diff2.Values)
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	sliced := s.Slice(1, 4)

	assert.Equal(t, []float64{2, 3, 4}, sliced.Values)
}

func TestLog(t *testing.T) {
	s := New([]float64{1, math.E, math.E * math.E})
	logged := s.Log()

	expected := []float64{0, 1, 2}
	for i, v := range logged.Values {
		assert.InDelta(t, expected[i], v, 1e-10)
	}
}

func TestMovingAverage(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5, 6, 7})
	ma := s.MovingAverage(3)

	expected := []float64{2, 3, 4, 5, 6}
	require.Len(t, ma.Values, len(expected))
	for i, v := range ma.Values {
		assert.InDelta(t, expected[i], v, 1e-10)
	}
}

func TestNormalize(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	normalized := s.Normalize()

	assert.InDelta(t, 0, normalized.Mean(), 1e-10)
	assert.InDelta(t, 1, normalized.Std(), 1e-10)
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()

	s.Values[0] = 100

	assert.Equal(t, 1.0, copied.Values[0], "copy should be unchanged when original changes")
}
