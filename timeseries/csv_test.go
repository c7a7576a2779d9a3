package timeseries

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,101
2020-01-03,102
2020-01-04,103
2020-01-05,104`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 101, 102, 103, 104}, series.Values)
	assert.Len(t, series.Timestamps, 5)
}

func TestLoadCSVWithFilter(t *testing.T) {
	csvData := `unique_id,ds,y
A,2020-01-01,100
B,2020-01-01,200
A,2020-01-02,101
B,2020-01-02,201
A,2020-01-03,102`

	opts := DefaultCSVOptions()
	opts.IDColumn = "unique_id"
	opts.IDFilter = "A"

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 101, 102}, series.Values)
}

func TestLoadCSVWithNAValues(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,NA
2020-01-03,102
2020-01-04,NaN
2020-01-05,104`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	// NA and NaN rows are dropped when FillMissing is off.
	assert.Equal(t, []float64{100, 102, 104}, series.Values)
}

func TestLoadCSVMultipleColumns(t *testing.T) {
	csvData := `ds,Beer,Cement,Gas
2020-01-01,100,200,50
2020-01-02,110,210,55
2020-01-03,120,220,60`

	opts := DefaultCSVOptions()
	opts.ValueColumn = "Cement"

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{200, 210, 220}, series.Values)
}

func TestLoadCSVQuotedFields(t *testing.T) {
	csvData := `"unique_id","ds","y"
"Australia","2020-01-01","1000000"
"Australia","2020-01-02","1000100"
"Australia","2020-01-03","1000200"`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, series.Len())
}

func TestLoadCSVDateFormats(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
	}{
		{
			"ISO format",
			`ds,y
2020-01-01,100
2020-01-02,101`,
		},
		{
			"Year only",
			`ds,y
2020,100
2021,101`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := LoadCSVFromReader(strings.NewReader(tt.csvData), DefaultCSVOptions())
			require.NoError(t, err)
			assert.Equal(t, 2, series.Len())
		})
	}
}

func TestLoadCSVFillMissing(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,NA
2020-01-03,NA
2020-01-04,106
2020-01-05,108`

	opts := DefaultCSVOptions()
	opts.FillMissing = true

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)

	// Interior gaps are linearly interpolated between the anchors.
	assert.Equal(t, []float64{100, 102, 104, 106, 108}, series.Values)
}

func TestLoadCSVFillMissingEdges(t *testing.T) {
	// Leading and trailing gaps have no anchor and are dropped.
	csvData := `ds,y
2020-01-01,NA
2020-01-02,100
2020-01-03,NA
2020-01-04,104
2020-01-05,NA`

	opts := DefaultCSVOptions()
	opts.FillMissing = true

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 102, 104}, series.Values)
}

func TestDefaultCSVOptions(t *testing.T) {
	opts := DefaultCSVOptions()

	assert.Equal(t, "y", opts.ValueColumn)
	assert.Equal(t, "2006-01-02", opts.DateFormat)
	assert.True(t, opts.HasHeader)
	assert.Equal(t, ',', opts.Delimiter)
}
