package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuild(t *testing.T) {
	buf, err := Build(
		Sheet{
			Name:   "Payroll",
			Header: []string{"Employee", "Payout"},
			Rows:   [][]any{{"Priya Sharma", "22000"}, {"Rahul Verma", "15500"}},
			Widths: []float64{28, 14},
		},
		Sheet{
			Name:   "Summary",
			Header: []string{"Total"},
			Rows:   [][]any{{"37500"}},
		},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payroll", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Employee", "Payout"},
		{"Priya Sharma", "22000"},
		{"Rahul Verma", "15500"},
	}, rows)

	width, err := f.GetColWidth("Payroll", "A")
	require.NoError(t, err)
	assert.Equal(t, 28.0, width)
}

func TestBuild_NoSheets(t *testing.T) {
	_, err := Build()
	assert.ErrorIs(t, err, ErrNoSheets)
}
