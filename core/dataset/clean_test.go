package dataset_test

import (
	"errors"
	"strings"
	"testing"

	"traffic-classifier/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, input string) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	return table
}

func TestClean(t *testing.T) {
	t.Run("AllValid", func(t *testing.T) {
		table := mustRead(t, " Flow Duration, Fwd Packets\n100,2\n200,3\n300,4\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2}, cleaned.Index)
		assert.Equal(t, []string{"Flow Duration", "Fwd Packets"}, cleaned.Columns)
		assert.Empty(t, cleaned.DroppedColumns)
		assert.Equal(t, 0, cleaned.DroppedRows)
		assert.Equal(t, 3, cleaned.Frame.Nrow())
	})

	t.Run("DropsInfinities", func(t *testing.T) {
		table := mustRead(t, "rate,count\n1.5,1\ninf,2\n3.5,3\n-inf,4\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 2}, cleaned.Index)
		assert.Equal(t, 2, cleaned.DroppedRows)
	})

	t.Run("DropsMissing", func(t *testing.T) {
		table := mustRead(t, "rate,count\n1.5,1\n,2\n3.5,NaN\n4.5,4\n5.5,NA\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 3}, cleaned.Index)
	})

	t.Run("MissingInTextColumnDropsRow", func(t *testing.T) {
		table := mustRead(t, "count,Src IP\n1,10.0.0.1\n2,\n3,10.0.0.3\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 2}, cleaned.Index)
		assert.Equal(t, []string{"count"}, cleaned.Columns)
		assert.Equal(t, []string{"Src IP"}, cleaned.DroppedColumns)
	})

	t.Run("DropsTextColumns", func(t *testing.T) {
		table := mustRead(t, "count, Timestamp,rate\n1,2017-07-07 03:30,0.5\n2,2017-07-07 03:31,1.5\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{"count", "rate"}, cleaned.Columns)
		assert.Equal(t, []string{"Timestamp"}, cleaned.DroppedColumns)
		assert.Equal(t, 2, cleaned.Frame.Ncol())
	})

	t.Run("MixedColumnIsText", func(t *testing.T) {
		table := mustRead(t, "a,b\n1,2\nx,3\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{"b"}, cleaned.Columns)
		assert.Equal(t, []string{"a"}, cleaned.DroppedColumns)
		assert.Equal(t, []int{0, 1}, cleaned.Index)
	})

	t.Run("BooleanColumnIsNumeric", func(t *testing.T) {
		table := mustRead(t, "a,b,c\n1,True,false\n2,False,TRUE\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, cleaned.Columns)
		assert.Empty(t, cleaned.DroppedColumns)

		m, err := cleaned.Matrix([]string{"b", "c"})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0}, m.RawRowView(0))
		assert.Equal(t, []float64{0, 1}, m.RawRowView(1))
	})

	t.Run("BooleanWithMissingIsText", func(t *testing.T) {
		table := mustRead(t, "a,b\n1,true\n2,\n3,false\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{"a"}, cleaned.Columns)
		assert.Equal(t, []string{"b"}, cleaned.DroppedColumns)
		assert.Equal(t, []int{0, 2}, cleaned.Index)
	})

	t.Run("OverflowIsInfinite", func(t *testing.T) {
		table := mustRead(t, "a,b\n1,1e400\n2,3\n4,-1e999\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []int{1}, cleaned.Index)
		assert.Equal(t, []string{"a", "b"}, cleaned.Columns)
		assert.Empty(t, cleaned.DroppedColumns)
	})

	t.Run("IntWithMissingIsNumeric", func(t *testing.T) {
		table := mustRead(t, "a,b\n1,\n2,NA\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, cleaned.Columns)
		assert.Empty(t, cleaned.Index)
	})

	t.Run("PaddedTokenIsText", func(t *testing.T) {
		// Only numbers ignore surrounding whitespace.
		table := mustRead(t, "a,b\n 1 , NA\n2 ,x\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1}, cleaned.Index)
		assert.Equal(t, []string{"a"}, cleaned.Columns)
		assert.Equal(t, []string{"b"}, cleaned.DroppedColumns)
	})

	t.Run("DuplicateTrimmedNames", func(t *testing.T) {
		table := mustRead(t, "a, a,b\n1,5,x\n3,6,y\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "a"}, cleaned.Columns)
		assert.Equal(t, []string{"b"}, cleaned.DroppedColumns)

		// The first column with the name wins.
		m, err := cleaned.Matrix([]string{"a"})
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, m.RawRowView(0))
	})

	t.Run("AllRowsDropped", func(t *testing.T) {
		table := mustRead(t, "a,b\n1,inf\n,2\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Empty(t, cleaned.Index)
		assert.Equal(t, 2, cleaned.DroppedRows)
	})

	t.Run("NoRows", func(t *testing.T) {
		table := mustRead(t, " a , b\n")

		cleaned, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Empty(t, cleaned.Index)
		assert.Equal(t, []string{"a", "b"}, cleaned.Columns)
	})

	t.Run("LeavesTableUntouched", func(t *testing.T) {
		table := mustRead(t, " a,b\n1,inf\n2, 3\n")

		_, err := dataset.Clean(table)
		require.NoError(t, err)

		assert.Equal(t, []string{" a", "b"}, table.Header)
		assert.Equal(t, [][]string{{"1", "inf"}, {"2", " 3"}}, table.Rows)
	})
}

func TestCleaned_Matrix(t *testing.T) {
	table := mustRead(t, "Flow Duration,Protocol,Label,rate\n100,6,x,0.5\n200,17,y,inf\n300,6,z,2.5\n")

	cleaned, err := dataset.Clean(table)
	require.NoError(t, err)

	t.Run("FeatureOrder", func(t *testing.T) {
		m, err := cleaned.Matrix([]string{"rate", "Flow Duration"})
		require.NoError(t, err)

		rows, cols := m.Dims()
		assert.Equal(t, 2, rows)
		assert.Equal(t, 2, cols)
		assert.Equal(t, []float64{0.5, 100}, m.RawRowView(0))
		assert.Equal(t, []float64{2.5, 300}, m.RawRowView(1))
	})

	t.Run("MissingColumn", func(t *testing.T) {
		_, err := cleaned.Matrix([]string{"Flow Duration", "Bwd Packets"})

		var missing *dataset.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "Bwd Packets", missing.Column)
	})

	t.Run("TextColumnIsMissing", func(t *testing.T) {
		err := cleaned.Require([]string{"Label"})

		var missing *dataset.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "Label", missing.Column)
	})
}
