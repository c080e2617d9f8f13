package raster

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
)

func TestSameShape(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	b := mat.NewDense(2, 3, nil)
	c := mat.NewDense(3, 2, nil)

	assert.NoError(t, SameShape(a, b))
	assert.NoError(t, SameShape())

	err := SameShape(a, b, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape))
	assert.Contains(t, err.Error(), "grid 2 is 3x2")
}

func TestSameShape_NilGrid(t *testing.T) {
	var missing *mat.Dense
	err := SameShape(mat.NewDense(1, 1, nil), missing)
	assert.ErrorIs(t, err, ErrShape)
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		p    float64
		want float64
	}{
		{"median of four", []float64{4, 1, 3, 2}, 50, 2.5},
		{"seventieth", []float64{0.9, 0.1, 0.1, 0.1}, 70, 0.18},
		{"min", []float64{5, 2, 9, 7}, 0, 2},
		{"max", []float64{5, 2, 9, 7}, 100, 9},
		{"constant", []float64{0.5, 0.5, 0.5, 0.5}, 70, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percentile(mat.NewDense(2, 2, tt.data), tt.p)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPercentile_ConstantIsExact(t *testing.T) {
	data := make([]float64, 9)
	for i := range data {
		data[i] = 0.1 + 0.2
	}
	got, err := Percentile(mat.NewDense(3, 3, data), 70)
	require.NoError(t, err)
	assert.Equal(t, data[0], got)
}

func TestPercentile_Errors(t *testing.T) {
	_, err := Percentile(nil, 50)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Percentile(mat.NewDense(1, 1, []float64{1}), 101)
	assert.Error(t, err)
}

func TestPositive_RasterScanOrder(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		0, 4, 0,
		7, 0, 1,
	})
	got := Positive(m)
	want := []models.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}}
	assert.Equal(t, want, got)

	assert.Empty(t, Positive(mat.NewDense(2, 2, nil)))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(3, 4, models.Cell{Row: 2, Col: 3}))
	assert.False(t, Contains(3, 4, models.Cell{Row: 3, Col: 0}))
	assert.False(t, Contains(3, 4, models.Cell{Row: 0, Col: -1}))
}

func TestCheckFinite(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{1, 2})
	assert.NoError(t, CheckFinite(m))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		bad := mat.NewDense(1, 2, nil)
		bad.Set(0, 1, v)
		err := CheckFinite(bad)
		assert.ErrorIs(t, err, ErrNotFinite, "value %v", v)
		assert.Contains(t, err.Error(), "cell (0, 1)")
	}
}
