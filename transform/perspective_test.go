package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avniish/gridscan/bitutil"
)

// TestQuadToQuadIdentity checks that mapping a quadrilateral onto itself
// recovers each corner within 1e-4, for an axis-aligned square and two
// skewed, non-affine quadrilaterals.
func TestQuadToQuadIdentity(t *testing.T) {
	cases := []struct {
		name                           string
		x0, y0, x1, y1, x2, y2, x3, y3 float64
	}{
		{"square", 0, 0, 10, 0, 10, 10, 0, 10},
		{"skewed", 2, 3, 37, 5, 41, 44, 1, 39},
		{"perspective", 0, 0, 100, 10, 90, 100, 5, 95},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			xform := QuadrilateralToQuadrilateral(
				tc.x0, tc.y0, tc.x1, tc.y1, tc.x2, tc.y2, tc.x3, tc.y3,
				tc.x0, tc.y0, tc.x1, tc.y1, tc.x2, tc.y2, tc.x3, tc.y3,
			)
			points := []float64{tc.x0, tc.y0, tc.x1, tc.y1, tc.x2, tc.y2, tc.x3, tc.y3}
			want := append([]float64(nil), points...)
			xform.TransformPoints(points)
			for i := range points {
				require.InDelta(t, want[i], points[i], 1e-4)
			}
		})
	}
}

// TestSquareToQuadrilateralAffine checks the affine branch: when
// dx3 == dy3 == 0 (a parallelogram) the transform reduces to a plain affine map.
func TestSquareToQuadrilateralAffine(t *testing.T) {
	xform := SquareToQuadrilateral(0, 0, 2, 0, 2, 2, 0, 2)
	points := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	xform.TransformPoints(points)
	want := []float64{0, 0, 2, 0, 2, 2, 0, 2}
	for i := range points {
		require.InDelta(t, want[i], points[i], 1e-4)
	}
}

// TestSampleGridTransformRoundTrip samples a BitMatrix through an identity
// grid sampling transform and checks the output equals the input.
func TestSampleGridTransformRoundTrip(t *testing.T) {
	dim := 5
	source := bitutil.NewBitMatrix(dim)
	for i := 0; i < dim; i++ {
		source.Set(i, i)
	}

	xform := QuadrilateralToQuadrilateral(
		0, 0, float64(dim), 0, float64(dim), float64(dim), 0, float64(dim),
		0, 0, float64(dim), 0, float64(dim), float64(dim), 0, float64(dim),
	)
	sampler := &DefaultGridSampler{}
	sampled, err := sampler.SampleGridTransform(source, dim, dim, xform)
	require.NoError(t, err)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			require.Equal(t, source.Get(x, y), sampled.Get(x, y), "(%d,%d)", x, y)
		}
	}
}

// TestCheckAndNudgePointsRejectsNonFinite checks that NaN/Inf coordinates —
// which a degenerate (collinear) quadrilateral transform can produce — are
// rejected rather than truncated into a bogus in-bounds pixel.
func TestCheckAndNudgePointsRejectsNonFinite(t *testing.T) {
	image := bitutil.NewBitMatrix(10)
	cases := [][]float64{
		{math.NaN(), 1},
		{1, math.Inf(1)},
		{math.Inf(-1), 1},
	}
	for _, points := range cases {
		err := CheckAndNudgePoints(image, points)
		require.ErrorIs(t, err, ErrNotFound)
	}
}

// TestSquareToQuadrilateralDegenerate checks that three collinear
// destination corners produce a non-finite transform rather than a panic.
func TestSquareToQuadrilateralDegenerate(t *testing.T) {
	xform := SquareToQuadrilateral(0, 0, 10, 0, 20, 0, 30, 0)
	points := []float64{0.5, 0.5}
	xform.TransformPoints(points)
	require.True(t, math.IsNaN(points[0]) || math.IsInf(points[0], 0),
		"collinear destination corners must yield a non-finite transform, got %v", points)
}
