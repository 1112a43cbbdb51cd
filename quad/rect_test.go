package quad

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

func TestNullRectAbsorbs(t *testing.T) {
	r := NullRect()
	require.True(t, r.IsNull())

	r = r.Expand(pt(3, -2))
	require.False(t, r.IsNull())
	require.Equal(t, pt(3, -2), r.Min)
	require.Equal(t, pt(3, -2), r.Max)

	r = r.Expand(pt(-1, 5))
	require.Equal(t, pt(-1, -2), r.Min)
	require.Equal(t, pt(3, 5), r.Max)

	// expanding by NaN changes nothing
	r2 := r.Expand(pt(math.NaN(), math.NaN()))
	require.Equal(t, r, r2)
}

func TestRectPredicates(t *testing.T) {
	r := FromPoints(pt(0, 0), pt(10, 10))

	assert.True(t, r.Contains(pt(0, 0)))
	assert.True(t, r.Contains(pt(5, 9.99)))
	assert.False(t, r.Contains(pt(10, 5)))
	assert.False(t, r.Contains(pt(5, 10)))

	assert.True(t, r.Intersects(FromPoints(pt(10, 10), pt(12, 12))))
	assert.True(t, r.Intersects(NullAt(pt(5, 5))))
	assert.False(t, r.Intersects(FromPoints(pt(10.1, 0), pt(12, 12))))
	assert.False(t, r.Intersects(NullRect()))
	assert.False(t, NullRect().Intersects(r))

	assert.True(t, r.ContainsRect(FromPoints(pt(1, 1), pt(10, 10))))
	assert.False(t, r.ContainsRect(FromPoints(pt(1, 1), pt(11, 10))))

	assert.Equal(t, pt(5, 5), r.Midpoint())
	assert.Equal(t, FromPoints(pt(-1, -1), pt(11, 11)), r.Inflate(1))
	assert.Equal(t, FromPoints(pt(5, 5), pt(10, 10)), r.Intersection(FromPoints(pt(5, 5), pt(20, 20))))
	assert.True(t, r.Intersection(FromPoints(pt(50, 50), pt(60, 60))).IsNull())
	assert.Equal(t, FromPoints(pt(-5, 0), pt(10, 20)), r.Union(FromPoints(pt(-5, 20), pt(0, 0))))
}

func TestSplitQuadOrder(t *testing.T) {
	q := FromPoints(pt(0, 0), pt(4, 2)).SplitQuad()
	require.Equal(t, FromPoints(pt(0, 0), pt(2, 1)), q[0])
	require.Equal(t, FromPoints(pt(2, 0), pt(4, 1)), q[1])
	require.Equal(t, FromPoints(pt(0, 1), pt(2, 2)), q[2])
	require.Equal(t, FromPoints(pt(2, 1), pt(4, 2)), q[3])
}

func TestRectIsClose(t *testing.T) {
	a := FromPoints(pt(0, 0), pt(1, 1))
	require.True(t, a.IsClose(FromPoints(pt(0.00001, 0), pt(1, 1)), 1e-4))
	require.False(t, a.IsClose(FromPoints(pt(0.001, 0), pt(1, 1)), 1e-4))
}

func TestRectJSON(t *testing.T) {
	r := FromPoints(pt(1, 2), pt(3, 4))
	data, err := r.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"min":{"x":1,"y":2},"max":{"x":3,"y":4}}`, string(data))

	var back Rect
	require.NoError(t, back.UnmarshalJSON(data))
	require.Equal(t, r, back)

	data, err = NullRect().MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
	require.NoError(t, back.UnmarshalJSON(data))
	require.True(t, back.IsNull())
}
