package quad

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededPoints() []r2.Point {
	return []r2.Point{
		pt(0, 1000),
		pt(0, 0),
		pt(1000, 0),
		pt(-500, -500),
		pt(100, -200),
		pt(-200, 100),
	}
}

func TestDuplicatePointsRejected(t *testing.T) {
	cfg := Config{AllowDuplicates: false, MinChildren: 1, MaxChildren: 5, MaxDepth: 2, Epsilon: 1e-4}
	m := New[r2.Point](CenteredWithRadius(pt(0, 0), 10), cfg)

	a := m.InsertWithRect(pt(0, 0), NullAt(pt(0, 0)))
	b := m.InsertWithRect(pt(0, 0), NullAt(pt(0, 0)))

	require.Equal(t, 1, m.Len())
	require.NotEqual(t, a, b)

	_, ok := m.Get(a)
	require.True(t, ok)
	_, ok = m.Get(b)
	require.False(t, ok)
}

func TestDuplicateRejectedWhenLeafSplits(t *testing.T) {
	cfg := Config{AllowDuplicates: false, MinChildren: 1, MaxChildren: 4, MaxDepth: 8, Epsilon: 1e-4}
	m := New[r2.Point](CenteredWithRadius(pt(0, 0), 100), cfg)

	held := []r2.Point{pt(10, 10), pt(-10, 10), pt(10, -10), pt(-10, -10)}
	for _, p := range held {
		m.InsertWithRect(p, NullAt(p))
	}
	require.Equal(t, 4, m.Len())

	// the root leaf is full so this insert splits it first
	dup := m.InsertWithRect(pt(10, 10), NullAt(pt(10, 10+1e-6)))

	assert.Equal(t, 4, m.Len())
	_, ok := m.Get(dup)
	assert.False(t, ok)
	assert.Len(t, m.Query(CenteredWithRadius(pt(0, 0), 100)), 4)
}

func TestDuplicatesAllowedByDefault(t *testing.T) {
	m := NewDefault[int](CenteredWithRadius(pt(0, 0), 10))
	m.InsertWithRect(1, NullAt(pt(0, 0)))
	m.InsertWithRect(2, NullAt(pt(0, 0)))
	require.Equal(t, 2, m.Len())
}

func TestNearest(t *testing.T) {
	m := NewDefault[r2.Point](CenteredWithRadius(pt(0, 0), 2000))
	for _, p := range seededPoints() {
		m.InsertWithRect(p, NullAt(p))
	}

	n, ok := m.Nearest(pt(200, 200), 300)
	require.True(t, ok)
	require.Equal(t, pt(0, 0), n.Value)
	require.Equal(t, ItemID(1), n.ID)
	require.InDelta(t, 282.842712, n.Dist, 1e-6)
}

func TestNearestOutsideRadius(t *testing.T) {
	m := NewDefault[r2.Point](CenteredWithRadius(pt(0, 0), 2000))
	for _, p := range seededPoints()[:3] {
		m.InsertWithRect(p, NullAt(p))
	}

	_, ok := m.Nearest(pt(200, 200), 220)
	require.False(t, ok)
}

func TestNearestTieGoesToFirst(t *testing.T) {
	m := NewDefault[string](CenteredWithRadius(pt(0, 0), 100))
	m.InsertWithRect("b", NullAt(pt(1, 0)))
	m.InsertWithRect("a", NullAt(pt(-1, 0)))

	n, ok := m.Nearest(pt(0, 0), 5)
	require.True(t, ok)
	require.Equal(t, "b", n.Value)
}

func TestQuery(t *testing.T) {
	m := NewDefault[string](CenteredWithRadius(pt(0, 0), 100))
	idA := m.InsertWithRect("a", FromPoints(pt(0, 0), pt(10, 10)))
	idB := m.InsertWithRect("b", FromPoints(pt(20, 20), pt(30, 30)))

	res := m.Query(FromPoints(pt(5, 5), pt(6, 6)))
	require.Len(t, res, 1)
	require.Equal(t, idA, res[0].ID)

	res = m.Query(FromPoints(pt(-50, -50), pt(50, 50)))
	require.Len(t, res, 2)
	require.Equal(t, idA, res[0].ID)
	require.Equal(t, idB, res[1].ID)

	require.Empty(t, m.Query(FromPoints(pt(11, 11), pt(19, 19))))
}

func TestQueryAfterSplitNoDuplicates(t *testing.T) {
	m := NewDefault[int](CenteredWithRadius(pt(0, 0), 100))

	// straddles every quadrant boundary once the root splits
	big := m.InsertWithRect(-1, FromPoints(pt(-60, -60), pt(60, 60)))
	// items that sit across the x=0 line land in two children
	for i := 0; i < 40; i++ {
		y := -95 + float64(i)*4.5
		m.InsertWithRect(i, FromPoints(pt(-1, y), pt(1, y+1)))
	}

	res := m.Query(CenteredWithRadius(pt(0, 0), 100))
	require.Len(t, res, 41)
	seen := map[ItemID]bool{}
	for i, r := range res {
		require.False(t, seen[r.ID])
		seen[r.ID] = true
		if i > 0 {
			require.Less(t, res[i-1].ID, r.ID)
		}
	}
	require.True(t, seen[big])
}

func TestSplitCreatesBranch(t *testing.T) {
	cfg := DefaultConfig()
	m := New[int](CenteredWithRadius(pt(0, 0), 100), cfg)
	for i := 0; i < 2*cfg.MaxChildren+1; i++ {
		p := pt(-90+float64(i)*5, -90+float64(i)*5)
		m.InsertWithRect(i, NullAt(p))
	}

	branches := 0
	m.Inspect(func(r Rect, depth int, leaf bool) {
		if !leaf {
			branches++
		}
	})
	require.GreaterOrEqual(t, branches, 1)

	// everything still findable
	for i := 0; i < 2*cfg.MaxChildren+1; i++ {
		v, ok := m.Get(ItemID(i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Len(t, m.Query(CenteredWithRadius(pt(0, 0), 100)), 2*cfg.MaxChildren+1)
}

func TestRemoveCompacts(t *testing.T) {
	cfg := DefaultConfig()
	m := New[int](CenteredWithRadius(pt(0, 0), 100), cfg)
	ids := []ItemID{}
	for i := 0; i < 2*cfg.MaxChildren+1; i++ {
		p := pt(-90+float64(i)*5, 90-float64(i)*5)
		ids = append(ids, m.InsertWithRect(i, NullAt(p)))
	}
	require.False(t, m.root.isLeaf())

	for _, id := range ids[:len(ids)-2] {
		v, r, ok := m.Remove(id)
		require.True(t, ok)
		require.Equal(t, int(id), v)
		require.False(t, r.IsNull())
	}

	require.True(t, m.root.isLeaf())
	require.Len(t, m.root.elements, 2)
	require.Equal(t, 2, m.Len())
	require.Len(t, m.Query(CenteredWithRadius(pt(0, 0), 100)), 2)

	_, _, ok := m.Remove(ids[0])
	require.False(t, ok)
}

func TestItemsOutsideBounds(t *testing.T) {
	m := NewDefault[int](CenteredWithRadius(pt(0, 0), 10))
	for i := 0; i < 40; i++ {
		m.InsertWithRect(i, NullAt(pt(float64(i)-5, 0)))
	}
	// well outside the root rect, inserted after the root split
	far := m.InsertWithRect(99, NullAt(pt(500, 500)))

	res := m.Query(CenteredWithRadius(pt(500, 500), 1))
	require.Len(t, res, 1)
	require.Equal(t, far, res[0].ID)

	_, _, ok := m.Remove(far)
	require.True(t, ok)
	require.Empty(t, m.Query(CenteredWithRadius(pt(500, 500), 1)))
}

type marker struct {
	At r2.Point
}

func (m marker) AABB() Rect {
	return NullAt(m.At)
}

func TestInsertSpatial(t *testing.T) {
	m := NewDefault[marker](CenteredWithRadius(pt(0, 0), 10))
	id := m.Insert(marker{At: pt(1, 2)})
	r, ok := m.Rect(id)
	require.True(t, ok)
	require.Equal(t, NullAt(pt(1, 2)), r)

	p := m.GetPtr(id)
	require.NotNil(t, p)
	p.At = pt(5, 5)
	v, _ := m.Get(id)
	require.Equal(t, pt(5, 5), v.At)
	require.Nil(t, m.GetPtr(id+1))

	plain := NewDefault[int](CenteredWithRadius(pt(0, 0), 10))
	require.Panics(t, func() { plain.Insert(3) })
}

func TestItemsEachOrder(t *testing.T) {
	m := NewDefault[int](CenteredWithRadius(pt(0, 0), 10))
	for i := 0; i < 10; i++ {
		m.InsertWithRect(i*10, NullAt(pt(float64(i), 0)))
	}
	items := m.Items()
	require.Len(t, items, 10)
	for i, it := range items {
		assert.Equal(t, ItemID(i), it.ID)
		assert.Equal(t, i*10, it.Value)
	}

	count := 0
	m.Each(func(Result[int]) bool {
		count++
		return count < 3
	})
	require.Equal(t, 3, count)
}

func TestQuadMapJSON(t *testing.T) {
	m := NewDefault[string](CenteredWithRadius(pt(0, 0), 10))
	m.InsertWithRect("a", NullAt(pt(1, 1)))
	gone := m.InsertWithRect("b", NullAt(pt(2, 2)))
	m.InsertWithRect("c", NullAt(pt(3, 3)))
	m.Remove(gone)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	back := &QuadMap[string]{}
	require.NoError(t, json.Unmarshal(data, back))
	require.Equal(t, 2, back.Len())
	require.Equal(t, m.Config(), back.Config())
	require.Equal(t, m.BoundingBox(), back.BoundingBox())

	v, ok := back.Get(2)
	require.True(t, ok)
	require.Equal(t, "c", v)

	// ids keep counting from where the original left off
	require.Equal(t, ItemID(3), back.InsertWithRect("d", NullAt(pt(4, 4))))
}
