package quad

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonRect struct {
	Min jsonPoint `json:"min"`
	Max jsonPoint `json:"max"`
}

// MarshalJSON writes the rect as {min:{x,y}, max:{x,y}}, or null for a
// null rect (JSON has no NaN).
func (r Rect) MarshalJSON() ([]byte, error) {
	if r.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(jsonRect{
		Min: jsonPoint{X: r.Min.X, Y: r.Min.Y},
		Max: jsonPoint{X: r.Max.X, Y: r.Max.Y},
	})
}

// UnmarshalJSON reads a rect written by MarshalJSON.
func (r *Rect) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = NullRect()
		return nil
	}
	var in jsonRect
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(err, "failed to decode rect")
	}
	r.Min = r2.Point{X: in.Min.X, Y: in.Min.Y}
	r.Max = r2.Point{X: in.Max.X, Y: in.Max.Y}
	return nil
}

type jsonElement[T any] struct {
	ID    ItemID `json:"id"`
	Value T      `json:"value"`
	Rect  Rect   `json:"rect"`
}

type jsonQuadMap[T any] struct {
	Config   Config           `json:"config"`
	Bounds   Rect             `json:"bounds"`
	Elements []jsonElement[T] `json:"elements"`
}

// MarshalJSON writes the map's config, bounds & elements. Elements are
// ordered by id.
func (q *QuadMap[T]) MarshalJSON() ([]byte, error) {
	out := jsonQuadMap[T]{
		Config:   q.cfg,
		Bounds:   q.root.rect,
		Elements: make([]jsonElement[T], 0, len(q.elements)),
	}
	q.Each(func(r Result[T]) bool {
		out.Elements = append(out.Elements, jsonElement[T]{ID: r.ID, Value: r.Value, Rect: r.Rect})
		return true
	})
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a map written by MarshalJSON. Item ids are kept.
func (q *QuadMap[T]) UnmarshalJSON(data []byte) error {
	var in jsonQuadMap[T]
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(err, "failed to decode quad map")
	}
	if in.Config.MaxChildren < 1 {
		return errors.Errorf("invalid quad map config, max children %d", in.Config.MaxChildren)
	}

	*q = *New[T](in.Bounds, in.Config)
	for _, e := range in.Elements {
		if q.root.insert(entry{id: e.ID, rect: e.Rect}, &q.cfg) {
			q.elements[e.ID] = &element[T]{value: e.Value, rect: e.Rect}
		}
		if e.ID >= q.nextID {
			q.nextID = e.ID + 1
		}
	}
	return nil
}
