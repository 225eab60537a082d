package engine

import "github.com/ByteArena/box2d"

// RayHit describes the closest fixture struck by a ray cast.
type RayHit struct {
	Shape    ShapeID
	Point    Vec2
	Normal   Vec2
	Fraction float64
}

// CastResult carries the outcome of a spatial query plus visit statistics
// for benchmark reporting.
type CastResult struct {
	Hit     bool
	Closest RayHit
	Visited int // fixtures inspected by the query
}

// RayCast finds the closest non-sensor fixture along the segment from p1 to p2.
func (w *World) RayCast(p1, p2 Vec2) CastResult {
	var res CastResult
	res.Closest.Fraction = 1.0
	w.w.RayCast(func(fixture *box2d.B2Fixture, point box2d.B2Vec2, normal box2d.B2Vec2, fraction float64) float64 {
		res.Visited++
		if fixture.IsSensor() {
			return -1
		}
		sid, ok := fixture.GetUserData().(ShapeID)
		if !ok {
			return -1
		}
		res.Hit = true
		res.Closest = RayHit{
			Shape:    sid,
			Point:    Vec2{point.X, point.Y},
			Normal:   Vec2{normal.X, normal.Y},
			Fraction: fraction,
		}
		return fraction // clip the ray, keep searching for closer hits
	}, box2d.MakeB2Vec2(p1.X, p1.Y), box2d.MakeB2Vec2(p2.X, p2.Y))
	return res
}

// RayCastFiltered behaves like RayCast but only reports fixtures whose
// category bits intersect mask.
func (w *World) RayCastFiltered(p1, p2 Vec2, mask uint16) CastResult {
	var res CastResult
	res.Closest.Fraction = 1.0
	w.w.RayCast(func(fixture *box2d.B2Fixture, point box2d.B2Vec2, normal box2d.B2Vec2, fraction float64) float64 {
		res.Visited++
		if fixture.GetFilterData().CategoryBits&mask == 0 {
			return -1
		}
		sid, ok := fixture.GetUserData().(ShapeID)
		if !ok {
			return -1
		}
		res.Hit = true
		res.Closest = RayHit{
			Shape:    sid,
			Point:    Vec2{point.X, point.Y},
			Normal:   Vec2{normal.X, normal.Y},
			Fraction: fraction,
		}
		return fraction
	}, box2d.MakeB2Vec2(p1.X, p1.Y), box2d.MakeB2Vec2(p2.X, p2.Y))
	return res
}

// OverlapAABB visits every fixture whose broadphase proxy overlaps the box
// and returns their shape handles plus the visit count.
func (w *World) OverlapAABB(lower, upper Vec2) ([]ShapeID, int) {
	var shapes []ShapeID
	visited := 0
	aabb := box2d.B2AABB{
		LowerBound: box2d.MakeB2Vec2(lower.X, lower.Y),
		UpperBound: box2d.MakeB2Vec2(upper.X, upper.Y),
	}
	w.w.QueryAABB(func(fixture *box2d.B2Fixture) bool {
		visited++
		if sid, ok := fixture.GetUserData().(ShapeID); ok {
			shapes = append(shapes, sid)
		}
		return true
	}, aabb)
	return shapes, visited
}

// ShapeCast sweeps a circle of the given radius from p1 to p2 and reports
// the closest blocking fixture. Implemented as a ray cast fattened by
// sampling parallel rays; exact swept-shape queries are not exposed by the
// underlying engine.
func (w *World) ShapeCast(p1, p2 Vec2, radius float64) CastResult {
	dir := p2.Sub(p1)
	length := dir.Length()
	if length < 1e-9 {
		return CastResult{}
	}
	// Perpendicular offset for the two flanking rays.
	perp := Vec2{-dir.Y / length, dir.X / length}.Scale(radius)

	best := w.RayCast(p1, p2)
	for _, offset := range []Vec2{perp, perp.Scale(-1)} {
		r := w.RayCast(p1.Add(offset), p2.Add(offset))
		best.Visited += r.Visited
		if r.Hit && (!best.Hit || r.Closest.Fraction < best.Closest.Fraction) {
			best.Hit = true
			best.Closest = r.Closest
		}
	}
	return best
}
