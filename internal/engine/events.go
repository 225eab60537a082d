package engine

import "github.com/ByteArena/box2d"

// SensorEvent reports a sensor fixture starting or stopping overlap with
// another fixture. Sensor is always the sensor side of the pair.
type SensorEvent struct {
	Sensor  ShapeID
	Visitor ShapeID
}

// ContactEvent reports two solid fixtures starting or stopping touching.
type ContactEvent struct {
	ShapeA ShapeID
	ShapeB ShapeID
}

// HitEvent reports a solved solid contact whose normal impulse exceeded the
// world's hit threshold, with the resolved contact point.
type HitEvent struct {
	ShapeA  ShapeID
	ShapeB  ShapeID
	Point   Vec2
	Normal  Vec2 // points from A to B
	Impulse float64
}

// StepEvents holds one step's worth of collision activity. The slices are
// reused between steps; callers must not retain them past the next Step.
type StepEvents struct {
	SensorBegin  []SensorEvent
	SensorEnd    []SensorEvent
	ContactBegin []ContactEvent
	ContactEnd   []ContactEvent
	Hits         []HitEvent
}

func (e *StepEvents) reset() {
	e.SensorBegin = e.SensorBegin[:0]
	e.SensorEnd = e.SensorEnd[:0]
	e.ContactBegin = e.ContactBegin[:0]
	e.ContactEnd = e.ContactEnd[:0]
	e.Hits = e.Hits[:0]
}

// eventCollector implements box2d's contact listener and routes callbacks
// into the world's event batches. Box2D invokes it re-entrantly during
// Step, while the world is locked, so it only appends to slices.
type eventCollector struct {
	world *World
}

func (c *eventCollector) BeginContact(contact box2d.B2ContactInterface) {
	a, b, ok := c.shapePair(contact)
	if !ok {
		return
	}
	sensorA := contact.GetFixtureA().IsSensor()
	sensorB := contact.GetFixtureB().IsSensor()
	switch {
	case sensorA && sensorB:
		// Two sensors overlapping: report both perspectives.
		c.world.events.SensorBegin = append(c.world.events.SensorBegin,
			SensorEvent{Sensor: a, Visitor: b}, SensorEvent{Sensor: b, Visitor: a})
	case sensorA:
		c.world.events.SensorBegin = append(c.world.events.SensorBegin, SensorEvent{Sensor: a, Visitor: b})
	case sensorB:
		c.world.events.SensorBegin = append(c.world.events.SensorBegin, SensorEvent{Sensor: b, Visitor: a})
	default:
		c.world.events.ContactBegin = append(c.world.events.ContactBegin, ContactEvent{ShapeA: a, ShapeB: b})
	}
}

func (c *eventCollector) EndContact(contact box2d.B2ContactInterface) {
	a, b, ok := c.shapePair(contact)
	if !ok {
		return
	}
	sensorA := contact.GetFixtureA().IsSensor()
	sensorB := contact.GetFixtureB().IsSensor()
	switch {
	case sensorA && sensorB:
		c.world.events.SensorEnd = append(c.world.events.SensorEnd,
			SensorEvent{Sensor: a, Visitor: b}, SensorEvent{Sensor: b, Visitor: a})
	case sensorA:
		c.world.events.SensorEnd = append(c.world.events.SensorEnd, SensorEvent{Sensor: a, Visitor: b})
	case sensorB:
		c.world.events.SensorEnd = append(c.world.events.SensorEnd, SensorEvent{Sensor: b, Visitor: a})
	default:
		c.world.events.ContactEnd = append(c.world.events.ContactEnd, ContactEvent{ShapeA: a, ShapeB: b})
	}
}

func (c *eventCollector) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
}

func (c *eventCollector) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
	a, b, ok := c.shapePair(contact)
	if !ok {
		return
	}
	max := 0.0
	count := contact.GetManifold().PointCount
	for i := 0; i < count; i++ {
		if impulse.NormalImpulses[i] > max {
			max = impulse.NormalImpulses[i]
		}
	}
	if max < c.world.HitThreshold {
		return
	}
	wm := box2d.MakeB2WorldManifold()
	contact.GetWorldManifold(&wm)
	c.world.events.Hits = append(c.world.events.Hits, HitEvent{
		ShapeA:  a,
		ShapeB:  b,
		Point:   Vec2{wm.Points[0].X, wm.Points[0].Y},
		Normal:  Vec2{wm.Normal.X, wm.Normal.Y},
		Impulse: max,
	})
}

func (c *eventCollector) shapePair(contact box2d.B2ContactInterface) (ShapeID, ShapeID, bool) {
	a, okA := contact.GetFixtureA().GetUserData().(ShapeID)
	b, okB := contact.GetFixtureB().GetUserData().(ShapeID)
	if !okA || !okB {
		return 0, 0, false
	}
	return a, b, true
}
