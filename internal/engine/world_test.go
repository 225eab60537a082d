package engine

import "testing"

func TestHandleValidity(t *testing.T) {
	w := NewWorld(Vec2{Y: -10})

	body := w.CreateBody(BodyDef{Type: DynamicBody, Position: Vec2{X: 0, Y: 5}})
	shape := w.CreateCircleShape(body, ShapeDef{Density: 1}, Vec2{}, 0.5)

	if !w.IsValidBody(body) || !w.IsValidShape(shape) {
		t.Fatal("fresh handles should be valid")
	}
	if got := w.ShapeBody(shape); got != body {
		t.Errorf("ShapeBody = %v, want %v", got, body)
	}

	w.DestroyBody(body)

	if w.IsValidBody(body) {
		t.Error("body handle valid after destruction")
	}
	if w.IsValidShape(shape) {
		t.Error("shape handle valid after owning body destruction")
	}
	// Queries against stale handles short-circuit to zero values.
	if p := w.Position(body); p != (Vec2{}) {
		t.Errorf("stale position query = %v", p)
	}
}

func TestHandleGenerationNotReused(t *testing.T) {
	w := NewWorld(Vec2{})

	first := w.CreateBody(BodyDef{Type: DynamicBody})
	w.DestroyBody(first)
	second := w.CreateBody(BodyDef{Type: DynamicBody})

	if first == second {
		t.Fatal("recycled slot produced an identical handle")
	}
	if w.IsValidBody(first) {
		t.Error("stale handle validates against recycled slot")
	}
	if !w.IsValidBody(second) {
		t.Error("new handle in recycled slot should be valid")
	}
}

func TestJointInvalidatedWithBody(t *testing.T) {
	w := NewWorld(Vec2{Y: -10})

	a := w.CreateBody(BodyDef{Type: DynamicBody, Position: Vec2{X: 0, Y: 5}})
	w.CreateCircleShape(a, ShapeDef{Density: 1}, Vec2{}, 0.5)
	b := w.CreateBody(BodyDef{Type: DynamicBody, Position: Vec2{X: 1, Y: 5}})
	w.CreateCircleShape(b, ShapeDef{Density: 1}, Vec2{}, 0.5)

	joint := w.CreateRevoluteJoint(RevoluteJointDef{
		BodyA: a, BodyB: b, Anchor: Vec2{X: 0, Y: 5},
		EnableMotor: true, MotorSpeed: 2, MaxMotorTorque: 10,
	})
	if !w.IsValidJoint(joint) {
		t.Fatal("fresh joint should be valid")
	}
	motor := w.Motor(joint)
	if !motor.Enabled || motor.Speed != 2 || motor.Torque != 10 {
		t.Errorf("motor state = %+v", motor)
	}

	w.DestroyBody(b)
	if w.IsValidJoint(joint) {
		t.Error("joint handle valid after connected body destruction")
	}
}

func TestSensorEventsFromStep(t *testing.T) {
	w := NewWorld(Vec2{}) // no gravity: overlap is under our control

	sensorBody := w.CreateBody(BodyDef{Type: StaticBody, Position: Vec2{}})
	sensor := w.CreateCircleShape(sensorBody, ShapeDef{IsSensor: true}, Vec2{}, 1.0)

	visitorBody := w.CreateBody(BodyDef{Type: DynamicBody, Position: Vec2{X: 5, Y: 0}, EnableSleep: false})
	visitor := w.CreateCircleShape(visitorBody, ShapeDef{Density: 1}, Vec2{}, 0.2)

	// Drive the visitor through the sensor.
	w.SetLinearVelocity(visitorBody, Vec2{X: -20, Y: 0})
	sawBegin, sawEnd := false, false
	for i := 0; i < 120; i++ {
		w.Step(1.0/60, 8, 3)
		for _, e := range w.Events().SensorBegin {
			if e.Sensor == sensor && e.Visitor == visitor {
				sawBegin = true
			}
		}
		for _, e := range w.Events().SensorEnd {
			if e.Sensor == sensor && e.Visitor == visitor {
				sawEnd = true
			}
		}
	}
	if !sawBegin {
		t.Error("no sensor begin event observed")
	}
	if !sawEnd {
		t.Error("no sensor end event observed")
	}
}

func TestRayCastClosest(t *testing.T) {
	w := NewWorld(Vec2{})

	near := w.CreateBody(BodyDef{Type: StaticBody, Position: Vec2{X: 2, Y: 0}})
	nearShape := w.CreateBoxShape(near, ShapeDef{}, 0.2, 2)
	far := w.CreateBody(BodyDef{Type: StaticBody, Position: Vec2{X: 6, Y: 0}})
	w.CreateBoxShape(far, ShapeDef{}, 0.2, 2)

	res := w.RayCast(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 0})
	if !res.Hit {
		t.Fatal("ray missed both boxes")
	}
	if res.Closest.Shape != nearShape {
		t.Errorf("closest shape = %v, want the near box", res.Closest.Shape)
	}
	if res.Visited == 0 {
		t.Error("visit statistics not collected")
	}
}

func TestExplodeAffectsBodiesInRadius(t *testing.T) {
	w := NewWorld(Vec2{})

	inside := w.CreateBody(BodyDef{Type: DynamicBody, Position: Vec2{X: 1, Y: 0}})
	w.CreateCircleShape(inside, ShapeDef{Density: 1}, Vec2{}, 0.3)
	outside := w.CreateBody(BodyDef{Type: DynamicBody, Position: Vec2{X: 50, Y: 0}})
	w.CreateCircleShape(outside, ShapeDef{Density: 1}, Vec2{}, 0.3)

	hit := w.Explode(Vec2{}, 5, 10)
	if hit != 1 {
		t.Errorf("explosion affected %d bodies, want 1", hit)
	}
	if v := w.LinearVelocity(inside); v.X <= 0 {
		t.Errorf("inside body not pushed away: %v", v)
	}
	if v := w.LinearVelocity(outside); v.Length() != 0 {
		t.Errorf("outside body pushed: %v", v)
	}
}
