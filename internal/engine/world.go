// Package engine wraps the Box2D port with a handle-based facade.
// Gameplay code never touches Box2D pointers directly: bodies, shapes and
// joints are referred to by opaque generational handles that can be stored
// in maps and safely outlive the objects they name. Collision and sensor
// activity is exposed as per-step event batches that stay valid until the
// next Step call.
package engine

import (
	"math"

	"github.com/ByteArena/box2d"
)

// BodyType selects how a body is simulated.
type BodyType int

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

// BodyDef describes a body to be created.
type BodyDef struct {
	Type            BodyType
	Position        Vec2
	Angle           float64
	LinearVelocity  Vec2
	AngularVelocity float64
	LinearDamping   float64
	AngularDamping  float64
	FixedRotation   bool
	Bullet          bool
	GravityScale    float64
	EnableSleep     bool
}

// ShapeDef describes a fixture to be attached to a body.
type ShapeDef struct {
	Density     float64
	Friction    float64
	Restitution float64
	IsSensor    bool
	Category    uint16 // collision filter category bits
	Mask        uint16 // collision filter mask bits (0 = collide with everything)
}

// RevoluteJointDef describes a motorized revolute joint between two bodies.
type RevoluteJointDef struct {
	BodyA, BodyB     BodyID
	Anchor           Vec2 // world-space anchor point
	EnableMotor      bool
	MotorSpeed       float64
	MaxMotorTorque   float64
	CollideConnected bool
}

// MotorState is a snapshot of a revolute joint's motor parameters.
type MotorState struct {
	Enabled bool
	Speed   float64
	Torque  float64
}

type bodySlot struct {
	gen  uint32
	body *box2d.B2Body
}

type shapeSlot struct {
	gen     uint32
	fixture *box2d.B2Fixture
	body    BodyID
}

type jointSlot struct {
	gen   uint32
	joint *box2d.B2RevoluteJoint
	bodyA BodyID
	bodyB BodyID
}

// World owns a Box2D world plus the handle arenas and event buffers.
// It is not safe for concurrent use; the whole simulation is
// step-synchronous on one goroutine.
type World struct {
	w box2d.B2World

	bodies     []bodySlot
	freeBodies []uint32
	shapes     []shapeSlot
	freeShapes []uint32
	joints     []jointSlot
	freeJoints []uint32

	events    StepEvents
	collector eventCollector

	// HitThreshold is the minimum normal impulse for a solid contact to be
	// reported as a hit event. Zero reports every solved contact.
	HitThreshold float64

	stepCount int64
}

// NewWorld creates a world with the given gravity vector.
func NewWorld(gravity Vec2) *World {
	w := &World{
		w: box2d.MakeB2World(box2d.MakeB2Vec2(gravity.X, gravity.Y)),
	}
	w.collector.world = w
	w.w.SetContactListener(&w.collector)
	return w
}

// Step advances the simulation. The previous step's event batches are
// discarded; new batches accumulate during the solve and remain readable
// until the next Step.
func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	w.events.reset()
	w.w.Step(dt, velocityIterations, positionIterations)
	w.stepCount++
}

// StepCount returns the number of Step calls since creation.
func (w *World) StepCount() int64 {
	return w.stepCount
}

// Events returns the batches produced by the most recent Step.
// The returned pointer is invalidated by the next Step call.
func (w *World) Events() *StepEvents {
	return &w.events
}

// BodyCount returns the number of live bodies in the world.
func (w *World) BodyCount() int {
	return w.w.GetBodyCount()
}

// ContactCount returns the number of contacts tracked by the broadphase.
func (w *World) ContactCount() int {
	return w.w.GetContactCount()
}

// CreateBody creates a body and returns its handle.
func (w *World) CreateBody(def BodyDef) BodyID {
	bd := box2d.MakeB2BodyDef()
	switch def.Type {
	case StaticBody:
		bd.Type = box2d.B2BodyType.B2_staticBody
	case KinematicBody:
		bd.Type = box2d.B2BodyType.B2_kinematicBody
	default:
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	bd.Position = box2d.MakeB2Vec2(def.Position.X, def.Position.Y)
	bd.Angle = def.Angle
	bd.LinearVelocity = box2d.MakeB2Vec2(def.LinearVelocity.X, def.LinearVelocity.Y)
	bd.AngularVelocity = def.AngularVelocity
	bd.LinearDamping = def.LinearDamping
	bd.AngularDamping = def.AngularDamping
	bd.FixedRotation = def.FixedRotation
	bd.Bullet = def.Bullet
	if def.GravityScale != 0 {
		bd.GravityScale = def.GravityScale
	}
	bd.AllowSleep = def.EnableSleep

	body := w.w.CreateBody(&bd)

	var slot uint32
	if n := len(w.freeBodies); n > 0 {
		slot = w.freeBodies[n-1]
		w.freeBodies = w.freeBodies[:n-1]
		w.bodies[slot].body = body
	} else {
		slot = uint32(len(w.bodies))
		w.bodies = append(w.bodies, bodySlot{gen: 1, body: body})
	}
	id := BodyID(packHandle(slot, w.bodies[slot].gen))
	body.SetUserData(id)
	return id
}

// DestroyBody destroys a body, all fixtures attached to it, and all joints
// connected to it. Every handle that referred to them becomes invalid.
func (w *World) DestroyBody(id BodyID) {
	body := w.body(id)
	if body == nil {
		return
	}

	// Invalidate shape handles backed by this body's fixtures.
	for f := body.GetFixtureList(); f != nil; f = f.M_next {
		if sid, ok := f.GetUserData().(ShapeID); ok {
			w.invalidateShape(sid)
		}
	}
	// Joints attached to the body are destroyed by Box2D as a side effect;
	// invalidate their handles first.
	for i := range w.joints {
		js := &w.joints[i]
		if js.joint == nil {
			continue
		}
		if js.bodyA == id || js.bodyB == id {
			js.joint = nil
			js.gen++
			w.freeJoints = append(w.freeJoints, uint32(i))
		}
	}

	w.w.DestroyBody(body)

	slot := handleSlot(uint64(id))
	w.bodies[slot].body = nil
	w.bodies[slot].gen++
	w.freeBodies = append(w.freeBodies, slot)
}

// CreateCircleShape attaches a circle fixture to a body.
func (w *World) CreateCircleShape(id BodyID, def ShapeDef, center Vec2, radius float64) ShapeID {
	body := w.body(id)
	if body == nil {
		return 0
	}
	circle := box2d.NewB2CircleShape()
	circle.M_p = box2d.MakeB2Vec2(center.X, center.Y)
	circle.M_radius = radius
	return w.attachFixture(id, body, circle, def)
}

// CreateBoxShape attaches a box fixture centered on the body origin.
func (w *World) CreateBoxShape(id BodyID, def ShapeDef, halfWidth, halfHeight float64) ShapeID {
	body := w.body(id)
	if body == nil {
		return 0
	}
	poly := box2d.NewB2PolygonShape()
	poly.SetAsBox(halfWidth, halfHeight)
	return w.attachFixture(id, body, poly, def)
}

// CreateOffsetBoxShape attaches a box fixture with a local offset and angle.
func (w *World) CreateOffsetBoxShape(id BodyID, def ShapeDef, halfWidth, halfHeight float64, center Vec2, angle float64) ShapeID {
	body := w.body(id)
	if body == nil {
		return 0
	}
	poly := box2d.NewB2PolygonShape()
	poly.SetAsBoxFromCenterAndAngle(halfWidth, halfHeight, box2d.MakeB2Vec2(center.X, center.Y), angle)
	return w.attachFixture(id, body, poly, def)
}

func (w *World) attachFixture(owner BodyID, body *box2d.B2Body, shape box2d.B2ShapeInterface, def ShapeDef) ShapeID {
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.Restitution = def.Restitution
	fd.IsSensor = def.IsSensor
	if def.Category != 0 {
		fd.Filter.CategoryBits = def.Category
	}
	if def.Mask != 0 {
		fd.Filter.MaskBits = def.Mask
	}
	fixture := body.CreateFixtureFromDef(&fd)

	var slot uint32
	if n := len(w.freeShapes); n > 0 {
		slot = w.freeShapes[n-1]
		w.freeShapes = w.freeShapes[:n-1]
		w.shapes[slot].fixture = fixture
		w.shapes[slot].body = owner
	} else {
		slot = uint32(len(w.shapes))
		w.shapes = append(w.shapes, shapeSlot{gen: 1, fixture: fixture, body: owner})
	}
	id := ShapeID(packHandle(slot, w.shapes[slot].gen))
	fixture.SetUserData(id)
	return id
}

// DestroyShape detaches and destroys a single fixture.
func (w *World) DestroyShape(id ShapeID) {
	slot, ok := w.shapeSlot(id)
	if !ok {
		return
	}
	body := w.body(slot.body)
	if body != nil {
		body.DestroyFixture(slot.fixture)
	}
	w.invalidateShape(id)
}

func (w *World) invalidateShape(id ShapeID) {
	slot := handleSlot(uint64(id))
	if int(slot) >= len(w.shapes) || w.shapes[slot].gen != handleGen(uint64(id)) {
		return
	}
	w.shapes[slot].fixture = nil
	w.shapes[slot].gen++
	w.freeShapes = append(w.freeShapes, slot)
}

// CreateRevoluteJoint creates a motorized revolute joint.
func (w *World) CreateRevoluteJoint(def RevoluteJointDef) JointID {
	bodyA := w.body(def.BodyA)
	bodyB := w.body(def.BodyB)
	if bodyA == nil || bodyB == nil {
		return 0
	}
	jd := box2d.MakeB2RevoluteJointDef()
	jd.Initialize(bodyA, bodyB, box2d.MakeB2Vec2(def.Anchor.X, def.Anchor.Y))
	jd.EnableMotor = def.EnableMotor
	jd.MotorSpeed = def.MotorSpeed
	jd.MaxMotorTorque = def.MaxMotorTorque
	jd.CollideConnected = def.CollideConnected

	joint, ok := w.w.CreateJoint(&jd).(*box2d.B2RevoluteJoint)
	if !ok {
		return 0
	}

	var slot uint32
	if n := len(w.freeJoints); n > 0 {
		slot = w.freeJoints[n-1]
		w.freeJoints = w.freeJoints[:n-1]
		w.joints[slot] = jointSlot{gen: w.joints[slot].gen, joint: joint, bodyA: def.BodyA, bodyB: def.BodyB}
	} else {
		slot = uint32(len(w.joints))
		w.joints = append(w.joints, jointSlot{gen: 1, joint: joint, bodyA: def.BodyA, bodyB: def.BodyB})
	}
	return JointID(packHandle(slot, w.joints[slot].gen))
}

// DestroyJoint destroys a joint. The connected bodies survive.
func (w *World) DestroyJoint(id JointID) {
	joint := w.joint(id)
	if joint == nil {
		return
	}
	w.w.DestroyJoint(joint)
	slot := handleSlot(uint64(id))
	w.joints[slot].joint = nil
	w.joints[slot].gen++
	w.freeJoints = append(w.freeJoints, slot)
}

// IsValidBody reports whether the handle refers to a live body.
func (w *World) IsValidBody(id BodyID) bool {
	return w.body(id) != nil
}

// IsValidShape reports whether the handle refers to a live fixture.
func (w *World) IsValidShape(id ShapeID) bool {
	_, ok := w.shapeSlot(id)
	return ok
}

// IsValidJoint reports whether the handle refers to a live joint.
func (w *World) IsValidJoint(id JointID) bool {
	return w.joint(id) != nil
}

func (w *World) body(id BodyID) *box2d.B2Body {
	slot := handleSlot(uint64(id))
	if int(slot) >= len(w.bodies) {
		return nil
	}
	s := &w.bodies[slot]
	if s.gen != handleGen(uint64(id)) {
		return nil
	}
	return s.body
}

func (w *World) shapeSlot(id ShapeID) (*shapeSlot, bool) {
	slot := handleSlot(uint64(id))
	if int(slot) >= len(w.shapes) {
		return nil, false
	}
	s := &w.shapes[slot]
	if s.gen != handleGen(uint64(id)) || s.fixture == nil {
		return nil, false
	}
	return s, true
}

func (w *World) joint(id JointID) *box2d.B2RevoluteJoint {
	slot := handleSlot(uint64(id))
	if int(slot) >= len(w.joints) {
		return nil
	}
	s := &w.joints[slot]
	if s.gen != handleGen(uint64(id)) {
		return nil
	}
	return s.joint
}

// Position returns the body origin in world coordinates.
func (w *World) Position(id BodyID) Vec2 {
	if body := w.body(id); body != nil {
		p := body.GetPosition()
		return Vec2{p.X, p.Y}
	}
	return Vec2{}
}

// Angle returns the body rotation in radians.
func (w *World) Angle(id BodyID) float64 {
	if body := w.body(id); body != nil {
		return body.GetAngle()
	}
	return 0
}

// LinearVelocity returns the body's linear velocity.
func (w *World) LinearVelocity(id BodyID) Vec2 {
	if body := w.body(id); body != nil {
		v := body.GetLinearVelocity()
		return Vec2{v.X, v.Y}
	}
	return Vec2{}
}

// AngularVelocity returns the body's angular velocity in radians/second.
func (w *World) AngularVelocity(id BodyID) float64 {
	if body := w.body(id); body != nil {
		return body.GetAngularVelocity()
	}
	return 0
}

// Mass returns the body mass in kilograms.
func (w *World) Mass(id BodyID) float64 {
	if body := w.body(id); body != nil {
		return body.GetMass()
	}
	return 0
}

// IsAwake reports whether the body is awake.
func (w *World) IsAwake(id BodyID) bool {
	if body := w.body(id); body != nil {
		return body.IsAwake()
	}
	return false
}

// BodyShapes returns the handles of all fixtures attached to a body.
func (w *World) BodyShapes(id BodyID) []ShapeID {
	body := w.body(id)
	if body == nil {
		return nil
	}
	var out []ShapeID
	for f := body.GetFixtureList(); f != nil; f = f.M_next {
		if sid, ok := f.GetUserData().(ShapeID); ok {
			out = append(out, sid)
		}
	}
	return out
}

// ShapeBody returns the body a fixture is attached to.
func (w *World) ShapeBody(id ShapeID) BodyID {
	if slot, ok := w.shapeSlot(id); ok {
		return slot.body
	}
	return 0
}

// ShapeCategory returns a fixture's collision filter category bits.
func (w *World) ShapeCategory(id ShapeID) uint16 {
	if slot, ok := w.shapeSlot(id); ok {
		return slot.fixture.GetFilterData().CategoryBits
	}
	return 0
}

// IsSensorShape reports whether a fixture is a sensor.
func (w *World) IsSensorShape(id ShapeID) bool {
	if slot, ok := w.shapeSlot(id); ok {
		return slot.fixture.IsSensor()
	}
	return false
}

// SetLinearVelocity sets the body's linear velocity.
func (w *World) SetLinearVelocity(id BodyID, v Vec2) {
	if body := w.body(id); body != nil {
		body.SetLinearVelocity(box2d.MakeB2Vec2(v.X, v.Y))
	}
}

// SetAngularVelocity sets the body's angular velocity.
func (w *World) SetAngularVelocity(id BodyID, omega float64) {
	if body := w.body(id); body != nil {
		body.SetAngularVelocity(omega)
	}
}

// SetAwake forces a body awake or asleep.
func (w *World) SetAwake(id BodyID, awake bool) {
	if body := w.body(id); body != nil {
		body.SetAwake(awake)
	}
}

// SleepEnabled reports whether the body is allowed to sleep.
func (w *World) SleepEnabled(id BodyID) bool {
	if body := w.body(id); body != nil {
		return body.IsSleepingAllowed()
	}
	return false
}

// SetSleepEnabled sets whether the body may fall asleep on its own.
func (w *World) SetSleepEnabled(id BodyID, enabled bool) {
	if body := w.body(id); body != nil {
		body.SetSleepingAllowed(enabled)
	}
}

// SetTransform teleports a body to a new position and angle.
func (w *World) SetTransform(id BodyID, pos Vec2, angle float64) {
	if body := w.body(id); body != nil {
		body.SetTransform(box2d.MakeB2Vec2(pos.X, pos.Y), angle)
	}
}

// ApplyLinearImpulse applies an impulse at the body's center of mass.
func (w *World) ApplyLinearImpulse(id BodyID, impulse Vec2) {
	if body := w.body(id); body != nil {
		body.ApplyLinearImpulseToCenter(box2d.MakeB2Vec2(impulse.X, impulse.Y), true)
	}
}

// Motor returns a revolute joint's motor state.
func (w *World) Motor(id JointID) MotorState {
	joint := w.joint(id)
	if joint == nil {
		return MotorState{}
	}
	return MotorState{
		Enabled: joint.IsMotorEnabled(),
		Speed:   joint.GetMotorSpeed(),
		Torque:  joint.GetMaxMotorTorque(),
	}
}

// SetMotor applies a motor state to a revolute joint.
func (w *World) SetMotor(id JointID, state MotorState) {
	joint := w.joint(id)
	if joint == nil {
		return
	}
	joint.EnableMotor(state.Enabled)
	joint.SetMotorSpeed(state.Speed)
	joint.SetMaxMotorTorque(state.Torque)
}

// Explode applies a radial impulse falling off linearly with distance to
// every dynamic body whose center lies within the blast radius.
func (w *World) Explode(center Vec2, radius, magnitude float64) int {
	if radius <= 0 {
		return 0
	}
	hit := 0
	aabb := box2d.B2AABB{
		LowerBound: box2d.MakeB2Vec2(center.X-radius, center.Y-radius),
		UpperBound: box2d.MakeB2Vec2(center.X+radius, center.Y+radius),
	}
	seen := make(map[*box2d.B2Body]bool)
	w.w.QueryAABB(func(fixture *box2d.B2Fixture) bool {
		body := fixture.GetBody()
		if body.GetType() != box2d.B2BodyType.B2_dynamicBody || seen[body] {
			return true
		}
		seen[body] = true
		c := body.GetWorldCenter()
		dx, dy := c.X-center.X, c.Y-center.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > radius {
			return true
		}
		falloff := 1.0 - dist/radius
		var dir box2d.B2Vec2
		if dist > 1e-9 {
			dir = box2d.MakeB2Vec2(dx/dist, dy/dist)
		} else {
			dir = box2d.MakeB2Vec2(0, 1)
		}
		body.ApplyLinearImpulseToCenter(box2d.B2Vec2MulScalar(magnitude*falloff, dir), true)
		hit++
		return true
	}, aabb)
	return hit
}
