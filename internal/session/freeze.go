package session

import "github.com/kvistberg/arena2d/internal/engine"

// freezeRecord captures enough state to suspend a body and later restore
// its motion exactly.
type freezeRecord struct {
	until       float64
	savedLinVel engine.Vec2
	savedAngVel float64
	savedSleep  bool
	joint       engine.JointID
	hasMotor    bool
	savedMotor  engine.MotorState
}

// Freezer is the sparse set of active temporary-immobilization records.
// At most one record exists per body; re-freezing extends, never shortens.
type Freezer struct {
	world *engine.World
	// tuning points at the owning session's live tuning so a mid-match
	// change to the restore ceiling applies to freezes already in flight.
	tuning  *Tuning
	records map[engine.BodyID]*freezeRecord
}

func newFreezer(world *engine.World, tuning *Tuning) *Freezer {
	return &Freezer{
		world:   world,
		tuning:  tuning,
		records: make(map[engine.BodyID]*freezeRecord),
	}
}

// Freeze suspends a body for duration seconds. If the body is already
// frozen the end-time extends to the later of the two deadlines and the
// saved state is left untouched; re-capturing would overwrite the restore
// values with the already-zeroed velocity.
func (f *Freezer) Freeze(body engine.BodyID, joint engine.JointID, duration, now float64) {
	if !f.world.IsValidBody(body) {
		return
	}
	if rec, ok := f.records[body]; ok {
		if now+duration > rec.until {
			rec.until = now + duration
		}
		return
	}

	rec := &freezeRecord{
		until:       now + duration,
		savedLinVel: f.world.LinearVelocity(body),
		savedAngVel: f.world.AngularVelocity(body),
		savedSleep:  f.world.SleepEnabled(body),
		joint:       joint,
	}
	if joint != 0 && f.world.IsValidJoint(joint) {
		rec.hasMotor = true
		rec.savedMotor = f.world.Motor(joint)
	}
	f.records[body] = rec

	f.world.SetLinearVelocity(body, engine.Vec2{})
	f.world.SetAngularVelocity(body, 0)
	if rec.hasMotor {
		f.world.SetMotor(joint, engine.MotorState{})
	}
	f.world.SetSleepEnabled(body, true)
	f.world.SetAwake(body, false)
}

// Frozen reports whether a body currently has an active freeze record.
func (f *Freezer) Frozen(body engine.BodyID) bool {
	_, ok := f.records[body]
	return ok
}

// Until returns the end-time of a body's freeze record.
func (f *Freezer) Until(body engine.BodyID) (float64, bool) {
	if rec, ok := f.records[body]; ok {
		return rec.until, true
	}
	return 0, false
}

// Enforce re-asserts the suspended state of every active record. The
// solver or another system may have woken the body or re-enabled its motor
// mid-step; this runs before the integration step and again afterward as a
// safety net.
func (f *Freezer) Enforce(now float64) {
	for body, rec := range f.records {
		if now >= rec.until {
			continue
		}
		if !f.world.IsValidBody(body) {
			delete(f.records, body)
			continue
		}
		f.world.SetLinearVelocity(body, engine.Vec2{})
		f.world.SetAngularVelocity(body, 0)
		if rec.hasMotor && f.world.IsValidJoint(rec.joint) {
			f.world.SetMotor(rec.joint, engine.MotorState{})
		}
		f.world.SetAwake(body, false)
	}
}

// Expire restores every record whose end-time has passed. Saved velocities
// are clamped to the restore ceiling first so an impulse accumulated while
// frozen cannot produce an extreme unfreeze kick.
func (f *Freezer) Expire(now float64) {
	max := f.tuning.MaxRestoreSpeed
	for body, rec := range f.records {
		if now < rec.until {
			continue
		}
		delete(f.records, body)
		if !f.world.IsValidBody(body) {
			continue
		}
		f.world.SetSleepEnabled(body, rec.savedSleep)
		f.world.SetLinearVelocity(body, clampVec(rec.savedLinVel, max))
		f.world.SetAngularVelocity(body, clampScalar(rec.savedAngVel, max))
		if rec.hasMotor && f.world.IsValidJoint(rec.joint) {
			f.world.SetMotor(rec.joint, rec.savedMotor)
		}
		f.world.SetAwake(body, true)
	}
}

// Drop discards a body's record without restoring anything. Used when the
// body itself is being purged.
func (f *Freezer) Drop(body engine.BodyID) {
	delete(f.records, body)
}

func clampVec(v engine.Vec2, max float64) engine.Vec2 {
	length := v.Length()
	if length <= max || length == 0 {
		return v
	}
	return v.Scale(max / length)
}

func clampScalar(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
