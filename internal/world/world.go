// Package world is a small in-memory dynamics world implementing host.World.
// It integrates body velocities with a fixed step and can inject a seeded
// disturbance (vertical sag, roll/pitch wobble) so plugins that correct drift
// have drift to correct. It is deliberately not a collision solver.
package world

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/sweepsim/internal/host"
	"github.com/san-kum/sweepsim/internal/spatial"
)

type body struct {
	name   string
	pos    spatial.Vec3
	rot    spatial.Mat3
	linVel spatial.Vec3
	angVel spatial.Vec3
	joints map[host.JointID]struct{}
}

// Disturbance perturbs a stepped body in place, standing in for the
// interpenetration and numerical drift a full physics pipeline produces.
type Disturbance struct {
	// Sag is the per-step vertical sink in meters.
	Sag float64
	// Wobble is the magnitude of random roll/pitch injected per step, radians.
	Wobble float64
}

type World struct {
	nextBody  host.BodyID
	nextJoint host.JointID
	bodies    map[host.BodyID]*body
	byName    map[string]host.BodyID
	joints    map[host.JointID]host.BodyID
	disturb   Disturbance
	rng       *rand.Rand
}

func New(seed int64) *World {
	return &World{
		bodies: make(map[host.BodyID]*body),
		byName: make(map[string]host.BodyID),
		joints: make(map[host.JointID]host.BodyID),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (w *World) SetDisturbance(d Disturbance) { w.disturb = d }

// AddBody creates a body at pos with identity orientation. Adding a body
// under an existing name replaces it, which changes the returned identity —
// exactly what a reset looks like to a plugin.
func (w *World) AddBody(name string, pos spatial.Vec3) host.BodyID {
	if old, ok := w.byName[name]; ok {
		w.RemoveBody(old)
	}
	w.nextBody++
	id := w.nextBody
	w.bodies[id] = &body{
		name:   name,
		pos:    pos,
		rot:    spatial.Identity(),
		joints: make(map[host.JointID]struct{}),
	}
	w.byName[name] = id
	return id
}

// RemoveBody deletes the body and destroys every joint attached to it, per
// the host invalidation contract.
func (w *World) RemoveBody(id host.BodyID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	for j := range b.joints {
		delete(w.joints, j)
	}
	delete(w.byName, b.name)
	delete(w.bodies, id)
}

func (w *World) BodyByName(name string) (host.BodyID, bool) {
	id, ok := w.byName[name]
	return id, ok
}

func (w *World) Position(id host.BodyID) spatial.Vec3 {
	if b, ok := w.bodies[id]; ok {
		return b.pos
	}
	return spatial.Vec3{}
}

func (w *World) SetPosition(id host.BodyID, p spatial.Vec3) {
	if b, ok := w.bodies[id]; ok {
		b.pos = p
	}
}

func (w *World) Rotation(id host.BodyID) spatial.Mat3 {
	if b, ok := w.bodies[id]; ok {
		return b.rot
	}
	return spatial.Identity()
}

func (w *World) SetRotation(id host.BodyID, r spatial.Mat3) {
	if b, ok := w.bodies[id]; ok {
		b.rot = r
	}
}

func (w *World) LinearVelocity(id host.BodyID) spatial.Vec3 {
	if b, ok := w.bodies[id]; ok {
		return b.linVel
	}
	return spatial.Vec3{}
}

func (w *World) SetLinearVelocity(id host.BodyID, v spatial.Vec3) {
	if b, ok := w.bodies[id]; ok {
		b.linVel = v
	}
}

func (w *World) AngularVelocity(id host.BodyID) spatial.Vec3 {
	if b, ok := w.bodies[id]; ok {
		return b.angVel
	}
	return spatial.Vec3{}
}

func (w *World) SetAngularVelocity(id host.BodyID, v spatial.Vec3) {
	if b, ok := w.bodies[id]; ok {
		b.angVel = v
	}
}

func (w *World) CreatePlaneJoint(id host.BodyID) (host.JointID, error) {
	b, ok := w.bodies[id]
	if !ok {
		return 0, fmt.Errorf("body %d not in world", id)
	}
	w.nextJoint++
	j := w.nextJoint
	w.joints[j] = id
	b.joints[j] = struct{}{}
	return j, nil
}

func (w *World) DestroyJoint(j host.JointID) {
	id, ok := w.joints[j]
	if !ok {
		return
	}
	if b, ok := w.bodies[id]; ok {
		delete(b.joints, j)
	}
	delete(w.joints, j)
}

// JointCount reports live joints, for tests and observability.
func (w *World) JointCount() int { return len(w.joints) }

// ResetPhysics zeroes a body's velocities, as a host does after teleporting it.
func (w *World) ResetPhysics(id host.BodyID) {
	if b, ok := w.bodies[id]; ok {
		b.linVel = spatial.Vec3{}
		b.angVel = spatial.Vec3{}
	}
}

// Step integrates all bodies by dt and applies the configured disturbance.
// Yaw rate rotates the orientation about the vertical axis; roll/pitch rates
// are left to the disturbance model.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.pos = b.pos.Add(b.linVel.Scale(dt))
		if b.angVel.Z != 0 {
			b.rot = spatial.RotationAboutZ(b.angVel.Z * dt).Mul(b.rot)
		}
		if w.disturb.Sag != 0 {
			b.pos.Z -= w.disturb.Sag
		}
		if w.disturb.Wobble != 0 {
			roll := (w.rng.Float64()*2 - 1) * w.disturb.Wobble
			pitch := (w.rng.Float64()*2 - 1) * w.disturb.Wobble
			b.rot = spatial.RotationAboutX(roll).Mul(spatial.RotationAboutY(pitch)).Mul(b.rot)
			b.angVel.X += roll / dt
			b.angVel.Y += pitch / dt
		}
	}
}
