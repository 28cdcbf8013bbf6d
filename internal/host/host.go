// Package host defines the callback contract between the simulator loop and
// physics plugins, plus the world primitives a plugin may consume.
//
// The host calls the four entry points synchronously, one at a time: [Plugin.Init]
// once before stepping, [Plugin.Step] once per tick after integration,
// [Plugin.Collide] per potential contact pair, and [Plugin.Cleanup] at teardown
// or reset. Plugins run inline in the fixed-step loop and must return promptly.
package host

import "github.com/san-kum/sweepsim/internal/spatial"

// BodyID is an opaque token for a rigid body owned by the host world.
// Equality is defined by the host that minted it; comparing two IDs with ==
// is O(1) and detects body replacement after a reset. The zero value means
// no body.
type BodyID uint64

// JointID identifies a joint owned by the host world. Zero means no joint.
type JointID uint64

// GeomID identifies a collision geometry in a contact pair.
type GeomID uint64

// CollisionAction selects how the host resolves a contact pair.
type CollisionAction int

const (
	// CollideDefault defers to the host's default collision handling.
	CollideDefault CollisionAction = iota
	// CollideCustom tells the host the plugin handled the pair itself.
	CollideCustom
)

// Plugin is the fixed callback contract. Implementations keep per-run state
// in their own struct and reset it in Cleanup so a subsequent run starts
// clean; the host guarantees no reentrancy.
type Plugin interface {
	Init(w World)
	Step(w World) error
	Collide(a, b GeomID) CollisionAction
	Cleanup(w World)
}

// World is the set of host primitives available to plugins.
//
// Invalidation contract: when the host removes a body, every joint attached
// to it is destroyed by the host. A stale JointID held past that point is
// harmless; DestroyJoint on it is a no-op.
type World interface {
	// BodyByName looks up a body by its fixed identifier. ok is false while
	// the body has not been created yet or after it was removed; absence is
	// a normal state, not an error.
	BodyByName(name string) (id BodyID, ok bool)

	Position(b BodyID) spatial.Vec3
	SetPosition(b BodyID, p spatial.Vec3)

	Rotation(b BodyID) spatial.Mat3
	SetRotation(b BodyID, r spatial.Mat3)

	AngularVelocity(b BodyID) spatial.Vec3
	SetAngularVelocity(b BodyID, w spatial.Vec3)

	// CreatePlaneJoint creates a planar (2-DOF-in-plane) joint in the body's
	// world and attaches it between the body and the fixed frame.
	CreatePlaneJoint(b BodyID) (JointID, error)
	DestroyJoint(j JointID)
}
