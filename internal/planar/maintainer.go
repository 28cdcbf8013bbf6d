// Package planar constrains a dynamically-appearing rigid body to planar
// motion: fixed height above the ground, yaw-only orientation, yaw-only
// angular velocity. The constraint is re-applied every step, so no epsilon
// handling is needed; drift never accumulates.
package planar

import (
	"fmt"

	"github.com/san-kum/sweepsim/internal/host"
	"github.com/san-kum/sweepsim/internal/spatial"
)

// DefaultGroundHeight is the resting Z of the vacuum body above the floor.
const DefaultGroundHeight = 0.0442

type Config struct {
	// BodyName is the fixed identifier the body is looked up by each step.
	BodyName string
	// GroundHeight overwrites the body's vertical coordinate every step.
	GroundHeight float64
	// Convention names the matrix layout yaw is extracted under.
	Convention spatial.YawConvention
}

func DefaultConfig(bodyName string) Config {
	return Config{
		BodyName:     bodyName,
		GroundHeight: DefaultGroundHeight,
		Convention:   spatial.RowMajorZUp,
	}
}

// Maintainer tracks at most one body and keeps at most one plane joint alive
// for it. All state lives on the instance, so independent maintainers can
// coexist and tests need no globals.
type Maintainer struct {
	cfg   Config
	body  host.BodyID
	joint host.JointID
	world host.World
}

func New(cfg Config) *Maintainer {
	return &Maintainer{cfg: cfg}
}

// Init is a no-op: the body is added to the world after stepping begins, so
// setup is deferred to per-step checks.
func (m *Maintainer) Init(w host.World) {}

func (m *Maintainer) Step(w host.World) error {
	body, ok := w.BodyByName(m.cfg.BodyName)
	if !ok {
		// Body removed. The host destroys joints attached to removed
		// bodies, so only the references are dropped here.
		m.body, m.joint, m.world = 0, 0, nil
		return nil
	}

	if body != m.body {
		// First appearance, or a new instance after a reset.
		if m.joint != 0 {
			m.world.DestroyJoint(m.joint)
			m.joint = 0
		}
		joint, err := w.CreatePlaneJoint(body)
		if err != nil {
			m.body, m.joint, m.world = 0, 0, nil
			return fmt.Errorf("attach plane joint to %q: %w", m.cfg.BodyName, err)
		}
		m.body, m.joint, m.world = body, joint, w
	}

	// The plane joint locks the body to Z=0; put it back at ground level,
	// keeping the horizontal coordinates exactly.
	pos := w.Position(body)
	pos.Z = m.cfg.GroundHeight
	w.SetPosition(body, pos)

	// Force upright: keep yaw, discard roll and pitch.
	yaw := spatial.Yaw(w.Rotation(body), m.cfg.Convention)
	w.SetRotation(body, spatial.RotationAboutZ(yaw))

	avel := w.AngularVelocity(body)
	w.SetAngularVelocity(body, spatial.Vec3{Z: avel.Z})

	return nil
}

func (m *Maintainer) Collide(a, b host.GeomID) host.CollisionAction {
	return host.CollideDefault
}

func (m *Maintainer) Cleanup(w host.World) {
	if m.joint != 0 && m.world != nil {
		m.world.DestroyJoint(m.joint)
	}
	m.body, m.joint, m.world = 0, 0, nil
}

// Tracking reports the currently tracked body and joint, for observability.
func (m *Maintainer) Tracking() (host.BodyID, host.JointID) {
	return m.body, m.joint
}
