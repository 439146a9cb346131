package movement

import (
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// fakeAgent is a scripted navigation provider.
type fakeAgent struct {
	pending   bool
	desired   math.Vec3
	remaining float32
	stopping  float32

	destination  math.Vec3
	destinations int
	halts        int
	resumes      int
	velocity     math.Vec3
	velocitySets int
}

func (a *fakeAgent) PathPending() bool          { return a.pending }
func (a *fakeAgent) DesiredVelocity() math.Vec3 { return a.desired }
func (a *fakeAgent) RemainingDistance() float32 { return a.remaining }
func (a *fakeAgent) StoppingDistance() float32  { return a.stopping }
func (a *fakeAgent) Halt()                      { a.halts++ }
func (a *fakeAgent) Resume()                    { a.resumes++ }

func (a *fakeAgent) SetDestination(p math.Vec3) {
	a.destination = p
	a.destinations++
}

func (a *fakeAgent) SetVelocity(v math.Vec3) {
	a.velocity = v
	a.velocitySets++
}

// fakeAnimator records speed parameter writes.
type fakeAnimator struct {
	tag      string
	delta    math.Vec3
	speed    float32
	damp     float32
	dt       float32
	speedSet int
}

func (a *fakeAnimator) SetSpeedParameter(value, dampTime, dt float32) {
	a.speed = value
	a.damp = dampTime
	a.dt = dt
	a.speedSet++
}

func (a *fakeAnimator) CurrentStateTag() string { return a.tag }
func (a *fakeAnimator) MotionDelta() math.Vec3  { return a.delta }

// fakeSampler snaps every point within reach onto y = 0.
type fakeSampler struct {
	reach   float32
	asked   float32
	samples int
}

func (s *fakeSampler) SamplePosition(p math.Vec3, maxDistance float32) (math.Vec3, bool) {
	s.samples++
	s.asked = maxDistance
	if p.Y > s.reach {
		return math.Vec3{}, false
	}
	return math.Vec3{X: p.X, Y: 0, Z: p.Z}, true
}

// fakeInteractable counts interactions.
type fakeInteractable struct {
	position   math.Vec3
	rotation   math.Quat
	interacts  int
	onInteract func()
}

func (f *fakeInteractable) InteractionAnchor() (math.Vec3, math.Quat) {
	return f.position, f.rotation
}

func (f *fakeInteractable) Interact() {
	f.interacts++
	if f.onInteract != nil {
		f.onInteract()
	}
}

type harness struct {
	body     *math.Transform
	agent    *fakeAgent
	animator *fakeAnimator
	sampler  *fakeSampler
	ctrl     *Controller
}

func newHarness(t interface{ Fatalf(string, ...any) }, mutate ...func(*Settings)) *harness {
	settings := DefaultSettings()
	for _, m := range mutate {
		m(&settings)
	}

	h := &harness{
		body:     &math.Transform{Rotation: math.QuatIdentity()},
		agent:    &fakeAgent{stopping: 2},
		animator: &fakeAnimator{tag: settings.LocomotionTag},
		sampler:  &fakeSampler{reach: 1},
	}
	ctrl, err := New(Deps{
		Body:     h.body,
		Agent:    h.agent,
		Animator: h.animator,
		NavMesh:  h.sampler,
	}, settings)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	h.ctrl = ctrl
	return h
}
