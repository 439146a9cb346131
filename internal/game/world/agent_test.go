package world

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-nav/pkg/formats"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func newTestAgent(t *testing.T, rows []string, start math.Vec3) (*Agent, *math.Transform) {
	t.Helper()
	grid, err := formats.ParseNavGrid(rows)
	if err != nil {
		t.Fatalf("ParseNavGrid failed: %v", err)
	}
	body := &math.Transform{Position: start, Rotation: math.QuatIdentity()}
	agent := NewAgent(grid, body, AgentConfig{
		CellSize:         1,
		Speed:            3,
		StoppingDistance: 0.5,
		ArriveEpsilon:    0.01,
	}, nil)
	return agent, body
}

var openRoom = []string{
	"......",
	"......",
	"......",
	"......",
}

func TestAgent_PathPendingUntilUpdate(t *testing.T) {
	agent, _ := newTestAgent(t, openRoom, math.Vec3{X: 0.5, Z: 0.5})

	if agent.PathPending() {
		t.Fatal("fresh agent should not be pending")
	}
	if agent.RemainingDistance() != 0 {
		t.Errorf("fresh agent remaining = %v, want 0", agent.RemainingDistance())
	}

	agent.SetDestination(math.Vec3{X: 4.5, Z: 0.5})
	if !agent.PathPending() {
		t.Fatal("expected pending after SetDestination")
	}

	agent.Update(0)
	if agent.PathPending() {
		t.Error("path should be computed on update")
	}
	if !approx(agent.RemainingDistance(), 4) {
		t.Errorf("remaining = %v, want 4", agent.RemainingDistance())
	}
	wps := agent.Waypoints()
	if wps[len(wps)-1] != (math.Vec3{X: 4.5, Z: 0.5}) {
		t.Errorf("path should end at the destination, got %v", wps[len(wps)-1])
	}
}

func TestAgent_DesiredVelocity(t *testing.T) {
	agent, _ := newTestAgent(t, openRoom, math.Vec3{X: 0.5, Z: 0.5})
	if !agent.DesiredVelocity().IsZero() {
		t.Error("no path should mean no desired velocity")
	}

	agent.SetDestination(math.Vec3{X: 4.5, Z: 0.5})
	agent.Update(0)

	v := agent.DesiredVelocity()
	if !approx(v.Length(), 3) {
		t.Errorf("desired speed = %v, want 3", v.Length())
	}
	if v.X <= 0 {
		t.Errorf("desired velocity should point toward +X, got %v", v)
	}
}

func TestAgent_MovesByVelocity(t *testing.T) {
	agent, body := newTestAgent(t, openRoom, math.Vec3{X: 0.5, Z: 0.5})
	agent.SetDestination(math.Vec3{X: 4.5, Z: 0.5})
	agent.Update(0)

	agent.SetVelocity(math.Vec3{Z: 2}) // only the magnitude is used
	agent.Update(0.5)

	if !approx(body.Position.X, 1.5) || !approx(body.Position.Z, 0.5) {
		t.Errorf("body = %v, want (1.5, 0, 0.5)", body.Position)
	}
	if !approx(agent.RemainingDistance(), 3) {
		t.Errorf("remaining = %v, want 3", agent.RemainingDistance())
	}

	// Overshooting velocity stops exactly at the goal
	agent.SetVelocity(math.Vec3{X: 100})
	agent.Update(1)
	if body.Position != (math.Vec3{X: 4.5, Z: 0.5}) {
		t.Errorf("body = %v, want exactly the destination", body.Position)
	}
	if agent.RemainingDistance() != 0 {
		t.Errorf("remaining = %v, want 0", agent.RemainingDistance())
	}
}

func TestAgent_HaltAndResume(t *testing.T) {
	agent, body := newTestAgent(t, openRoom, math.Vec3{X: 0.5, Z: 0.5})
	agent.SetDestination(math.Vec3{X: 4.5, Z: 0.5})
	agent.SetVelocity(math.Vec3{X: 1})

	agent.Halt()
	agent.Update(1)
	if body.Position != (math.Vec3{X: 0.5, Z: 0.5}) {
		t.Errorf("halted agent moved body to %v", body.Position)
	}
	if agent.PathPending() {
		t.Error("halted agent should still plan")
	}

	agent.Resume()
	agent.Update(1)
	if !approx(body.Position.X, 1.5) {
		t.Errorf("resumed agent should move, body at %v", body.Position)
	}
}

func TestAgent_PathAvoidsWalls(t *testing.T) {
	rows := []string{
		"......",
		"..#...",
		"..#...",
		"..#...",
	}
	agent, body := newTestAgent(t, rows, math.Vec3{X: 0.5, Z: 3.5})
	agent.SetDestination(math.Vec3{X: 4.5, Z: 3.5})
	agent.Update(0)

	for _, wp := range agent.Waypoints() {
		c := agent.WorldToCell(wp)
		if !agent.grid.IsWalkable(c[0], c[1]) {
			t.Errorf("waypoint %v lies in blocked cell %v", wp, c)
		}
	}
	if agent.RemainingDistance() <= body.Position.Distance(math.Vec3{X: 4.5, Z: 3.5}) {
		t.Error("detour should be longer than the straight line")
	}
}

func TestAgent_UnreachableGoal(t *testing.T) {
	rows := []string{
		"...#..",
		"...#..",
		"...#..",
	}
	agent, body := newTestAgent(t, rows, math.Vec3{X: 0.5, Z: 1.5})
	agent.SetDestination(math.Vec3{X: 5.5, Z: 1.5})
	agent.Update(0)

	agent.SetVelocity(math.Vec3{X: 50})
	agent.Update(1)

	if body.Position != (math.Vec3{X: 2.5, Z: 1.5}) {
		t.Errorf("body should settle at nearest reachable cell, got %v", body.Position)
	}
	if !approx(agent.RemainingDistance(), 3) {
		t.Errorf("remaining should report the gap to the goal, got %v", agent.RemainingDistance())
	}
}

func TestAgent_SamplePosition(t *testing.T) {
	rows := []string{
		"....",
		"....",
		"##..",
		"##..",
	}
	agent, _ := newTestAgent(t, rows, math.Vec3{})

	// On walkable ground: unchanged
	p := math.Vec3{X: 2.2, Y: 0.3, Z: 0.7}
	if got, ok := agent.SamplePosition(p, 1); !ok || got != p {
		t.Errorf("SamplePosition(walkable) = %v, %v; want %v, true", got, ok, p)
	}

	// Blocked cell next to walkable ground: pulled onto the edge
	got, ok := agent.SamplePosition(math.Vec3{X: 1.5, Z: 2.5}, 1)
	if !ok {
		t.Fatal("expected a sample within reach")
	}
	if c := agent.WorldToCell(got); !agent.grid.IsWalkable(c[0], c[1]) {
		t.Errorf("sample %v is not walkable", got)
	}
	if d := got.Distance(math.Vec3{X: 1.5, Z: 2.5}); d > 0.51 {
		t.Errorf("sample %v is %v away, want about 0.5", got, d)
	}

	// Too far from any walkable cell
	if _, ok := agent.SamplePosition(math.Vec3{X: 0.5, Z: 3.5}, 0.5); ok {
		t.Error("expected no sample within 0.5")
	}
}

func TestAgent_OffGridWalksStraight(t *testing.T) {
	agent, _ := newTestAgent(t, openRoom, math.Vec3{X: -5, Z: -5})
	agent.SetDestination(math.Vec3{X: 1.5, Z: 1.5})
	agent.Update(0)

	wps := agent.Waypoints()
	if len(wps) != 1 || wps[0] != (math.Vec3{X: 1.5, Z: 1.5}) {
		t.Errorf("expected a single straight waypoint, got %v", wps)
	}
}

func TestAgent_SkipsWaypointsLeftBehind(t *testing.T) {
	agent, body := newTestAgent(t, openRoom, math.Vec3{X: 0.5, Z: 0.5})
	agent.SetDestination(math.Vec3{X: 4.5, Z: 0.5})
	agent.Update(0)
	agent.Halt()

	// Moved by someone else, slightly off the first waypoint
	body.Position = math.Vec3{X: 1.6, Z: 0.52}
	agent.Update(0)

	wps := agent.Waypoints()
	if len(wps) != 3 || wps[0] != (math.Vec3{X: 2.5, Z: 0.5}) {
		t.Fatalf("waypoints = %v, want the first one dropped", wps)
	}
	if d := agent.RemainingDistance(); d < 2.89 || d > 2.91 {
		t.Errorf("remaining = %v, want about 2.9", d)
	}
}
