package world

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/game/movement"
	"github.com/Faultbox/midgard-nav/pkg/formats"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

var (
	_ movement.NavAgent   = (*Agent)(nil)
	_ movement.NavSampler = (*Agent)(nil)
)

// AgentConfig holds navigation agent settings.
type AgentConfig struct {
	CellSize         float32 // World units per grid cell
	Speed            float32 // Desired travel speed
	StoppingDistance float32 // Arrival radius reported to the controller
	ArriveEpsilon    float32 // Waypoint reach tolerance
}

// AgentConfigFrom converts loaded configuration.
func AgentConfigFrom(cfg config.NavigationConfig) AgentConfig {
	return AgentConfig{
		CellSize:         cfg.CellSize,
		Speed:            cfg.Speed,
		StoppingDistance: cfg.StoppingDistance,
		ArriveEpsilon:    cfg.ArriveEpsilon,
	}
}

// Agent moves a body along grid paths. Paths requested with SetDestination
// are computed on the next Update, so PathPending stays true until then.
type Agent struct {
	cfg    AgentConfig
	grid   *formats.NavGrid
	finder *PathFinder
	body   *math.Transform
	log    *zap.Logger

	destination math.Vec3
	pending     bool
	stopped     bool
	waypoints   []math.Vec3
	next        int
	gap         float32 // End of path to destination when the goal is unreachable
	velocity    math.Vec3
}

// NewAgent creates an agent driving body over grid.
func NewAgent(grid *formats.NavGrid, body *math.Transform, cfg AgentConfig, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	return &Agent{
		cfg:         cfg,
		grid:        grid,
		finder:      NewPathFinder(grid),
		body:        body,
		log:         log,
		destination: body.Position,
	}
}

// PathPending reports whether a requested path has not been computed yet.
func (a *Agent) PathPending() bool {
	return a.pending
}

// SetDestination requests a path to p.
func (a *Agent) SetDestination(p math.Vec3) {
	a.destination = p
	a.pending = true
}

// Destination returns the last requested goal.
func (a *Agent) Destination() math.Vec3 {
	return a.destination
}

// Halt stops the agent moving the body.
func (a *Agent) Halt() {
	a.stopped = true
}

// Resume lets the agent move the body again.
func (a *Agent) Resume() {
	a.stopped = false
}

// Stopped reports whether the agent is halted.
func (a *Agent) Stopped() bool {
	return a.stopped
}

// SetVelocity sets the actual travel velocity, usually from root motion.
func (a *Agent) SetVelocity(v math.Vec3) {
	a.velocity = v
}

// Velocity returns the actual travel velocity.
func (a *Agent) Velocity() math.Vec3 {
	return a.velocity
}

// StoppingDistance returns the configured arrival radius.
func (a *Agent) StoppingDistance() float32 {
	return a.cfg.StoppingDistance
}

// Waypoints returns the remaining path points.
func (a *Agent) Waypoints() []math.Vec3 {
	if a.next >= len(a.waypoints) {
		return nil
	}
	return a.waypoints[a.next:]
}

// DesiredVelocity points at the next waypoint at the configured speed.
func (a *Agent) DesiredVelocity() math.Vec3 {
	if a.next >= len(a.waypoints) {
		return math.Vec3{}
	}
	return a.waypoints[a.next].Sub(a.body.Position).Normalize().Scale(a.cfg.Speed)
}

// RemainingDistance is the length of the path still ahead of the body. For
// unreachable goals it includes the gap past the end of the path, so the
// body settles at the nearest reachable point without being reported arrived.
func (a *Agent) RemainingDistance() float32 {
	if a.next >= len(a.waypoints) {
		return a.gap
	}
	dist := a.gap + a.body.Position.Distance(a.waypoints[a.next])
	for i := a.next + 1; i < len(a.waypoints); i++ {
		dist += a.waypoints[i-1].Distance(a.waypoints[i])
	}
	return dist
}

// Update computes a pending path, then moves the body along it by the
// current velocity unless halted.
func (a *Agent) Update(dt float32) {
	if a.pending {
		a.plan()
		a.pending = false
	}

	a.skipReached()
	if a.stopped || dt <= 0 {
		return
	}

	step := a.velocity.Length() * dt
	for step > 0 && a.next < len(a.waypoints) {
		target := a.waypoints[a.next]
		dist := a.body.Position.Distance(target)
		if dist > step {
			a.body.Position = a.body.Position.MoveTowards(target, step)
			break
		}
		a.body.Position = target
		step -= dist
		a.next++
	}
}

// skipReached drops intermediate waypoints the body is on or has moved past,
// where past means closer to the following waypoint than the waypoint itself.
// The final waypoint is kept so RemainingDistance can reach zero.
func (a *Agent) skipReached() {
	for a.next < len(a.waypoints)-1 {
		cur, following := a.waypoints[a.next], a.waypoints[a.next+1]
		if a.body.Position.Distance(cur) > a.cfg.ArriveEpsilon &&
			a.body.Position.Distance(following) >= cur.Distance(following) {
			return
		}
		a.next++
	}
}

// plan converts a grid path into world waypoints ending at the destination,
// or at the reachable point nearest to it.
func (a *Agent) plan() {
	a.waypoints = a.waypoints[:0]
	a.next = 0
	a.gap = 0

	start := a.WorldToCell(a.body.Position)
	goal := a.WorldToCell(a.destination)
	end := a.destination

	path := a.finder.FindPath(start, goal)
	if path == nil {
		nearest, ok := a.finder.NearestReachable(start, goal)
		if !ok {
			// Off the grid entirely: head straight for the goal.
			a.waypoints = append(a.waypoints, a.destination)
			a.log.Debug("agent off grid, walking straight", zap.Stringer("destination", a.destination))
			return
		}
		path = a.finder.FindPath(start, nearest)
		end = a.CellCenter(nearest, a.destination.Y)
		a.gap = end.Distance(a.destination)
		a.log.Debug("destination unreachable, using nearest cell",
			zap.Stringer("destination", a.destination),
			zap.Stringer("end", end),
		)
	}

	// Interior cells only: the start cell is where the body already is and
	// the goal cell is replaced by the exact end point.
	for i := 1; i < len(path)-1; i++ {
		a.waypoints = append(a.waypoints, a.CellCenter(path[i], a.destination.Y))
	}
	a.waypoints = append(a.waypoints, end)

	a.log.Debug("path computed",
		zap.Int("waypoints", len(a.waypoints)),
		zap.Float32("length", a.RemainingDistance()),
	)
}

// SamplePosition returns the point on walkable ground nearest to p within
// maxDistance, measured on the XZ plane. Y is preserved.
func (a *Agent) SamplePosition(p math.Vec3, maxDistance float32) (math.Vec3, bool) {
	if a.grid == nil {
		return math.Vec3{}, false
	}
	c := a.WorldToCell(p)
	if a.grid.IsWalkable(c[0], c[1]) {
		return p, true
	}

	cs := a.cfg.CellSize
	reach := int(gomath.Ceil(float64(maxDistance/cs))) + 1
	best := math.Vec3{}
	bestDist := float32(gomath.MaxFloat32)
	found := false

	for y := c[1] - reach; y <= c[1]+reach; y++ {
		for x := c[0] - reach; x <= c[0]+reach; x++ {
			if !a.grid.IsWalkable(x, y) {
				continue
			}
			q := a.closestInCell(Cell{x, y}, p)
			if d := q.Distance(p); d <= maxDistance && d < bestDist {
				best, bestDist, found = q, d, true
			}
		}
	}
	return best, found
}

// closestInCell clamps p into a cell, kept just inside its edges so the
// result maps back to the same cell.
func (a *Agent) closestInCell(c Cell, p math.Vec3) math.Vec3 {
	cs := a.cfg.CellSize
	inset := cs * 1e-3
	minX, minZ := float32(c[0])*cs+inset, float32(c[1])*cs+inset
	maxX, maxZ := float32(c[0]+1)*cs-inset, float32(c[1]+1)*cs-inset
	return math.Vec3{X: clamp(p.X, minX, maxX), Y: p.Y, Z: clamp(p.Z, minZ, maxZ)}
}

// WorldToCell converts a world position to its grid cell.
func (a *Agent) WorldToCell(p math.Vec3) Cell {
	cs := a.cfg.CellSize
	return Cell{
		int(gomath.Floor(float64(p.X / cs))),
		int(gomath.Floor(float64(p.Z / cs))),
	}
}

// CellCenter converts a grid cell to the world position of its center at height y.
func (a *Agent) CellCenter(c Cell, y float32) math.Vec3 {
	cs := a.cfg.CellSize
	return math.Vec3{X: (float32(c[0]) + 0.5) * cs, Y: y, Z: (float32(c[1]) + 0.5) * cs}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
