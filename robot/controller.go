package robot

import (
	"log"

	"github.com/milk9111/ybot/anim"
)

// Range names in the YBot asset.
const (
	RangeIdle        = "YBot_Idle"
	RangeWalk        = "YBot_Walk"
	RangeRun         = "YBot_Run"
	RangeStrafeLeft  = "YBot_LeftStrafeWalk"
	RangeStrafeRight = "YBot_RightStrafeWalk"

	strafeWeight = 0.5
)

// MotionState is the motion the controller last put on screen.
type MotionState int

const (
	Idle MotionState = iota
	Walking
	StrafingLeft
	StrafingRight
)

func (m MotionState) String() string {
	switch m {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case StrafingLeft:
		return "strafing left"
	case StrafingRight:
		return "strafing right"
	default:
		return "unknown"
	}
}

// Engine is the playback surface the controller drives. *anim.Scene
// implements it.
type Engine interface {
	BeginAnimation(skel *anim.Skeleton, from, to float64, loop bool) *anim.Playback
	BeginWeightedAnimation(skel *anim.Skeleton, from, to, weight float64, loop bool) *anim.Playback
	StopAnimation(skel *anim.Skeleton)
}

// Ranges holds the resolved animation ranges. A nil field means the range
// is not loaded yet.
type Ranges struct {
	Idle        *anim.Range
	Walk        *anim.Range
	Run         *anim.Range
	StrafeLeft  *anim.Range
	StrafeRight *anim.Range
}

// Resolved returns how many of the five ranges are available.
func (r Ranges) Resolved() int {
	n := 0
	for _, rng := range []*anim.Range{r.Idle, r.Walk, r.Run, r.StrafeLeft, r.StrafeRight} {
		if rng != nil {
			n++
		}
	}
	return n
}

// Controller turns motion requests into looping playbacks on one skeleton.
// Requests whose ranges are not loaded do nothing.
type Controller struct {
	engine   Engine
	skeleton *anim.Skeleton
	ranges   Ranges
	state    MotionState
}

func NewController(engine Engine) *Controller {
	return &Controller{engine: engine}
}

// Bind attaches a loaded skeleton, resolves its ranges and starts idling.
// Binding again (asset reload) replaces the previous skeleton. Without an
// idle range the current motion and its state are left alone.
func (c *Controller) Bind(skel *anim.Skeleton) {
	if c == nil {
		return
	}
	if c.skeleton != nil && c.skeleton != skel && c.engine != nil {
		c.engine.StopAnimation(c.skeleton)
		c.state = Idle
	}

	c.skeleton = skel
	if skel == nil {
		c.ranges = Ranges{}
		return
	}
	c.ranges = Ranges{
		Idle:        skel.Range(RangeIdle),
		Walk:        skel.Range(RangeWalk),
		Run:         skel.Range(RangeRun),
		StrafeLeft:  skel.Range(RangeStrafeLeft),
		StrafeRight: skel.Range(RangeStrafeRight),
	}
	if n := c.ranges.Resolved(); n < 5 {
		log.Printf("robot: skeleton %q resolved %d/5 animation ranges", skel.Name, n)
	}
	c.Stop()
}

// Skeleton returns the bound skeleton, or nil before the asset loads.
func (c *Controller) Skeleton() *anim.Skeleton {
	if c == nil {
		return nil
	}
	return c.skeleton
}

func (c *Controller) Ranges() Ranges {
	if c == nil {
		return Ranges{}
	}
	return c.ranges
}

func (c *Controller) State() MotionState {
	if c == nil {
		return Idle
	}
	return c.state
}

// Walk plays the walk cycle at full weight, replacing the current motion.
func (c *Controller) Walk() {
	if !c.ready() || c.ranges.Walk == nil {
		return
	}
	walk := c.ranges.Walk
	c.engine.BeginAnimation(c.skeleton, walk.From, walk.To, true)
	c.state = Walking
}

// StrafeLeft blends walk and left strafe half and half.
func (c *Controller) StrafeLeft() {
	if c.strafe(c.Ranges().StrafeLeft) {
		c.state = StrafingLeft
	}
}

// StrafeRight blends walk and right strafe half and half.
func (c *Controller) StrafeRight() {
	if c.strafe(c.Ranges().StrafeRight) {
		c.state = StrafingRight
	}
}

// Stop returns to the idle loop.
func (c *Controller) Stop() {
	if !c.ready() || c.ranges.Idle == nil {
		return
	}
	idle := c.ranges.Idle
	c.engine.BeginAnimation(c.skeleton, idle.From, idle.To, true)
	c.state = Idle
}

// strafe runs walk as the master track and side as its follower. It
// reports whether anything was played.
func (c *Controller) strafe(side *anim.Range) bool {
	if !c.ready() || c.ranges.Walk == nil || side == nil {
		return false
	}
	walk := c.ranges.Walk

	c.engine.StopAnimation(c.skeleton)
	walkAnim := c.engine.BeginWeightedAnimation(c.skeleton, walk.From, walk.To, strafeWeight, true)
	sideAnim := c.engine.BeginWeightedAnimation(c.skeleton, side.From, side.To, strafeWeight, true)

	walkAnim.SyncWith(nil)
	sideAnim.SyncWith(walkAnim)
	return true
}

func (c *Controller) ready() bool {
	return c != nil && c.engine != nil && c.skeleton != nil
}
