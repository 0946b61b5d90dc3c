package robot

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/milk9111/ybot/anim"
)

// recordingEngine logs every engine call and forwards to a real scene so the
// returned playbacks behave normally.
type recordingEngine struct {
	scene *anim.Scene
	calls []string
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{scene: anim.NewScene()}
}

func (r *recordingEngine) BeginAnimation(skel *anim.Skeleton, from, to float64, loop bool) *anim.Playback {
	r.calls = append(r.calls, fmt.Sprintf("begin %v-%v loop=%v", from, to, loop))
	return r.scene.BeginAnimation(skel, from, to, loop)
}

func (r *recordingEngine) BeginWeightedAnimation(skel *anim.Skeleton, from, to, weight float64, loop bool) *anim.Playback {
	r.calls = append(r.calls, fmt.Sprintf("weighted %v-%v w=%v loop=%v", from, to, weight, loop))
	return r.scene.BeginWeightedAnimation(skel, from, to, weight, loop)
}

func (r *recordingEngine) StopAnimation(skel *anim.Skeleton) {
	r.calls = append(r.calls, "stop")
	r.scene.StopAnimation(skel)
}

func (r *recordingEngine) reset() {
	r.calls = nil
}

func robotSkeleton(names ...string) *anim.Skeleton {
	frames := map[string]anim.Range{
		RangeIdle:        {Name: RangeIdle, From: 0, To: 59},
		RangeWalk:        {Name: RangeWalk, From: 60, To: 120},
		RangeRun:         {Name: RangeRun, From: 121, To: 161},
		RangeStrafeLeft:  {Name: RangeStrafeLeft, From: 162, To: 222},
		RangeStrafeRight: {Name: RangeStrafeRight, From: 223, To: 283},
	}
	if len(names) == 0 {
		names = []string{RangeIdle, RangeWalk, RangeRun, RangeStrafeLeft, RangeStrafeRight}
	}
	ranges := make([]anim.Range, 0, len(names))
	for _, n := range names {
		ranges = append(ranges, frames[n])
	}
	return anim.NewSkeleton("ybot", 60, []anim.Bone{{Name: "hips", Parent: -1}}, ranges)
}

func TestControllerBind(t *testing.T) {
	eng := newRecordingEngine()
	c := NewController(eng)
	skel := robotSkeleton()
	c.Bind(skel)

	if got := c.Ranges().Resolved(); got != 5 {
		t.Fatalf("expected 5 resolved ranges, got %d", got)
	}
	if want := []string{"begin 0-59 loop=true"}; !reflect.DeepEqual(eng.calls, want) {
		t.Fatalf("expected idle on bind, got %v", eng.calls)
	}
	if c.State() != Idle || c.Skeleton() != skel {
		t.Fatalf("expected idle state with bound skeleton")
	}

	eng.reset()
	next := robotSkeleton()
	c.Bind(next)
	if want := []string{"stop", "begin 0-59 loop=true"}; !reflect.DeepEqual(eng.calls, want) {
		t.Fatalf("rebinding should stop the old skeleton, got %v", eng.calls)
	}
	if len(eng.scene.Playbacks(skel)) != 0 {
		t.Fatalf("old skeleton should have no playbacks")
	}
}

func TestControllerRebindWithoutIdleKeepsMotion(t *testing.T) {
	eng := newRecordingEngine()
	c := NewController(eng)
	skel := robotSkeleton(RangeWalk, RangeStrafeLeft, RangeStrafeRight)
	c.Bind(skel)
	if c.State() != Idle || len(eng.calls) != 0 {
		t.Fatalf("expected no calls without idle, got %v state %v", eng.calls, c.State())
	}

	c.Walk()
	eng.reset()
	c.Bind(skel)
	if len(eng.calls) != 0 {
		t.Fatalf("rebinding without idle should issue nothing, got %v", eng.calls)
	}
	if c.State() != Walking {
		t.Fatalf("expected walking to be kept, got %v", c.State())
	}
	if len(eng.scene.Playbacks(skel)) != 1 {
		t.Fatalf("walk playback should keep running")
	}

	// a different skeleton stops the old motion even without idle
	eng.reset()
	c.Bind(robotSkeleton(RangeWalk))
	if want := []string{"stop"}; !reflect.DeepEqual(eng.calls, want) {
		t.Fatalf("expected %v, got %v", want, eng.calls)
	}
	if c.State() != Idle {
		t.Fatalf("expected idle after the old skeleton stopped, got %v", c.State())
	}
}

func TestControllerOperations(t *testing.T) {
	tests := []struct {
		name      string
		ranges    []string
		op        func(c *Controller)
		wantCalls []string
		wantState MotionState
	}{
		{
			name:      "walk",
			op:        (*Controller).Walk,
			wantCalls: []string{"begin 60-120 loop=true"},
			wantState: Walking,
		},
		{
			name: "strafe_left",
			op:   (*Controller).StrafeLeft,
			wantCalls: []string{
				"stop",
				"weighted 60-120 w=0.5 loop=true",
				"weighted 162-222 w=0.5 loop=true",
			},
			wantState: StrafingLeft,
		},
		{
			name: "strafe_right",
			op:   (*Controller).StrafeRight,
			wantCalls: []string{
				"stop",
				"weighted 60-120 w=0.5 loop=true",
				"weighted 223-283 w=0.5 loop=true",
			},
			wantState: StrafingRight,
		},
		{
			name:      "stop",
			op:        (*Controller).Stop,
			wantCalls: []string{"begin 0-59 loop=true"},
			wantState: Idle,
		},
		{
			name:      "walk_missing_walk",
			ranges:    []string{RangeIdle, RangeStrafeLeft, RangeStrafeRight},
			op:        (*Controller).Walk,
			wantState: Idle,
		},
		{
			name:      "strafe_left_missing_walk",
			ranges:    []string{RangeIdle, RangeStrafeLeft, RangeStrafeRight},
			op:        (*Controller).StrafeLeft,
			wantState: Idle,
		},
		{
			name:      "strafe_left_missing_side",
			ranges:    []string{RangeIdle, RangeWalk, RangeStrafeRight},
			op:        (*Controller).StrafeLeft,
			wantState: Idle,
		},
		{
			name:      "strafe_right_missing_side",
			ranges:    []string{RangeIdle, RangeWalk, RangeStrafeLeft},
			op:        (*Controller).StrafeRight,
			wantState: Idle,
		},
		{
			name:      "stop_missing_idle",
			ranges:    []string{RangeWalk},
			op:        (*Controller).Stop,
			wantState: Idle,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng := newRecordingEngine()
			c := NewController(eng)
			c.Bind(robotSkeleton(tc.ranges...))
			eng.reset()

			tc.op(c)
			if !reflect.DeepEqual(eng.calls, tc.wantCalls) {
				t.Fatalf("expected calls %v, got %v", tc.wantCalls, eng.calls)
			}
			if c.State() != tc.wantState {
				t.Fatalf("expected state %v, got %v", tc.wantState, c.State())
			}
		})
	}
}

func TestControllerUnboundIsNoop(t *testing.T) {
	eng := newRecordingEngine()
	c := NewController(eng)
	for _, op := range []func(){c.Walk, c.StrafeLeft, c.StrafeRight, c.Stop} {
		op()
	}
	if len(eng.calls) != 0 {
		t.Fatalf("expected no engine calls before bind, got %v", eng.calls)
	}

	var nilCtrl *Controller
	nilCtrl.Walk()
	nilCtrl.Stop()
	if nilCtrl.State() != Idle {
		t.Fatalf("nil controller should report idle")
	}
}

func TestControllerStrafeSync(t *testing.T) {
	eng := newRecordingEngine()
	c := NewController(eng)
	skel := robotSkeleton()
	c.Bind(skel)

	c.StrafeLeft()
	pbs := eng.scene.Playbacks(skel)
	if len(pbs) != 2 {
		t.Fatalf("expected two blended playbacks, got %d", len(pbs))
	}
	walk, side := pbs[0], pbs[1]
	if walk.From != 60 || side.From != 162 {
		t.Fatalf("expected walk then strafe, got %v and %v", walk.From, side.From)
	}
	if walk.Weight != 0.5 || side.Weight != 0.5 || !walk.Loop || !side.Loop {
		t.Fatalf("expected looping half-weight playbacks")
	}
	if walk.SyncRoot() != nil || side.SyncRoot() != walk {
		t.Fatalf("strafe must follow walk and walk must follow nothing")
	}
}

func TestControllerIdempotent(t *testing.T) {
	eng := newRecordingEngine()
	c := NewController(eng)
	skel := robotSkeleton()
	c.Bind(skel)

	c.StrafeRight()
	c.StrafeRight()
	pbs := eng.scene.Playbacks(skel)
	if len(pbs) != 2 || pbs[1].SyncRoot() != pbs[0] {
		t.Fatalf("repeating strafe should leave the same two-track state, got %d tracks", len(pbs))
	}

	c.Walk()
	c.Walk()
	if pbs := eng.scene.Playbacks(skel); len(pbs) != 1 || pbs[0].Weight != 1 {
		t.Fatalf("repeating walk should leave one full-weight track")
	}
}
