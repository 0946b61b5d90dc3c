package obj

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ybot/robot"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want robot.KeyCode
	}{
		{ebiten.KeyW, robot.KeyW},
		{ebiten.KeyA, robot.KeyA},
		{ebiten.KeyS, robot.KeyS},
		{ebiten.KeyD, robot.KeyD},
		{ebiten.KeyQ, robot.KeyCode('Q')},
		{ebiten.KeySpace, robot.KeyUnknown},
		{ebiten.KeyDigit1, robot.KeyUnknown},
	}
	for _, tc := range tests {
		if got := KeyCode(tc.key); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.key, tc.want, got)
		}
	}
}

func TestInputRepeat(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
		want  bool
	}{
		{"first_tick", 1, true},
		{"held", 2, false},
		{"before_delay", 29, false},
		{"delay_reached", 30, true},
		{"between_repeats", 31, false},
		{"next_repeat", 33, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInput()
			if tc.ticks > 1 {
				in.Events([]KeyHold{{Key: ebiten.KeyW, Ticks: 1}}, nil)
			}
			got := in.Events([]KeyHold{{Key: ebiten.KeyW, Ticks: tc.ticks}}, nil)
			if (len(got) == 1) != tc.want {
				t.Fatalf("expected press=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestInputReleasesFirst(t *testing.T) {
	in := NewInput()
	got := in.Events(
		[]KeyHold{{Key: ebiten.KeyD, Ticks: 1}},
		[]ebiten.Key{ebiten.KeyW},
	)
	want := []robot.Event{robot.Release{Key: robot.KeyW}, robot.Press{Key: robot.KeyD}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestInputHeldKeyDrivesDispatcherOnce(t *testing.T) {
	in := NewInput()
	calls := 0
	d := robot.NewDispatcher(countingMotion{walk: &calls})

	// hold W for two seconds of ticks, generating OS-style repeats
	for tick := 1; tick <= 120; tick++ {
		for _, ev := range in.Events([]KeyHold{{Key: ebiten.KeyW, Ticks: tick}}, nil) {
			d.OnKeyEvent(ev)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one walk for a held key, got %d", calls)
	}
}

func TestInputOtherKeyEndsRepeat(t *testing.T) {
	tests := []struct {
		name     string
		release  int // tick the other key goes up
		wantCall []string
	}{
		{"tap_while_held", 36, []string{"walk", "stop"}},
		{"held_past_delay", 80, []string{"walk", "stop"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInput()
			m := &recordingMotion{}
			d := robot.NewDispatcher(m)

			// W held for the whole run, Q pressed at tick 35
			for tick := 1; tick <= 120; tick++ {
				held := []KeyHold{{Key: ebiten.KeyW, Ticks: tick}}
				var up []ebiten.Key
				switch {
				case tick >= 35 && tick < tc.release:
					held = append(held, KeyHold{Key: ebiten.KeyQ, Ticks: tick - 34})
				case tick == tc.release:
					up = []ebiten.Key{ebiten.KeyQ}
				}
				for _, ev := range in.Events(held, up) {
					d.OnKeyEvent(ev)
				}
			}
			if !reflect.DeepEqual(m.calls, tc.wantCall) {
				t.Fatalf("expected %v, got %v", tc.wantCall, m.calls)
			}
			if d.InFlight() {
				t.Fatalf("release should leave nothing in flight")
			}
		})
	}
}

func TestInputReleaseEndsRepeat(t *testing.T) {
	in := NewInput()
	in.Events([]KeyHold{{Key: ebiten.KeyW, Ticks: 1}}, nil)
	in.Events(nil, []ebiten.Key{ebiten.KeyW})
	// a stale hold report for W must not repeat once W went up
	if got := in.Events([]KeyHold{{Key: ebiten.KeyW, Ticks: 33}}, nil); len(got) != 0 {
		t.Fatalf("expected no events, got %v", got)
	}
}

type recordingMotion struct {
	calls []string
}

func (m *recordingMotion) Walk()        { m.calls = append(m.calls, "walk") }
func (m *recordingMotion) StrafeLeft()  { m.calls = append(m.calls, "strafe_left") }
func (m *recordingMotion) StrafeRight() { m.calls = append(m.calls, "strafe_right") }
func (m *recordingMotion) Stop()        { m.calls = append(m.calls, "stop") }

type countingMotion struct {
	walk *int
}

func (m countingMotion) Walk()        { *m.walk++ }
func (m countingMotion) StrafeLeft()  {}
func (m countingMotion) StrafeRight() {}
func (m countingMotion) Stop()        {}
