package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ybot/robot"
)

const (
	// Ticks before a held key starts repeating, and between repeats. Roughly
	// what desktop keyboards send at 60 TPS.
	defaultRepeatDelay    = 30
	defaultRepeatInterval = 3
)

// KeyHold is a key that is down along with how many ticks it has been held.
type KeyHold struct {
	Key   ebiten.Key
	Ticks int
}

// Input turns Ebitengine's polled keyboard state into discrete key events,
// including repeated presses for held keys the way an OS keyboard does.
type Input struct {
	RepeatDelay    int
	RepeatInterval int

	keys  []ebiten.Key
	held  []KeyHold
	up    []ebiten.Key
	queue []robot.Event

	// only the most recently pressed key repeats
	repeatKey  ebiten.Key
	repeatable bool
}

func NewInput() *Input {
	return &Input{RepeatDelay: defaultRepeatDelay, RepeatInterval: defaultRepeatInterval}
}

// Update polls the keyboard and returns this tick's events. The returned
// slice is reused on the next call.
func (i *Input) Update() []robot.Event {
	i.keys = inpututil.AppendPressedKeys(i.keys[:0])
	i.held = i.held[:0]
	for _, k := range i.keys {
		i.held = append(i.held, KeyHold{Key: k, Ticks: inpututil.KeyPressDuration(k)})
	}
	i.up = inpututil.AppendJustReleasedKeys(i.up[:0])
	return i.Events(i.held, i.up)
}

// Events builds the event list for one tick. Releases come first so a key
// released and another pressed on the same tick start the new motion. Like
// an OS keyboard, a held key stops repeating once another key goes down.
func (i *Input) Events(held []KeyHold, released []ebiten.Key) []robot.Event {
	i.queue = i.queue[:0]
	for _, k := range released {
		i.queue = append(i.queue, robot.Release{Key: KeyCode(k)})
		if i.repeatable && k == i.repeatKey {
			i.repeatable = false
		}
	}

	for _, h := range held {
		if h.Ticks == 1 {
			i.queue = append(i.queue, robot.Press{Key: KeyCode(h.Key)})
			i.repeatKey, i.repeatable = h.Key, true
		}
	}
	if !i.repeatable {
		return i.queue
	}
	for _, h := range held {
		if h.Key == i.repeatKey && h.Ticks > 1 && i.repeating(h.Ticks) {
			i.queue = append(i.queue, robot.Press{Key: KeyCode(h.Key)})
		}
	}
	return i.queue
}

func (i *Input) repeating(ticks int) bool {
	if i.RepeatInterval <= 0 || ticks < i.RepeatDelay {
		return false
	}
	return (ticks-i.RepeatDelay)%i.RepeatInterval == 0
}

// KeyCode maps an Ebitengine key to a numeric key code. Letters map to their
// uppercase ASCII value; everything else is unknown.
func KeyCode(k ebiten.Key) robot.KeyCode {
	name := k.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return robot.KeyCode(name[0])
	}
	return robot.KeyUnknown
}
