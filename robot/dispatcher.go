package robot

// Motion is the set of requests the dispatcher can issue. *Controller
// implements it.
type Motion interface {
	Walk()
	StrafeLeft()
	StrafeRight()
	Stop()
}

// Dispatcher maps key transitions to motion requests. Once a movement key
// starts an action, further presses are ignored until some key is released,
// which absorbs key-repeat.
type Dispatcher struct {
	motion         Motion
	actionInFlight bool
}

func NewDispatcher(motion Motion) *Dispatcher {
	return &Dispatcher{motion: motion}
}

// InFlight reports whether a movement action is running.
func (d *Dispatcher) InFlight() bool {
	return d != nil && d.actionInFlight
}

// OnKeyEvent handles one key transition.
func (d *Dispatcher) OnKeyEvent(ev Event) {
	if d == nil || d.motion == nil {
		return
	}

	switch ev := ev.(type) {
	case Release:
		d.motion.Stop()
		d.actionInFlight = false
	case Press:
		if d.actionInFlight {
			return
		}
		switch ev.Key {
		case KeyW:
			d.motion.Walk()
		case KeyA:
			d.motion.StrafeLeft()
		case KeyS:
			d.motion.Stop()
		case KeyD:
			d.motion.StrafeRight()
		default:
			return
		}
		d.actionInFlight = true
	}
}
