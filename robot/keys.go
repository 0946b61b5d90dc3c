package robot

// KeyCode is a numeric key code. Letters use their uppercase ASCII value.
type KeyCode int

const (
	KeyUnknown KeyCode = 0

	KeyW KeyCode = 87
	KeyA KeyCode = 65
	KeyS KeyCode = 83
	KeyD KeyCode = 68
)

func (k KeyCode) String() string {
	if k >= 'A' && k <= 'Z' {
		return string(rune(k))
	}
	return "?"
}

// Event is a key transition delivered to the dispatcher. The set of
// implementations is closed: Press and Release.
type Event interface {
	isEvent()
}

// Press is a key-down notification, including OS key repeats.
type Press struct {
	Key KeyCode
}

// Release is a key-up notification. Key is informational; any release
// stops motion.
type Release struct {
	Key KeyCode
}

func (Press) isEvent()   {}
func (Release) isEvent() {}
