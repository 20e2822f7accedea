package input

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// Action is a bindable player action.
type Action int

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight
	ActionJump
	ActionSprint
	ActionCrouch
	ActionGrapple
	ActionScreenshot
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBack:
		return "back"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionSprint:
		return "sprint"
	case ActionCrouch:
		return "crouch"
	case ActionGrapple:
		return "grapple"
	case ActionScreenshot:
		return "screenshot"
	default:
		return "unknown"
	}
}

// Config maps actions to key names. Keys use SDL scancode names ("W",
// "Space", "Left Shift"); mouse buttons are mouse_left, mouse_right and
// mouse_middle.
type Config struct {
	Forward    string `yaml:"forward"`
	Back       string `yaml:"back"`
	Left       string `yaml:"left"`
	Right      string `yaml:"right"`
	Jump       string `yaml:"jump"`
	Sprint     string `yaml:"sprint"`
	Crouch     string `yaml:"crouch"`
	Grapple    string `yaml:"grapple"`
	Screenshot string `yaml:"screenshot"`
}

// DefaultConfig returns the stock bindings.
func DefaultConfig() Config {
	return Config{
		Forward:    "W",
		Back:       "S",
		Left:       "A",
		Right:      "D",
		Jump:       "Space",
		Sprint:     "Left Shift",
		Crouch:     "Left Ctrl",
		Grapple:    "mouse_right",
		Screenshot: "F12",
	}
}

func (c Config) names() [actionCount]string {
	return [actionCount]string{
		ActionForward:    c.Forward,
		ActionBack:       c.Back,
		ActionLeft:       c.Left,
		ActionRight:      c.Right,
		ActionJump:       c.Jump,
		ActionSprint:     c.Sprint,
		ActionCrouch:     c.Crouch,
		ActionGrapple:    c.Grapple,
		ActionScreenshot: c.Screenshot,
	}
}

// Binding is one key or mouse button.
type Binding struct {
	Key    sdl.Scancode
	Button uint8 // non-zero for mouse bindings
}

// ParseBinding resolves a key or mouse button name.
func ParseBinding(name string) (Binding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mouse_left":
		return Binding{Button: sdl.BUTTON_LEFT}, nil
	case "mouse_right":
		return Binding{Button: sdl.BUTTON_RIGHT}, nil
	case "mouse_middle":
		return Binding{Button: sdl.BUTTON_MIDDLE}, nil
	case "":
		return Binding{}, fmt.Errorf("empty binding")
	}
	sc := sdl.GetScancodeFromName(name)
	if sc == sdl.SCANCODE_UNKNOWN {
		return Binding{}, fmt.Errorf("unknown key %q", name)
	}
	return Binding{Key: sc}, nil
}

// Bindings is a resolved Config.
type Bindings [actionCount]Binding

// Resolve parses every binding in c.
func Resolve(c Config) (Bindings, error) {
	var b Bindings
	for a, name := range c.names() {
		bind, err := ParseBinding(name)
		if err != nil {
			return b, fmt.Errorf("binding %s: %w", Action(a), err)
		}
		b[a] = bind
	}
	return b, nil
}
