package input

import "go.uber.org/atomic"

// DefaultBindings maps key names (as reported by the host) to actions.
// l and r are the lateral keys of the single tire test rig.
func DefaultBindings() map[string]Action {
	return map[string]Action{
		"w":          ActionForward,
		"ArrowUp":    ActionForward,
		"s":          ActionBackward,
		"ArrowDown":  ActionBackward,
		"a":          ActionLeft,
		"ArrowLeft":  ActionLeft,
		"l":          ActionLeft,
		"d":          ActionRight,
		"ArrowRight": ActionRight,
		"r":          ActionRight,
	}
}

// Keyboard latches key events coming from another goroutine.
// Bindings must not be modified once events start flowing.
type Keyboard struct {
	Bindings map[string]Action

	pressed atomic.Uint32
}

func NewKeyboard() *Keyboard {
	return &Keyboard{Bindings: DefaultBindings()}
}

// Press marks the action bound to key as held. Unbound keys are ignored.
func (k *Keyboard) Press(key string) {
	if b := k.bitFor(key); b != 0 {
		k.update(func(bits uint32) uint32 { return bits | b })
	}
}

// Release clears the action bound to key
func (k *Keyboard) Release(key string) {
	if b := k.bitFor(key); b != 0 {
		k.update(func(bits uint32) uint32 { return bits &^ b })
	}
}

// Toggle flips the action bound to key, for hosts that only see key presses (raw terminals)
func (k *Keyboard) Toggle(key string) {
	if b := k.bitFor(key); b != 0 {
		k.update(func(bits uint32) uint32 { return bits ^ b })
	}
}

func (k *Keyboard) ReleaseAll() {
	k.pressed.Store(0)
}

// Snapshot returns the current flags, t is ignored
func (k *Keyboard) Snapshot(float64) State {
	return stateFromBits(k.pressed.Load())
}

func (k *Keyboard) bitFor(key string) uint32 {
	action, ok := k.Bindings[key]
	if !ok {
		return 0
	}

	return bit(action)
}

func (k *Keyboard) update(fn func(bits uint32) uint32) {
	for {
		old := k.pressed.Load()
		if k.pressed.CompareAndSwap(old, fn(old)) {
			return
		}
	}
}
