package bridge

import "testing"

func TestConnected_DefaultsTrue(t *testing.T) {
	c := NewConnected()
	if !c.Load() {
		t.Error("NewConnected().Load() = false, want true")
	}
	c.Store(false)
	if c.Load() {
		t.Error("Load() = true after Store(false)")
	}
}
