package gallery

import (
	"math/rand"
	"testing"
)

func TestSequentialWraparound(t *testing.T) {
	n := newNavigator(rand.New(rand.NewSource(1)))

	testCases := []struct {
		name     string
		current  int
		count    int
		forward  bool
		expected int
	}{
		{"forward middle", 1, 5, true, 2},
		{"forward wraps to zero", 4, 5, true, 0},
		{"backward middle", 3, 5, false, 2},
		{"backward wraps to last", 0, 5, false, 4},
		{"forward empty", 0, 0, true, 0},
		{"backward empty", 0, 0, false, 0},
		{"forward single item", 0, 1, true, 0},
	}

	for _, tc := range testCases {
		var got int
		if tc.forward {
			got = n.forward(tc.current, tc.count)
		} else {
			got = n.backward(tc.current, tc.count)
		}
		if got != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}

func TestRandomJumpExcludesCurrent(t *testing.T) {
	n := newNavigator(rand.New(rand.NewSource(42)))

	current := 3
	for i := 0; i < 100; i++ {
		next := n.jump(current, 10)
		if next == current {
			t.Fatalf("jump returned the current index %d", current)
		}
		if next < 0 || next >= 10 {
			t.Fatalf("jump returned out-of-range index %d", next)
		}
		current = next
	}
}

func TestRandomJumpSingleItemIsNoop(t *testing.T) {
	n := newNavigator(rand.New(rand.NewSource(1)))

	if got := n.jump(0, 1); got != 0 {
		t.Errorf("expected no-op jump with one item, got %d", got)
	}
	if !n.random {
		t.Error("jump should still enter random mode")
	}
	if n.previous != -1 {
		t.Errorf("no-op jump must not record previous, got %d", n.previous)
	}
}

func TestRandomBackwardIsOneShot(t *testing.T) {
	n := newNavigator(rand.New(rand.NewSource(42)))

	// Jump away from 3, then step backward: must land on 3 exactly once.
	jumped := n.jump(3, 10)
	if back := n.backward(jumped, 10); back != 3 {
		t.Fatalf("first backward should return to pre-jump index 3, got %d", back)
	}

	// A second consecutive backward draws a new random index instead.
	second := n.backward(3, 10)
	if second == 3 {
		t.Error("second backward must not repeat the current index")
	}
	if !n.random {
		t.Error("backward must stay in random mode")
	}
}

func TestRandomForwardRecordsPreviousEachJump(t *testing.T) {
	n := newNavigator(rand.New(rand.NewSource(7)))

	a := n.jump(0, 10)
	b := n.forward(a, 10)
	if back := n.backward(b, 10); back != a {
		t.Errorf("backward after forward should return to %d, got %d", a, back)
	}
}

func TestResetLeavesRandomMode(t *testing.T) {
	n := newNavigator(rand.New(rand.NewSource(1)))

	n.jump(0, 10)
	n.reset()
	if n.random {
		t.Error("reset should leave random mode")
	}
	if n.previous != -1 {
		t.Error("reset should clear the previous index")
	}
	if got := n.forward(2, 10); got != 3 {
		t.Errorf("expected sequential step after reset, got %d", got)
	}
}
