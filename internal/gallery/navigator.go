package gallery

import "math/rand"

// navigator is the two-state navigation machine: Sequential steps move by
// one with wraparound; Random steps draw a fresh uniformly-random index.
// Each random jump records the pre-jump index so one backward step can undo
// it exactly once.
type navigator struct {
	random   bool
	previous int // one-shot index to go back to, -1 when unset
	rng      *rand.Rand
}

func newNavigator(rng *rand.Rand) *navigator {
	return &navigator{previous: -1, rng: rng}
}

// reset forces the machine back to Sequential. Applied on every gallery
// selection.
func (n *navigator) reset() {
	n.random = false
	n.previous = -1
}

// jump enters Random mode and draws a new index in [0, count) excluding
// current. No-op when there is at most one item.
func (n *navigator) jump(current, count int) int {
	n.random = true
	if count <= 1 {
		return current
	}
	n.previous = current
	next := current
	for next == current {
		next = n.rng.Intn(count)
	}
	return next
}

func (n *navigator) forward(current, count int) int {
	if count == 0 {
		return 0
	}
	if n.random {
		return n.jump(current, count)
	}
	next := current + 1
	if next >= count {
		next = 0
	}
	return next
}

func (n *navigator) backward(current, count int) int {
	if count == 0 {
		return 0
	}
	if n.random {
		// One-shot undo of the last random jump, then back to drawing.
		if n.previous >= 0 && n.previous != current && n.previous < count {
			prev := n.previous
			n.previous = -1
			return prev
		}
		return n.jump(current, count)
	}
	next := current - 1
	if next < 0 {
		next = count - 1
	}
	return next
}
