package conciliacao

import (
	"sync"

	"github.com/iwvelando/payment-clauses/pkg/mathutil"
)

// Balance is the part of a Result whose changes are worth reporting.
type Balance struct {
	Difference float64 `json:"diferenca"`
	IsBalanced bool    `json:"equilibrado"`
}

// BalanceOf extracts the rounded balance of r.
func BalanceOf(r Result) Balance {
	return Balance{Difference: mathutil.Round(r.Difference), IsBalanced: r.IsBalanced}
}

// Notifier remembers the last balance it reported and invokes its callback
// only when a newly observed result changes the rounded difference or the
// balanced flag. It is safe for concurrent use; the callback runs outside the
// lock so it may call Observe again.
type Notifier struct {
	mu       sync.Mutex
	last     Balance
	notified bool
	onChange func(Result)
}

// NewNotifier returns a Notifier calling onChange on every balance change.
// A nil onChange only tracks state.
func NewNotifier(onChange func(Result)) *Notifier {
	return &Notifier{onChange: onChange}
}

// Observe records r and reports whether it changed the balance. The first
// observation always counts as a change.
func (n *Notifier) Observe(r Result) bool {
	b := BalanceOf(r)

	n.mu.Lock()
	if n.notified && n.last == b {
		n.mu.Unlock()
		return false
	}
	n.last = b
	n.notified = true
	onChange := n.onChange
	n.mu.Unlock()

	if onChange != nil {
		onChange(r)
	}
	return true
}

// Last returns the last reported balance, if any.
func (n *Notifier) Last() (Balance, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last, n.notified
}

// Reset forgets the last reported balance, so the next observation fires.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = Balance{}
	n.notified = false
}
