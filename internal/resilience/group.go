package resilience

import "sync"

// Group holds one Breaker per key so that failures against one external
// service (e.g. the GitHub API) do not trip the circuit for another
// (e.g. Slack). Breakers are created lazily with shared settings.
type Group struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
	newFn    func() *Breaker
}

// NewGroup creates a breaker group whose members are built by newFn.
func NewGroup(newFn func() *Breaker) *Group {
	return &Group{
		breakers: make(map[string]*Breaker),
		newFn:    newFn,
	}
}

// For returns the breaker for key, creating it on first use.
func (g *Group) For(key string) *Breaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.breakers[key]
	if !ok {
		b = g.newFn()
		g.breakers[key] = b
	}
	return b
}
