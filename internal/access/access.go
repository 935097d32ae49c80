// Package access gates every conversation event on a fixed allow-list of
// Telegram user IDs loaded at startup.
package access

// Gate answers whether an identity may drive the bot. It is immutable
// after construction, so it is safe for concurrent use.
type Gate struct {
	allowed map[int64]bool
}

// NewGate builds a gate from the configured allow-list.
func NewGate(ids []int64) *Gate {
	allowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return &Gate{allowed: allowed}
}

// Allowed reports whether identity is on the allow-list.
func (g *Gate) Allowed(identity int64) bool {
	return g.allowed[identity]
}
