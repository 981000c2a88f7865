package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions holds the live carts keyed by session id. Each cart is owned by a
// single order-creation flow; the registry only guards its own map, not the
// carts, since a session never issues concurrent requests.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Create starts a fresh empty cart and returns its session id.
func (s *Sessions) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.carts[id] = New()
	s.mu.Unlock()
	return id
}

func (s *Sessions) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	return c, ok
}

// Delete destroys a session's cart. Called after a successful submission or
// when the client abandons the flow.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
