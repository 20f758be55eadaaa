package render

import "sync"

// Hub routes directives to whichever renderer is attached to a game.
// The websocket transport registers a connection-backed renderer on
// connect and removes it on disconnect; games with nobody attached
// fall back to the hub's default renderer.
type Hub struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  Renderer
}

func NewHub(fallback Renderer) *Hub {
	if fallback == nil {
		fallback = NopRenderer{}
	}

	return &Hub{
		renderers: make(map[string]Renderer),
		fallback:  fallback,
	}
}

// Attach binds a renderer to a game, replacing any previous one.
func (that *Hub) Attach(gameID string, renderer Renderer) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.renderers[gameID] = renderer
}

// Detach removes the renderer bound to a game.
func (that *Hub) Detach(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.renderers, gameID)
}

// ForGame returns the renderer for a game, never nil.
func (that *Hub) ForGame(gameID string) Renderer {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if renderer, ok := that.renderers[gameID]; ok {
		return renderer
	}

	return that.fallback
}
