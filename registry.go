package gopayrest

import (
	"sync"
)

// Registry hands out shared Client instances keyed by the
// (client id, GoID, mode) tuple, so an application talking to several
// gateway accounts reuses one client (and its token cache) per account.
// Own one Registry per application; there are no process globals.
//
// Unlike a single Client, the Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
	opts    []Option
}

// NewRegistry creates an empty registry. The given options are applied
// to every client the registry builds.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		clients: map[string]*Client{},
		opts:    opts,
	}
}

// Client returns the shared client for the credentials, building one on
// first use. With forceNew the cached instance is replaced, which also
// discards its token cache.
func (r *Registry) Client(clientID, clientSecret, goID string, mode Mode, forceNew bool) (*Client, error) {
	key := clientID + ":" + goID + ":" + string(mode)

	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[key]; ok && !forceNew {
		return client, nil
	}

	cfg, err := NewConfig(clientID, clientSecret, goID, mode)
	if err != nil {
		return nil, err
	}

	client := New(cfg, r.opts...)
	r.clients[key] = client

	return client, nil
}
