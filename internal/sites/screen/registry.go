package screen

import (
	"sync"

	"go.uber.org/zap"
)

// Editors hands out one Editor per client.
type Editors struct {
	gateway   Gateway
	refresher Refresher
	logger    *zap.Logger

	mu      sync.Mutex
	editors map[string]*Editor
}

func NewEditors(gateway Gateway, refresher Refresher, logger *zap.Logger) *Editors {
	return &Editors{
		gateway:   gateway,
		refresher: refresher,
		logger:    logger,
		editors:   make(map[string]*Editor),
	}
}

func (r *Editors) Get(client string) *Editor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.editors[client]; ok {
		return e
	}
	e := NewEditor(r.gateway, r.refresher, r.logger)
	r.editors[client] = e
	return e
}

// State returns the client's editor state without creating an editor.
func (r *Editors) State(client string) State {
	r.mu.Lock()
	e, ok := r.editors[client]
	r.mu.Unlock()
	if !ok {
		return State{}
	}
	return e.State()
}

// Forget drops a client's editor, e.g. when its shell session is pruned.
func (r *Editors) Forget(client string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.editors, client)
}
