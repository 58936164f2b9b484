package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/api/http/middleware"
	"github.com/obralog/obralog-admin/internal/sites/domain"
)

var (
	// ErrBusy is returned while another submit from the same client is in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNotConfirmed is returned when a delete arrives without a matching
	// confirmation request.
	ErrNotConfirmed = errors.New("delete has not been confirmed")
)

// Gateway is the write side of the persistence gateway.
type Gateway interface {
	Create(ctx context.Context, name string) (*domain.ConstructionSite, error)
	Update(ctx context.Context, id, name string) (*domain.ConstructionSite, error)
	Delete(ctx context.Context, id string) error
}

// Refresher re-fetches the full site list after a mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// MutationError wraps a failed create, update or delete with the generic
// notice shown to the user.
type MutationError struct {
	Op     string
	Notice string
	Err    error
}

func (e *MutationError) Error() string { return fmt.Sprintf("%s site: %v", e.Op, e.Err) }
func (e *MutationError) Unwrap() error { return e.Err }

// Editor is one client's list/edit screen. It never patches the cached list
// locally; every successful mutation is followed by a full refresh.
type Editor struct {
	gateway   Gateway
	refresher Refresher
	logger    *zap.Logger

	mu            sync.Mutex
	submitting    bool
	pendingDelete string
}

func NewEditor(gateway Gateway, refresher Refresher, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{gateway: gateway, refresher: refresher, logger: logger}
}

// Submit validates the form, then creates or renames the site. Validation
// failures never reach the gateway.
func (e *Editor) Submit(ctx context.Context, form Form) (*domain.ConstructionSite, error) {
	name, err := form.Validate()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.submitting = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.submitting = false
		e.mu.Unlock()
	}()

	var (
		site *domain.ConstructionSite
		op   = "create"
	)
	if form.EditingID == "" {
		site, err = e.gateway.Create(ctx, name)
	} else {
		op = "update"
		site, err = e.gateway.Update(ctx, form.EditingID, name)
	}
	if err != nil {
		e.logger.Warn("site mutation failed",
			zap.String("op", op),
			zap.String("id", form.EditingID),
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err))
		return nil, &MutationError{Op: op, Notice: MsgSaveFailed, Err: err}
	}

	e.refresh(ctx)
	return site, nil
}

// State is what the browser needs to render the screen's controls: the
// submit button is disabled while Submitting, and PendingDelete names the
// site whose confirmation dialog is open.
type State struct {
	Submitting    bool   `json:"submitting"`
	PendingDelete string `json:"pendingDelete,omitempty"`
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{Submitting: e.submitting, PendingDelete: e.pendingDelete}
}

// RequestDelete opens the confirmation step for id, replacing any earlier one.
func (e *Editor) RequestDelete(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = id
}

// CancelDelete drops the confirmation step.
func (e *Editor) CancelDelete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = ""
}

// ConfirmDelete deletes id if it is the one awaiting confirmation. On
// failure the confirmation stays open so the user can retry.
func (e *Editor) ConfirmDelete(ctx context.Context, id string) error {
	e.mu.Lock()
	if id == "" || e.pendingDelete != id {
		e.mu.Unlock()
		return ErrNotConfirmed
	}
	e.mu.Unlock()

	if err := e.gateway.Delete(ctx, id); err != nil {
		e.logger.Warn("site delete failed",
			zap.String("id", id),
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err))
		return &MutationError{Op: "delete", Notice: MsgDeleteFailed, Err: err}
	}

	e.mu.Lock()
	if e.pendingDelete == id {
		e.pendingDelete = ""
	}
	e.mu.Unlock()

	e.refresh(ctx)
	return nil
}

func (e *Editor) refresh(ctx context.Context) {
	// the directory logs its own failures and keeps the previous list
	if err := e.refresher.Refresh(ctx); err != nil {
		e.logger.Debug("post-mutation refresh failed", zap.Error(err))
	}
}
