package screen

import (
	"errors"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

// User-facing messages.
const (
	MsgNameRequired  = "Informe o nome da obra"
	MsgSaveFailed    = "Não foi possível salvar a obra. Tente novamente."
	MsgDeleteFailed  = "Não foi possível excluir a obra. Tente novamente."
	MsgConfirmDelete = "Tem certeza que deseja excluir esta obra?"
)

// Form is the create/edit modal. An empty EditingID means create.
type Form struct {
	Name      string `json:"name"`
	EditingID string `json:"editing_id,omitempty"`
}

// ValidationError is shown inline next to the field and never logged.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// Validate returns the trimmed name or a *ValidationError.
func (f Form) Validate() (string, error) {
	name, err := domain.NormalizeName(f.Name)
	if err != nil {
		return "", &ValidationError{Message: MsgNameRequired, Err: err}
	}
	return name, nil
}

// IsValidation reports whether err came from form validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
