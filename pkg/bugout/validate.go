package bugout

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

// requiredUUID rejects the nil UUID. ozzo's Required rule treats any
// [16]byte array as non-empty, so UUID parameters need their own rule.
var requiredUUID = validation.By(func(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
})

// checkParams runs the per-call parameter validation that every resource
// client performs before touching the network.
func checkParams(fields validation.Errors) error {
	if err := fields.Filter(); err != nil {
		return rest.NewValidationError(err)
	}
	return nil
}

// checkDecoded guards against a 2xx payload that decoded without its
// required id, so callers never see a partially populated value.
func checkDecoded(entity string, id uuid.UUID) error {
	if id == uuid.Nil {
		return &rest.RemoteError{Detail: fmt.Sprintf("%s payload is missing its id", entity)}
	}
	return nil
}
