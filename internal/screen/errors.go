package screen

import (
	"errors"
	"io/fs"

	"github.com/ytget/app-inspector/internal/model"
)

// Classify maps a collaborator failure onto the closed error set.
// Errors that already are a model.AppError pass through; permission failures
// become PermissionDeniedError for resource; anything else is UnknownError.
func Classify(err error, resource string) model.AppError {
	var appErr model.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, fs.ErrPermission) {
		return &model.PermissionDeniedError{Resource: resource, Details: err.Error()}
	}
	return &model.UnknownError{Message: err.Error(), Cause: err}
}
