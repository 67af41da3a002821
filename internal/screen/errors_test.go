package screen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/app-inspector/internal/model"
)

func TestClassify(t *testing.T) {
	plain := errors.New("exit status 1")
	already := &model.NotFoundError{ID: "com.x"}

	tests := []struct {
		name string
		err  error
		want model.AppError
	}{
		{"permission sentinel", fs.ErrPermission, &model.PermissionDeniedError{Resource: "com.a", Details: fs.ErrPermission.Error()}},
		{"wrapped os permission", &os.PathError{Op: "open", Path: "/data/app/base.apk", Err: os.ErrPermission},
			&model.PermissionDeniedError{Resource: "com.a", Details: "open /data/app/base.apk: permission denied"}},
		{"already classified", fmt.Errorf("details: %w", already), already},
		{"anything else", plain, &model.UnknownError{Message: "exit status 1", Cause: plain}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err, "com.a"))
		})
	}
}
