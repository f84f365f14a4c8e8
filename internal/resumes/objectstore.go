// internal/resumes/objectstore.go
package resumes

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrUploadFailed = errors.New("RESUME_UPLOAD_FAILED")

// ObjectStore keeps resume files outside the application record.
type ObjectStore interface {
	PutResume(ctx context.Context, key string, upload *Upload) error
	DeleteResume(ctx context.Context, key string) error
	Kind() string
}

// ObjectKey returns resumes/<application id>/<file name> with the file name
// reduced to its base and stripped of path separators.
func ObjectKey(applicationID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s", applicationID, name)
}
