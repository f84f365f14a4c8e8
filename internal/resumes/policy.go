// internal/resumes/policy.go
package resumes

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge       = errors.New("FILE_TOO_LARGE")
	ErrFileTypeNotAllowed = errors.New("INVALID_FILE")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Declared types browsers send for the allowed extensions. image/jpg is
// not registered but some clients still send it.
var allowedDeclared = map[string]bool{
	"image/jpeg":         true,
	"image/jpg":          true,
	"image/png":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Sniffed types. Word files are containers, so their generic OLE and zip
// parents are accepted when the specific type is not recognised.
var allowedSniffed = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"application/msword",
	"application/x-ole-storage",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/zip",
}

// Upload is a resume that passed the policy, fully read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Policy decides whether an uploaded file is acceptable as a resume.
type Policy struct {
	MaxBytes int64
}

// Read checks the file header, reads at most MaxBytes of content and
// verifies the content itself is one of the allowed types.
func (p Policy) Read(fh *multipart.FileHeader) (*Upload, error) {
	if fh.Size > p.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, fh.Size, p.MaxBytes)
	}

	filename := filepath.Base(fh.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: extension %q", ErrFileTypeNotAllowed, ext)
	}

	declared := declaredType(fh)
	if declared != "" && declared != "application/octet-stream" && !allowedDeclared[declared] {
		return nil, fmt.Errorf("%w: declared type %q", ErrFileTypeNotAllowed, declared)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, p.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > p.MaxBytes {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", ErrFileTooLarge, p.MaxBytes)
	}

	sniffed, ok := sniff(data)
	if !ok {
		return nil, fmt.Errorf("%w: content looks like %q", ErrFileTypeNotAllowed, sniffed)
	}

	contentType := declared
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = sniffed
	}

	return &Upload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func declaredType(fh *multipart.FileHeader) string {
	raw := fh.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(mediaType)
}

// sniff returns the detected type and whether it or one of its parents is allowed.
func sniff(data []byte) (string, bool) {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range allowedSniffed {
			if m.Is(allowed) {
				return m.String(), true
			}
		}
	}
	return detected.String(), false
}
