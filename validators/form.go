package validators

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/mmo-observer/mmo_uploader/models"
)

var (
	ErrFileRequired = errors.New("file field is required")
	ErrFileTooLarge = errors.New("file size exceeds the maximum limit")
)

// ContentTypeError rejects uploads whose declared type is not an image.
type ContentTypeError struct {
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("File must be an image. Got content_type=%s", quoteContentType(e.ContentType))
}

func ValidateProcessUpload(form models.UploadForm, maxSize int64) (models.ProcessedUpload, error) {
	if form.File == nil {
		return models.ProcessedUpload{}, ErrFileRequired
	}

	contentType := form.File.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return models.ProcessedUpload{}, &ContentTypeError{ContentType: contentType}
	}

	data, err := validateProcessFile(form.File, maxSize)
	if err != nil {
		return models.ProcessedUpload{}, err
	}

	return models.ProcessedUpload{
		Filename:    form.File.Filename,
		ContentType: contentType,
		Content:     data,
		Project:     form.Project,
	}, nil
}

func validateProcessFile(file *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && file.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return data, nil
}

// quoteContentType renders the value the way the error message has always
// shown it: None when missing, otherwise single-quoted.
func quoteContentType(ct string) string {
	if ct == "" {
		return "None"
	}
	quote := "'"
	if strings.Contains(ct, "'") && !strings.Contains(ct, `"`) {
		quote = `"`
	}
	escaped := strings.ReplaceAll(ct, `\`, `\\`)
	if quote == "'" {
		escaped = strings.ReplaceAll(escaped, "'", `\'`)
	}
	return quote + escaped + quote
}
