package analyzers

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmo-observer/mmo_uploader/models"
)

// Analyzer derives a structured result from raw image bytes.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (models.AnalysisResult, error)
}

type ErrorKind string

const (
	KindUnsupportedImage ErrorKind = "unsupported_image"
	KindTimeout          ErrorKind = "timeout"
	KindUpstream         ErrorKind = "upstream"
)

// Error is returned by analyzers that can fail.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analysis failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of an analyzer error; unknown errors count as upstream.
func KindOf(err error) ErrorKind {
	var aErr *Error
	if errors.As(err, &aErr) {
		return aErr.Kind
	}
	return KindUpstream
}
