package analyzers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/nfnt/resize"

	"github.com/mmo-observer/mmo_uploader/models"
)

type inferenceRequest struct {
	ImageB64 string `json:"image_base64"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// RemoteAnalyzer sends a downsized copy of the image to an HTTP vision model
// and expects an AnalysisResult back.
type RemoteAnalyzer struct {
	endpoint string
	maxSide  uint
	client   *http.Client
}

func NewRemoteAnalyzer(endpoint string, maxSide uint, timeout time.Duration) *RemoteAnalyzer {
	return &RemoteAnalyzer{
		endpoint: endpoint,
		maxSide:  maxSide,
		client:   &http.Client{Timeout: timeout},
	}
}

func (a *RemoteAnalyzer) Analyze(ctx context.Context, imageData []byte) (models.AnalysisResult, error) {
	prepared, width, height, err := a.prepare(imageData)
	if err != nil {
		return models.AnalysisResult{}, &Error{Kind: KindUnsupportedImage, Err: err}
	}

	body, err := json.Marshal(inferenceRequest{
		ImageB64: base64.StdEncoding.EncodeToString(prepared),
		MimeType: "image/jpeg",
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return models.AnalysisResult{}, &Error{Kind: KindUpstream, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.AnalysisResult{}, &Error{Kind: KindUpstream, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return models.AnalysisResult{}, &Error{Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.AnalysisResult{}, &Error{
			Kind: KindUpstream,
			Err:  fmt.Errorf("model returned status %s", resp.Status),
		}
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.AnalysisResult{}, &Error{Kind: classify(err), Err: fmt.Errorf("decode model response: %w", err)}
	}
	if result.Summary == "" {
		return models.AnalysisResult{}, &Error{Kind: KindUpstream, Err: errors.New("model response has no summary")}
	}

	return result, nil
}

// prepare decodes the upload, shrinks it to fit maxSide and re-encodes JPEG.
func (a *RemoteAnalyzer) prepare(imageData []byte) ([]byte, int, int, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	if a.maxSide > 0 {
		img = resize.Thumbnail(a.maxSide, a.maxSide, img, resize.Lanczos3)
	}
	bounds := img.Bounds()
	log.Printf("[analyzer] prepared %s image %dx%d", format, bounds.Dx(), bounds.Dy())

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindUpstream
}

var _ Analyzer = (*RemoteAnalyzer)(nil)
