package models

// AnalysisResult is what an analyzer derives from one image. Optional
// fields are pointers and serialize as null when unset.
type AnalysisResult struct {
	Materials    []string `json:"materials"`
	Damage       string   `json:"damage"`
	AngleDegrees *float64 `json:"angleDegrees"`
	Dimensions   *string  `json:"dimensions"`
	Confidence   *float64 `json:"confidence"`
	Summary      string   `json:"summary"`
}

// LogPayload is the flat row sent to the sheet-logging webhook. No field is
// ever omitted.
type LogPayload struct {
	ImageName    string   `json:"imageName"`
	Project      string   `json:"project"`
	Materials    []string `json:"materials"`
	Damage       string   `json:"damage"`
	AngleDegrees *float64 `json:"angleDegrees"`
	Dimensions   *string  `json:"dimensions"`
	Summary      string   `json:"summary"`
	Confidence   *float64 `json:"confidence"`
}

func NewLogPayload(upload ProcessedUpload, result AnalysisResult) LogPayload {
	return LogPayload{
		ImageName:    upload.Filename,
		Project:      upload.Project,
		Materials:    result.Materials,
		Damage:       result.Damage,
		AngleDegrees: result.AngleDegrees,
		Dimensions:   result.Dimensions,
		Summary:      result.Summary,
		Confidence:   result.Confidence,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoggingFailedResponse struct {
	Status   string         `json:"status"`
	Error    string         `json:"error"`
	AIResult AnalysisResult `json:"ai_result"`
}

type AnalysisFailedResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusLoggingFailed  = "analysis_ok_logging_failed"
	StatusAnalysisFailed = "analysis_failed"
)
