package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogPayload_CopiesResultVerbatim(t *testing.T) {
	angle, confidence := 32.0, 0.78
	dims := "Height ~3.2m"
	result := AnalysisResult{
		Materials:    []string{"wood", "concrete"},
		Damage:       "minor",
		AngleDegrees: &angle,
		Dimensions:   &dims,
		Confidence:   &confidence,
		Summary:      "Wood framing",
	}
	upload := ProcessedUpload{Filename: "photo.jpg", Project: "Site A"}

	payload := NewLogPayload(upload, result)
	require.Equal(t, "photo.jpg", payload.ImageName)
	require.Equal(t, "Site A", payload.Project)
	require.Equal(t, result.Materials, payload.Materials)
	require.Equal(t, "minor", payload.Damage)
	require.Equal(t, 32.0, *payload.AngleDegrees)
	require.Equal(t, "Height ~3.2m", *payload.Dimensions)
	require.Equal(t, 0.78, *payload.Confidence)
	require.Equal(t, "Wood framing", payload.Summary)
}

func TestLogPayload_AbsentFieldsSerializeAsNull(t *testing.T) {
	payload := NewLogPayload(
		ProcessedUpload{Filename: "a.png"},
		AnalysisResult{Materials: []string{"brick"}, Damage: "none", Summary: "ok"},
	)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"imageName": "a.png",
		"project": "",
		"materials": ["brick"],
		"damage": "none",
		"angleDegrees": null,
		"dimensions": null,
		"summary": "ok",
		"confidence": null
	}`, string(raw))
}
