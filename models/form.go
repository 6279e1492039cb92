package models

import (
	"mime/multipart"
)

type UploadForm struct {
	File    *multipart.FileHeader
	Project string
}

type ProcessedUpload struct {
	Filename    string
	ContentType string
	Content     []byte
	Project     string
}
