package dto

import "encoding/json"

type UploadResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	FileName    string          `json:"fileName"`
	FileSize    int64           `json:"fileSize"`
	N8NResponse json.RawMessage `json:"n8nResponse"`
}
