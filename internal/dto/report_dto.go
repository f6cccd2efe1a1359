package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	DeviceID       string          `json:"deviceId"`
	ImageURL       string          `json:"imageUrl"`
	AnalysisResult json.RawMessage `json:"analysisResult,omitempty"`
	Location       string          `json:"location,omitempty"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
}

type ToggleLikeRequest struct {
	DeviceID string `json:"deviceId"`
}

type LikeStateResponse struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

type CreateCommentRequest struct {
	DeviceID string `json:"deviceId"`
	Text     string `json:"text"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}

type ReportStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type UploadRequest struct {
	ContentType string `json:"contentType,omitempty"`
}

type UploadResponse struct {
	UploadID  uuid.UUID `json:"upload_id"`
	UploadURL string    `json:"upload_url"`
	ImageURL  string    `json:"image_url"`
	ExpiresIn int       `json:"expires_in"`
}
