package dto

import (
	"time"

	"github.com/tinyapp/tinyapp/internal/model"
)

// CreateURLRequest represents the request body for shortening a URL.
type CreateURLRequest struct {
	LongURL string `json:"long_url"`
}

// UpdateURLRequest represents the request body for changing a destination.
type UpdateURLRequest struct {
	LongURL string `json:"long_url"`
}

// VisitEventResponse represents one visit in API responses.
type VisitEventResponse struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitor_id"`
	VisitedAt time.Time `json:"visited_at"`
}

// URLResponse represents a short URL record in API responses.
type URLResponse struct {
	Code         string               `json:"code"`
	ShortURL     string               `json:"short_url"`
	LongURL      string               `json:"long_url"`
	TotalVisits  int64                `json:"total_visits"`
	UniqueVisits int64                `json:"unique_visits"`
	CreatedAt    time.Time            `json:"created_at"`
	Visits       []VisitEventResponse `json:"visits"`
}

// URLListResponse represents an owner's URL collection keyed by short code.
type URLListResponse struct {
	Data map[string]URLResponse `json:"data"`
}

// ToURLResponse converts a ShortURLRecord model to URLResponse DTO.
func ToURLResponse(record *model.ShortURLRecord, baseURL string) *URLResponse {
	visits := make([]VisitEventResponse, len(record.Visits))
	for i, event := range record.Visits {
		visits[i] = VisitEventResponse{
			ID:        event.ID,
			VisitorID: event.VisitorID,
			VisitedAt: event.VisitedAt,
		}
	}

	return &URLResponse{
		Code:         record.Code,
		ShortURL:     baseURL + "/u/" + record.Code,
		LongURL:      record.LongURL,
		TotalVisits:  record.TotalVisits,
		UniqueVisits: record.UniqueVisits,
		CreatedAt:    record.CreatedAt,
		Visits:       visits,
	}
}

// ToURLListResponse converts an owner's record snapshot to URLListResponse.
func ToURLListResponse(records map[string]*model.ShortURLRecord, baseURL string) *URLListResponse {
	data := make(map[string]URLResponse, len(records))
	for code, record := range records {
		data[code] = *ToURLResponse(record, baseURL)
	}
	return &URLListResponse{Data: data}
}
