package dto

import "encoding/json"

type ApplicationDTO struct {
	ID             string          `json:"id"`
	JobID          string          `json:"jobId,omitempty"`
	JobSeekerEmail string          `json:"jobSeekerEmail"`
	Status         string          `json:"status"`
	Date           string          `json:"date"`
	Details        json.RawMessage `json:"details,omitempty"`
}

type ListApplicationsResponse struct {
	Applications []ApplicationDTO `json:"applications"`
}
