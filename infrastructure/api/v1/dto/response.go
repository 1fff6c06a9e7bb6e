package dto

import "github.com/wooldanji/console/infrastructure/api/jsonapi"

// LineAddMeta reports the tokens that did not parse when adding lines.
type LineAddMeta struct {
	Rejected []string `json:"rejected"`
}

// LineAddResponse is returned by POST /buildings/{id}/lines.
type LineAddResponse struct {
	Data []*jsonapi.Resource `json:"data"`
	Meta LineAddMeta         `json:"meta"`
}

// AssignmentResponse lists the apartments assigned to a staff member.
type AssignmentResponse struct {
	Data AssignmentAttributes `json:"data"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
