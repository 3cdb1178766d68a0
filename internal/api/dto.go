package api

import (
	"github.com/halvard/docstamp/internal/docservice"
	"github.com/halvard/docstamp/internal/stamp"
)

// CreateDocRequest is the request body for creating a doc.
type CreateDocRequest struct {
	Path    string `json:"path" example:"guides/auth-setup.md" validate:"required"`
	Content string `json:"content" example:"# Auth Setup\nHow to configure auth." validate:"required"`
}

// UpdateDocRequest is the request body for updating a doc.
type UpdateDocRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// DocDetail is the full doc response type (aliased from the domain layer).
type DocDetail = docservice.DocDetail

// DocListItem is a lightweight item in a list response (aliased from the domain layer).
type DocListItem = docservice.DocListItem

// DocListResponse wraps paginated doc listings.
type DocListResponse struct {
	Docs  []DocListItem `json:"docs" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"guides/auth-setup.md" validate:"required"`
	Title   string `json:"title" example:"Auth Setup" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// GraphNode is a node in the doc reference graph.
type GraphNode struct {
	ID    string `json:"id" example:"guides/auth-setup.md" validate:"required"`
	Title string `json:"title,omitempty" example:"Auth Setup"`
}

// GraphEdge is an edge in the doc reference graph.
type GraphEdge struct {
	Source string `json:"source" example:"guides/auth-setup.md" validate:"required"`
	Target string `json:"target" example:"reference/api.md" validate:"required"`
}

// GraphResponse wraps the doc reference graph.
type GraphResponse struct {
	Nodes []GraphNode `json:"nodes" validate:"required"`
	Edges []GraphEdge `json:"edges" validate:"required"`
}

// StampResponse is returned after a batch stamping run.
type StampResponse = stamp.Report
