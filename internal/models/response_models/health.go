package response_models

type Health struct {
	Status         string `json:"status"`
	BoundaryLoaded bool   `json:"boundary_loaded"`
	Database       string `json:"database"`
}
