package request_models

// UploadAssetRequest uses the lat/lng field names the asset upload page posts.
type UploadAssetRequest struct {
	Name        string     `json:"name" form:"name"`
	Category    string     `json:"category" form:"category"`
	Description string     `json:"description" form:"description"`
	Lat         Coordinate `json:"lat" form:"lat"`
	Lng         Coordinate `json:"lng" form:"lng"`
}
