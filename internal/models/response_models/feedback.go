package response_models

type Feedback struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Comment   string  `json:"comment"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ImageURL  *string `json:"image_url"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type Created struct {
	ID string `json:"id"`
}
