package response_models

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type BulkImport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
