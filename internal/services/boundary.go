package services

// Boundary is the write-path guard every geotagged record passes through.
// *geo.Gate implements it.
type Boundary interface {
	Loaded() bool
	Check(lat, lon float64) error
}
