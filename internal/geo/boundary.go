// Package geo holds the province boundary used to gate every geotagged write.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"nwptourism/pkg/utils"
)

var ErrNotPolygonal = errors.New("boundary geometry is not a Polygon or MultiPolygon")

// Gate answers point-in-province questions. It is immutable once built and
// safe for concurrent use. A zero Gate, or one whose load failed, reports
// Loaded() == false and rejects every check.
type Gate struct {
	geom  orb.Geometry
	bound orb.Bound
	raw   []byte
}

// Load reads the boundary document at path. Failures are logged and produce
// an unloaded gate; there is no retry.
func Load(path string, log *zap.Logger) *Gate {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error("error loading boundary geojson", zap.String("path", path), zap.Error(err))
		return &Gate{}
	}
	g, err := Parse(raw)
	if err != nil {
		log.Error("error parsing boundary geojson", zap.String("path", path), zap.Error(err))
		return &Gate{}
	}
	log.Info("boundary loaded", zap.String("path", path), zap.String("type", g.geom.GeoJSONType()))
	return g
}

// Parse accepts a Feature, a FeatureCollection (first polygonal feature wins)
// or a bare Polygon/MultiPolygon geometry.
func Parse(raw []byte) (*Gate, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode boundary: %w", err)
	}

	var geom orb.Geometry
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(raw)
		if err != nil {
			return nil, fmt.Errorf("decode boundary collection: %w", err)
		}
		for _, f := range fc.Features {
			if isPolygonal(f.Geometry) {
				geom = f.Geometry
				break
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			return nil, fmt.Errorf("decode boundary feature: %w", err)
		}
		geom = f.Geometry
	default:
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, fmt.Errorf("decode boundary geometry: %w", err)
		}
		geom = g.Geometry()
	}

	return NewGate(geom, raw)
}

// NewGate builds a gate over an in-memory geometry. raw is what GeoJSON()
// hands back and may be nil.
func NewGate(geom orb.Geometry, raw []byte) (*Gate, error) {
	if !isPolygonal(geom) {
		return nil, ErrNotPolygonal
	}
	return &Gate{geom: geom, bound: geom.Bound(), raw: raw}, nil
}

func isPolygonal(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) > 0 && len(g[0]) >= 4
	case orb.MultiPolygon:
		return len(g) > 0
	}
	return false
}

func (g *Gate) Loaded() bool {
	return g != nil && g.geom != nil
}

// Contains reports whether the point lies inside the boundary, honouring
// holes. An unloaded gate contains nothing.
func (g *Gate) Contains(lat, lon float64) bool {
	if !g.Loaded() {
		return false
	}
	p := orb.Point{lon, lat}
	if !g.bound.Contains(p) {
		return false
	}
	switch geom := g.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	}
	return false
}

// Check is the write-path guard: unloaded fails closed, outside is a client
// error.
func (g *Gate) Check(lat, lon float64) error {
	if !g.Loaded() {
		return utils.ErrBoundaryUnavailable
	}
	if !utils.ValidCoordinates(lat, lon) || !g.Contains(lat, lon) {
		return utils.ErrOutOfRegion
	}
	return nil
}

// GeoJSON returns the document the gate was loaded from, or a Feature
// rendering of the geometry when it was built in memory.
func (g *Gate) GeoJSON() []byte {
	if !g.Loaded() {
		return nil
	}
	if len(g.raw) > 0 {
		return g.raw
	}
	out, err := geojson.NewFeature(g.geom).MarshalJSON()
	if err != nil {
		return nil
	}
	return out
}
