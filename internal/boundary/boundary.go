package boundary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ErrCRSMismatch is returned when no common reference system can be
// established between the boundary and the raster it should clip.
var ErrCRSMismatch = errors.New("cannot establish a common reference system")

// Boundary is a set of polygon geometries plus the projection they are
// expressed in. Attribute fields of the source are irrelevant here; only
// the footprint matters.
type Boundary struct {
	Polygons      orb.MultiPolygon
	ProjectionWKT string
}

// Load reads all polygon geometries from a vector source (shapefile,
// zipped shapefile, GeoJSON, anything the installed drivers handle).
func Load(path string) (*Boundary, error) {
	godal.RegisterInternalDrivers()

	openPath := path
	if strings.HasSuffix(path, ".zip") {
		openPath = "/vsizip/" + path
	}

	ds, err := godal.Open(openPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open boundary %s: %v", path, err)
	}
	defer ds.Close()

	b := &Boundary{}
	for _, layer := range ds.Layers() {
		for {
			feat := layer.NextFeature()
			if feat == nil {
				break
			}

			geom := feat.Geometry()
			if geom == nil {
				feat.Close()
				continue
			}

			if b.ProjectionWKT == "" {
				if sr := geom.SpatialRef(); sr != nil {
					if wkt, err := sr.WKT(); err == nil {
						b.ProjectionWKT = wkt
					}
				}
			}

			gj, err := geom.GeoJSON()
			feat.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to export boundary geometry: %v", err)
			}
			if err := b.appendGeoJSON([]byte(gj)); err != nil {
				return nil, err
			}
		}
	}

	if len(b.Polygons) == 0 {
		return nil, fmt.Errorf("no polygon geometries found in %s", path)
	}
	return b, nil
}

func (b *Boundary) appendGeoJSON(data []byte) error {
	geom, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("failed to parse boundary geometry: %v", err)
	}

	switch g := geom.Geometry().(type) {
	case orb.Polygon:
		b.Polygons = append(b.Polygons, g)
	case orb.MultiPolygon:
		b.Polygons = append(b.Polygons, g...)
	default:
		// Points and lines have no footprint to clip by.
	}
	return nil
}

// ReprojectTo transforms every boundary vertex into the given projection.
// The raster side is never touched; the geometry always moves to the
// raster's reference system. A missing projection on either side, or a
// transform GDAL cannot establish, is a CRS mismatch.
func (b *Boundary) ReprojectTo(projectionWKT string) error {
	if b.ProjectionWKT == projectionWKT {
		return nil
	}
	if b.ProjectionWKT == "" || projectionWKT == "" {
		return fmt.Errorf("%w: boundary or raster has no projection", ErrCRSMismatch)
	}

	src, err := godal.NewSpatialRefFromWKT(b.ProjectionWKT)
	if err != nil {
		return fmt.Errorf("%w: invalid boundary projection: %v", ErrCRSMismatch, err)
	}
	defer src.Close()

	dst, err := godal.NewSpatialRefFromWKT(projectionWKT)
	if err != nil {
		return fmt.Errorf("%w: invalid raster projection: %v", ErrCRSMismatch, err)
	}
	defer dst.Close()

	if src.IsSame(dst) {
		return nil
	}

	tr, err := godal.NewTransform(src, dst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCRSMismatch, err)
	}
	defer tr.Close()

	for pi, polygon := range b.Polygons {
		for ri, ring := range polygon {
			xs := make([]float64, len(ring))
			ys := make([]float64, len(ring))
			for i, point := range ring {
				xs[i] = point.X()
				ys[i] = point.Y()
			}
			if err := tr.TransformEx(xs, ys, nil, nil); err != nil {
				return fmt.Errorf("%w: transform failed: %v", ErrCRSMismatch, err)
			}
			for i := range ring {
				b.Polygons[pi][ri][i] = orb.Point{xs[i], ys[i]}
			}
		}
	}

	b.ProjectionWKT = projectionWKT
	return nil
}

// Bound returns the union bound of all boundary polygons.
func (b *Boundary) Bound() orb.Bound {
	bound := b.Polygons[0].Bound()
	for _, polygon := range b.Polygons[1:] {
		bound = bound.Union(polygon.Bound())
	}
	return bound
}

// Contains reports whether the point falls inside any boundary polygon.
func (b *Boundary) Contains(point orb.Point) bool {
	return planar.MultiPolygonContains(b.Polygons, point)
}
