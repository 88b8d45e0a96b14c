package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// Profile carries the dataset-level metadata of a raster: dimensions, band
// count, pixel type, geotransform, projection and the optional nodata
// sentinel. It is the single source of truth for georeferencing; individual
// band arrays never carry their own.
type Profile struct {
	Width         int
	Height        int
	Bands         int
	DataType      godal.DataType
	GeoTransform  [6]float64
	ProjectionWKT string
	NoData        *float64
}

// ReadProfile captures the profile of an open dataset. The nodata sentinel
// follows the GDAL convention of being declared on band 1.
func ReadProfile(ds *godal.Dataset) (Profile, error) {
	structure := ds.Structure()

	geoTransform, err := ds.GeoTransform()
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get GeoTransform: %w", err)
	}

	profile := Profile{
		Width:        structure.SizeX,
		Height:       structure.SizeY,
		Bands:        structure.NBands,
		DataType:     structure.DataType,
		GeoTransform: geoTransform,
	}

	if sr := ds.SpatialRef(); sr != nil {
		wkt, err := sr.WKT()
		if err == nil {
			profile.ProjectionWKT = wkt
		}
	}

	if bands := ds.Bands(); len(bands) > 0 {
		if nodata, ok := bands[0].NoData(); ok {
			profile.NoData = &nodata
		}
	}

	return profile, nil
}

// ReadBand reads a whole band, 1-indexed as rasters conventionally are, into
// rows of float64. Integer pixel types are widened by the read itself, so
// downstream arithmetic never truncates. The returned rows are slices over
// one flat buffer.
func ReadBand(ds *godal.Dataset, index int) ([][]float64, error) {
	bands := ds.Bands()
	if index < 1 || index > len(bands) {
		return nil, fmt.Errorf("%w: band %d, dataset has bands 1..%d", ErrBandIndex, index, len(bands))
	}

	structure := ds.Structure()
	data := make([]float64, structure.SizeX*structure.SizeY)
	if err := bands[index-1].Read(0, 0, data, structure.SizeX, structure.SizeY); err != nil {
		return nil, fmt.Errorf("failed to read band %d: %v", index, err)
	}

	rows := make([][]float64, structure.SizeY)
	for i := range rows {
		rows[i] = data[i*structure.SizeX : (i+1)*structure.SizeX]
	}
	return rows, nil
}

// ReadBandWindow reads the given pixel window of a band, 1-indexed, into
// rows of float64.
func ReadBandWindow(ds *godal.Dataset, index int, win Window) ([][]float64, error) {
	bands := ds.Bands()
	if index < 1 || index > len(bands) {
		return nil, fmt.Errorf("%w: band %d, dataset has bands 1..%d", ErrBandIndex, index, len(bands))
	}

	data := make([]float64, win.Width*win.Height)
	if err := bands[index-1].Read(win.Col, win.Row, data, win.Width, win.Height); err != nil {
		return nil, fmt.Errorf("failed to read band %d window %+v: %v", index, win, err)
	}

	rows := make([][]float64, win.Height)
	for i := range rows {
		rows[i] = data[i*win.Width : (i+1)*win.Width]
	}
	return rows, nil
}
