package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBoundaryGeoJSON(t *testing.T, path string, epsg int, ring [][2]float64) {
	t.Helper()

	coords := ""
	for i, point := range ring {
		if i > 0 {
			coords += ","
		}
		coords += fmt.Sprintf("[%g,%g]", point[0], point[1])
	}
	content := fmt.Sprintf(`{"type":"FeatureCollection","crs":{"type":"name","properties":{"name":"EPSG:%d"}},"features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[%s]]}}]}`, epsg, coords)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// Corner ring of the test raster's extent, closed.
func fullExtentRing() [][2]float64 {
	minX, maxY := testGeoTransform[0], testGeoTransform[3]
	maxX := minX + 4*testGeoTransform[1]
	minY := maxY + 4*testGeoTransform[5]
	return [][2]float64{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}
}

func makeNDVIRaster(t *testing.T, dir string) string {
	t.Helper()
	inputPath := filepath.Join(dir, "input.tif")
	outputPath := filepath.Join(dir, "ndvi.tif")

	red := [][]float64{
		{10, 20, 30, 40},
		{50, 60, 70, 80},
		{90, 80, 70, 60},
		{50, 40, 30, 20},
	}
	nir := [][]float64{
		{40, 30, 20, 10},
		{80, 70, 60, 50},
		{60, 70, 80, 90},
		{20, 30, 40, 50},
	}
	createTestRaster(t, inputPath, [][][]float64{red, nir}, nil)

	_, err := GenerateNDVIRaster(inputPath, outputPath, 1, 2, -9999)
	require.NoError(t, err)
	return outputPath
}

func TestClipFullExtent(t *testing.T) {
	dir := t.TempDir()
	ndviPath := makeNDVIRaster(t, dir)
	boundaryPath := filepath.Join(dir, "boundary.geojson")
	clippedPath := filepath.Join(dir, "clipped.tif")

	writeBoundaryGeoJSON(t, boundaryPath, 4326, fullExtentRing())

	result, err := ClipNDVIByShapefile(ndviPath, boundaryPath, clippedPath)
	require.NoError(t, err)
	assert.Equal(t, clippedPath, result)

	srcProfile, srcValues := readBandValues(t, ndviPath, 1)
	clipProfile, clipValues := readBandValues(t, clippedPath, 1)

	assert.Equal(t, srcProfile.Width, clipProfile.Width)
	assert.Equal(t, srcProfile.Height, clipProfile.Height)
	assert.Equal(t, srcProfile.GeoTransform, clipProfile.GeoTransform)
	assert.Equal(t, srcProfile.DataType, clipProfile.DataType)
	assert.Equal(t, srcProfile.ProjectionWKT, clipProfile.ProjectionWKT)
	assert.Equal(t, srcValues, clipValues, "full-extent clip keeps every pixel")
}

func TestClipSubWindow(t *testing.T) {
	dir := t.TempDir()
	ndviPath := makeNDVIRaster(t, dir)
	boundaryPath := filepath.Join(dir, "boundary.geojson")
	clippedPath := filepath.Join(dir, "clipped.tif")

	// Lower-left 2x2 quadrant of the raster extent.
	minX, maxY := testGeoTransform[0], testGeoTransform[3]+2*testGeoTransform[5]
	maxX, minY := minX+2*testGeoTransform[1], maxY+2*testGeoTransform[5]
	writeBoundaryGeoJSON(t, boundaryPath, 4326, [][2]float64{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	})

	_, err := ClipNDVIByShapefile(ndviPath, boundaryPath, clippedPath)
	require.NoError(t, err)

	_, srcValues := readBandValues(t, ndviPath, 1)
	clipProfile, clipValues := readBandValues(t, clippedPath, 1)

	assert.Equal(t, 2, clipProfile.Width)
	assert.Equal(t, 2, clipProfile.Height)
	assert.Equal(t, testGeoTransform[0], clipProfile.GeoTransform[0])
	assert.Equal(t, testGeoTransform[3]+2*testGeoTransform[5], clipProfile.GeoTransform[3])
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, srcValues[i+2][j], clipValues[i][j])
		}
	}
}

func TestClipReprojectedBoundaryMatchesNative(t *testing.T) {
	dir := t.TempDir()
	ndviPath := makeNDVIRaster(t, dir)

	ring := fullExtentRing()

	// Same footprint expressed in web mercator.
	src, err := godal.NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer src.Close()
	dst, err := godal.NewSpatialRefFromEPSG(3857)
	require.NoError(t, err)
	defer dst.Close()
	tr, err := godal.NewTransform(src, dst)
	require.NoError(t, err)
	defer tr.Close()

	mercRing := make([][2]float64, len(ring))
	for i, point := range ring {
		xs, ys := []float64{point[0]}, []float64{point[1]}
		require.NoError(t, tr.TransformEx(xs, ys, nil, nil))
		mercRing[i] = [2]float64{xs[0], ys[0]}
	}

	nativePath := filepath.Join(dir, "native.geojson")
	mercPath := filepath.Join(dir, "merc.geojson")
	writeBoundaryGeoJSON(t, nativePath, 4326, ring)
	writeBoundaryGeoJSON(t, mercPath, 3857, mercRing)

	nativeOut := filepath.Join(dir, "clip_native.tif")
	mercOut := filepath.Join(dir, "clip_merc.tif")
	_, err = ClipNDVIByShapefile(ndviPath, nativePath, nativeOut)
	require.NoError(t, err)
	_, err = ClipNDVIByShapefile(ndviPath, mercPath, mercOut)
	require.NoError(t, err)

	nativeProfile, nativeValues := readBandValues(t, nativeOut, 1)
	mercProfile, mercValues := readBandValues(t, mercOut, 1)

	assert.Equal(t, nativeProfile.Width, mercProfile.Width)
	assert.Equal(t, nativeProfile.Height, mercProfile.Height)
	assert.Equal(t, nativeValues, mercValues, "reprojected boundary clips identically")
}

func TestClipEmptyIntersection(t *testing.T) {
	dir := t.TempDir()
	ndviPath := makeNDVIRaster(t, dir)
	boundaryPath := filepath.Join(dir, "boundary.geojson")
	clippedPath := filepath.Join(dir, "clipped.tif")

	// A footprint on the other side of the city.
	writeBoundaryGeoJSON(t, boundaryPath, 4326, [][2]float64{
		{17, 49}, {17.1, 49}, {17.1, 49.1}, {17, 49.1}, {17, 49},
	})

	_, err := ClipNDVIByShapefile(ndviPath, boundaryPath, clippedPath)
	require.ErrorIs(t, err, raster.ErrEmptyIntersection)

	_, statErr := os.Stat(clippedPath)
	assert.True(t, os.IsNotExist(statErr), "no output for an empty intersection")
}
