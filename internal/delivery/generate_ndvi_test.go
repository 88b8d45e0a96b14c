package delivery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

// 4x4 raster near Vienna in WGS84, 0.01 degree pixels.
var testGeoTransform = [6]float64{16.30, 0.01, 0, 48.20, 0, -0.01}

func createTestRaster(t *testing.T, path string, bands [][][]float64, nodata *float64) {
	t.Helper()
	height := len(bands[0])
	width := len(bands[0][0])

	ds, err := godal.Create(godal.GTiff, path, len(bands), godal.Float64, width, height)
	require.NoError(t, err)
	require.NoError(t, ds.SetGeoTransform(testGeoTransform))

	sr, err := godal.NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer sr.Close()
	require.NoError(t, ds.SetSpatialRef(sr))

	for bi, rows := range bands {
		band := ds.Bands()[bi]
		if nodata != nil {
			require.NoError(t, band.SetNoData(*nodata))
		}
		flat := make([]float64, width*height)
		for i, row := range rows {
			copy(flat[i*width:(i+1)*width], row)
		}
		require.NoError(t, band.Write(0, 0, flat, width, height))
	}
	require.NoError(t, ds.Close())
}

func readBandValues(t *testing.T, path string, index int) (raster.Profile, [][]float64) {
	t.Helper()
	ds, err := godal.Open(path)
	require.NoError(t, err)
	defer ds.Close()

	profile, err := raster.ReadProfile(ds)
	require.NoError(t, err)
	values, err := raster.ReadBand(ds, index)
	require.NoError(t, err)
	return profile, values
}

func TestGenerateNDVIRaster(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.tif")
	outputPath := filepath.Join(dir, "ndvi.tif")

	red := [][]float64{{0, 100}, {200, 50}}
	nir := [][]float64{{0, 200}, {100, 150}}
	createTestRaster(t, inputPath, [][][]float64{red, nir}, nil)

	result, err := GenerateNDVIRaster(inputPath, outputPath, 1, 2, -9999)
	require.NoError(t, err)
	assert.Equal(t, outputPath, result)

	profile, values := readBandValues(t, outputPath, 1)
	assert.Equal(t, 2, profile.Width)
	assert.Equal(t, 2, profile.Height)
	assert.Equal(t, 1, profile.Bands)
	assert.Equal(t, godal.Float32, profile.DataType)
	assert.Equal(t, testGeoTransform, profile.GeoTransform)
	assert.Contains(t, profile.ProjectionWKT, "WGS 84")
	require.NotNil(t, profile.NoData)
	assert.Equal(t, -9999.0, *profile.NoData)

	assert.Equal(t, 0.0, values[0][0], "zero denominator")
	assert.InDelta(t, 100.0/300.0, values[0][1], 1e-6)
	assert.InDelta(t, -100.0/300.0, values[1][0], 1e-6)
	assert.InDelta(t, 0.5, values[1][1], 1e-6)
}

func TestGenerateNDVIRasterPropagatesNoData(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.tif")
	outputPath := filepath.Join(dir, "ndvi.tif")

	nodata := -1.0
	red := [][]float64{{-1, 100}, {200, 50}}
	nir := [][]float64{{10, 200}, {-1, 150}}
	createTestRaster(t, inputPath, [][][]float64{red, nir}, &nodata)

	_, err := GenerateNDVIRaster(inputPath, outputPath, 1, 2, -9999)
	require.NoError(t, err)

	_, values := readBandValues(t, outputPath, 1)
	assert.Equal(t, -9999.0, values[0][0], "masked where red is nodata")
	assert.Equal(t, -9999.0, values[1][0], "masked where nir is nodata")
	assert.InDelta(t, 100.0/300.0, values[0][1], 1e-6)
	assert.InDelta(t, 0.5, values[1][1], 1e-6)
}

func TestGenerateNDVIRasterBandIndexError(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.tif")
	outputPath := filepath.Join(dir, "ndvi.tif")

	createTestRaster(t, inputPath, [][][]float64{{{1, 2}, {3, 4}}}, nil)

	_, err := GenerateNDVIRaster(inputPath, outputPath, 1, 5, -9999)
	require.ErrorIs(t, err, raster.ErrBandIndex)

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr), "no partial output file")
}

func TestGenerateNDVIRasterMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := GenerateNDVIRaster(filepath.Join(dir, "missing.tif"), filepath.Join(dir, "out.tif"), 1, 2, -9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input raster")
}
