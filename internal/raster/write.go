package raster

import (
	"fmt"
	"os"

	"github.com/airbusgeo/godal"
)

// Write persists bands as a new GeoTIFF described by profile. Band
// descriptions are optional; a missing or empty entry leaves the band
// unlabeled. On any failure the half-written file is removed so no partial
// output is retained.
func Write(path string, profile Profile, bands [][][]float64, descriptions []string) error {
	if len(bands) != profile.Bands {
		return fmt.Errorf("profile declares %d bands but %d were given", profile.Bands, len(bands))
	}

	ds, err := godal.Create(godal.GTiff, path, profile.Bands, profile.DataType, profile.Width, profile.Height)
	if err != nil {
		return fmt.Errorf("failed to create output raster %s: %v", path, err)
	}

	if err := writeDataset(ds, profile, bands, descriptions); err != nil {
		ds.Close()
		os.Remove(path)
		return err
	}

	if err := ds.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to finalize output raster %s: %v", path, err)
	}
	return nil
}

func writeDataset(ds *godal.Dataset, profile Profile, bands [][][]float64, descriptions []string) error {
	if err := ds.SetGeoTransform(profile.GeoTransform); err != nil {
		return fmt.Errorf("failed to set GeoTransform: %v", err)
	}

	if profile.ProjectionWKT != "" {
		sr, err := godal.NewSpatialRefFromWKT(profile.ProjectionWKT)
		if err != nil {
			return fmt.Errorf("failed to parse projection: %v", err)
		}
		defer sr.Close()
		if err := ds.SetSpatialRef(sr); err != nil {
			return fmt.Errorf("failed to set projection: %v", err)
		}
	}

	for bi, rows := range bands {
		band := ds.Bands()[bi]

		if profile.NoData != nil {
			if err := band.SetNoData(*profile.NoData); err != nil {
				return fmt.Errorf("failed to set nodata on band %d: %v", bi+1, err)
			}
		}

		flat := make([]float64, profile.Width*profile.Height)
		for i, row := range rows {
			copy(flat[i*profile.Width:(i+1)*profile.Width], row)
		}
		if err := band.Write(0, 0, flat, profile.Width, profile.Height); err != nil {
			return fmt.Errorf("failed to write band %d: %v", bi+1, err)
		}

		if bi < len(descriptions) && descriptions[bi] != "" {
			if err := band.SetDescription(descriptions[bi]); err != nil {
				return fmt.Errorf("failed to set description on band %d: %v", bi+1, err)
			}
		}
	}
	return nil
}
