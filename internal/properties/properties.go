package properties

import (
	"os"
	"strconv"
)

// DefaultNoData is the nodata sentinel written to generated NDVI rasters
// when the caller does not choose one.
const DefaultNoData = -9999.0

// RootPath is the base directory of the data folders (rasters, boundaries,
// batch manifests, results).
func RootPath() string {
	if path := os.Getenv("ROOT_PATH"); path != "" {
		return path
	}
	return "."
}

// BatchWorkers is the size of the batch worker pool.
func BatchWorkers() int {
	if raw := os.Getenv("NDVI_BATCH_WORKERS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 4
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
