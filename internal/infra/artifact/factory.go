// Package artifact selects an artifact store backend from the environment.
package artifact

import (
	"context"
	"fmt"
	"os"

	"culturecore/internal/artifact/core"
	"culturecore/internal/infra/artifact/fs"
	"culturecore/internal/infra/artifact/memory"
	"culturecore/internal/infra/artifact/s3"
)

// Open selects a core.Store implementation using environment variables.
//
//	CULTURECORE_ARTIFACT_DRIVER: fs|s3|memory (default fs)
//	CULTURECORE_ARTIFACT_FS_ROOT: directory root when driver=fs (default ./artifacts)
//	(S3 specific variables documented in the s3 package)
func Open(ctx context.Context) (core.Store, error) {
	driver := os.Getenv("CULTURECORE_ARTIFACT_DRIVER")
	if driver == "" {
		driver = string(core.DriverFilesystem)
	}
	switch core.Driver(driver) {
	case core.DriverFilesystem:
		return fs.New(os.Getenv("CULTURECORE_ARTIFACT_FS_ROOT"))
	case core.DriverS3:
		return s3.OpenFromEnv(ctx)
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %s", driver)
	}
}
