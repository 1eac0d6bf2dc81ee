package artifact

import (
	"context"
	"path/filepath"
	"testing"

	"culturecore/internal/artifact/core"
)

func TestOpenDefaultsToFilesystem(t *testing.T) {
	t.Setenv("CULTURECORE_ARTIFACT_DRIVER", "")
	t.Setenv("CULTURECORE_ARTIFACT_FS_ROOT", filepath.Join(t.TempDir(), "artifacts"))
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != core.DriverFilesystem {
		t.Fatalf("driver %s", store.Driver())
	}
}

func TestOpenMemoryDriver(t *testing.T) {
	t.Setenv("CULTURECORE_ARTIFACT_DRIVER", "memory")
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != core.DriverMemory {
		t.Fatalf("driver %s", store.Driver())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Setenv("CULTURECORE_ARTIFACT_DRIVER", "tape")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	t.Setenv("CULTURECORE_ARTIFACT_DRIVER", "s3")
	t.Setenv("CULTURECORE_ARTIFACT_S3_BUCKET", "")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected bucket requirement error")
	}
}
