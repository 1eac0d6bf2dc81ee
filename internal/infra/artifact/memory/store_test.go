package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"culturecore/internal/artifact/core"
)

func TestStoreMissingKey(t *testing.T) {
	store := New()
	ctx := context.Background()
	if _, err := store.Head(ctx, "missing"); err == nil {
		t.Fatalf("expected head error")
	}
	if _, _, err := store.Get(ctx, "missing"); err == nil {
		t.Fatalf("expected get error")
	}
	if ok, err := store.Delete(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected delete to report absence")
	}
}

func TestStorePutGetDelete(t *testing.T) {
	store := New()
	ctx := context.Background()
	info, err := store.Put(ctx, core.ResultsKey("r1"), bytes.NewReader([]byte(`{"ok":true}`)), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"plate_id": "PL-1"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 11 || info.ContentType != "application/json" {
		t.Fatalf("info: %+v", info)
	}
	if _, err := store.Put(ctx, core.ResultsKey("r1"), bytes.NewReader(nil), core.PutOptions{}); err == nil {
		t.Fatalf("duplicate put accepted")
	}
	got, rc, err := store.Get(ctx, core.ResultsKey("r1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"ok":true}` || got.Metadata["plate_id"] != "PL-1" {
		t.Fatalf("round trip lost data: %q %+v", body, got)
	}
	if ok, err := store.Delete(ctx, core.ResultsKey("r1")); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
}

func TestStoreListByRunPrefix(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, key := range []string{core.ResultsKey("r2"), core.ManifestKey("r2"), core.ResultsKey("r10")} {
		if _, err := store.Put(ctx, key, bytes.NewReader([]byte("x")), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "runs/r2/")
	if err != nil || len(infos) != 2 {
		t.Fatalf("list: %v %d", err, len(infos))
	}
	if infos[0].Key > infos[1].Key {
		t.Fatalf("list not sorted: %v", infos)
	}
	all, err := store.List(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v %d", err, len(all))
	}
}

func TestStorePresignUnsupported(t *testing.T) {
	if _, err := New().PresignURL(context.Background(), "k", core.SignedURLOptions{}); err != core.ErrUnsupported {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
