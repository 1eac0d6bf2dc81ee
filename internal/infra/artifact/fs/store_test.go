package fs

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"culturecore/internal/artifact/core"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "artifacts")
	store, err := New(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, root
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	key := core.ResultsKey("run-1")
	put, err := store.Put(ctx, key, bytes.NewReader([]byte("payload")), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if put.Size != 7 || put.ETag == "" {
		t.Fatalf("put info: %+v", put)
	}
	info, rc, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "payload" || info.ETag != put.ETag {
		t.Fatalf("round trip: %q %+v", body, info)
	}
}

func TestStoreCreateOnly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Put(ctx, "k", bytes.NewReader([]byte("a")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "k", bytes.NewReader([]byte("b")), core.PutOptions{}); err == nil {
		t.Fatalf("overwrite accepted")
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Put(ctx, core.ResultsKey("run-2"), bytes.NewReader([]byte("x")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	reopened, err := New(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := reopened.Head(ctx, core.ResultsKey("run-2")); err != nil {
		t.Fatalf("head after reopen: %v", err)
	}
	infos, err := reopened.List(ctx, "runs/")
	if err != nil || len(infos) != 1 {
		t.Fatalf("list after reopen: %v %d", err, len(infos))
	}
}

func TestStoreRejectsTraversalKeys(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"", "  ", "../escape", "/abs", "a/../../b"} {
		if _, err := store.Put(ctx, key, bytes.NewReader(nil), core.PutOptions{}); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	if ok, err := store.Delete(ctx, "missing"); err != nil || ok {
		t.Fatalf("delete missing: %v %v", ok, err)
	}
	if _, err := store.Put(ctx, "gone", bytes.NewReader([]byte("x")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := store.Delete(ctx, "gone"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := store.Head(ctx, "gone"); err == nil {
		t.Fatalf("head after delete succeeded")
	}
}

func TestStorePresignReturnsLocalURL(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	url, err := store.PresignURL(ctx, "some/key", core.SignedURLOptions{})
	if err != nil || url == "" {
		t.Fatalf("presign: %q %v", url, err)
	}
	if _, err := store.PresignURL(ctx, "some/key", core.SignedURLOptions{Method: "PUT"}); err != core.ErrUnsupported {
		t.Fatalf("expected ErrUnsupported for PUT, got %v", err)
	}
}
