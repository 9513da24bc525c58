package filestore

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
)

func TestInMemoryStore_PutGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, AvatarKey("123456789012"), []byte("png-bytes")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := store.Get(ctx, "avatars/123456789012")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestInMemoryStore_PutEmptyKey(t *testing.T) {
	store := NewInMemoryStore()

	err := store.Put(context.Background(), "", []byte("x"))
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
}

func TestInMemoryStore_GetMissing(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get(context.Background(), "avatars/nobody")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "avatars/x", []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "avatars/x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "avatars/x"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound on second delete, got %v", err)
	}
}

func TestParseDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	up, err := ParseDataURL("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("ParseDataURL: %v", err)
	}
	if up.ContentType != "image/png" {
		t.Errorf("unexpected content type: %s", up.ContentType)
	}
	if string(up.Data) != "image-bytes" {
		t.Errorf("unexpected data: %s", up.Data)
	}
}

func TestParseDataURL_Invalid(t *testing.T) {
	cases := []string{
		"",
		"image-bytes",
		"data:image/png;base64,", // empty payload
		"data:;base64,aGk=",
		"data:image/png;base64,!!!not-base64!!!",
	}
	for _, in := range cases {
		if _, err := ParseDataURL(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}
