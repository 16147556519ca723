package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(ErrNetwork, "fetch", "download page", "load all-seasons page", inner)

	if !errors.Is(err, ErrNetwork) {
		t.Fatal("expected wrapped error to match ErrNetwork")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected wrapped error to match inner error")
	}
	want := "network error: fetch: download page: load all-seasons page: connection refused"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("expected nil marker to default to ErrTransient")
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
