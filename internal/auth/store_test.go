package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	s := NewStore(path)

	if err := s.Save(&Context{Token: "tok-1", Username: "ada"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil || got.Token != "tok-1" || got.Username != "ada" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestStore_LoadMissingMeansAnonymous(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.yaml"))

	ctx, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ctx != nil {
		t.Errorf("Load() = %+v, want nil for a missing file", ctx)
	}
}

func TestStore_LoadEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	if err := os.WriteFile(path, []byte("token: \"\"\nusername: ada\n"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ctx != nil {
		t.Error("a tokenless file should degrade to anonymous mode")
	}
}

func TestStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	s := NewStore(path)

	if err := s.Save(&Context{Token: "tok-1", Username: "ada"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("credential file should be gone after Delete")
	}

	// Deleting again is not an error.
	if err := s.Delete(); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}
