package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod_SecureModes(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "auth_token")
	if err := os.WriteFile(file, []byte("tok"), 0644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(tmp, "root")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		mode os.FileMode
	}{
		{"file", file, FilePermSecure},
		{"dir", dir, DirPermSecure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Chmod(tt.path, tt.mode); err != nil {
				t.Fatalf("Chmod() error: %v", err)
			}
			if runtime.GOOS == "windows" {
				return
			}
			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != tt.mode {
				t.Errorf("permissions = %o, want %o", perm, tt.mode)
			}
		})
	}
}

func TestChmod_Missing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no-op on windows")
	}
	if err := Chmod(filepath.Join(t.TempDir(), "nope"), FilePermSecure); !os.IsNotExist(err) {
		t.Errorf("Chmod() error = %v, want not-exist", err)
	}
}
