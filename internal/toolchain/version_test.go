package toolchain

import (
	"context"
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		line    string
		want    string
		wantErr bool
	}{
		{"cargo 1.86.0 (adcf7e7a6 2025-03-20)", "1.86.0", false},
		{"cargo 1.88.0-nightly (a1b2c3 2025-05-01)", "1.88.0-nightly", false},
		{"rustup 1.28.1 (f9edccde0 2025-03-05)", "1.28.1", false},
		{"cargo", "", true},
		{"cargo abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			v, err := ParseVersion(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", v)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("version = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestCheckMinimum(t *testing.T) {
	old, _ := ParseVersion("cargo 1.80.1 (x 2024-08-01)")
	cur, _ := ParseVersion("cargo 1.86.0 (x 2025-03-20)")

	if ok, err := CheckMinimum(old, MinCargoVersion); err != nil || ok {
		t.Errorf("1.80.1 >= %s = %v (err %v), want false", MinCargoVersion, ok, err)
	}
	if ok, err := CheckMinimum(cur, MinCargoVersion); err != nil || !ok {
		t.Errorf("1.86.0 >= %s = %v (err %v), want true", MinCargoVersion, ok, err)
	}
}

type fakeProber struct {
	outputs map[string]string
	err     error
}

func (f *fakeProber) Output(_ context.Context, name string, args ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.outputs[name], nil
}

func TestCargoVersion(t *testing.T) {
	p := &fakeProber{outputs: map[string]string{Cargo: "cargo 1.86.0 (adcf7e7a6 2025-03-20)"}}
	v, err := CargoVersion(context.Background(), p)
	if err != nil {
		t.Fatalf("CargoVersion() error: %v", err)
	}
	if v.Major() != 1 || v.Minor() != 86 {
		t.Errorf("version = %s, want 1.86.x", v)
	}

	missing := &fakeProber{err: ErrUnavailable}
	if _, err := CargoVersion(context.Background(), missing); !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestHasTarget(t *testing.T) {
	p := &fakeProber{outputs: map[string]string{Rustup: "x86_64-unknown-linux-gnu\nwasm32-wasip2\n"}}
	ok, err := HasTarget(context.Background(), p, "wasm32-wasip2")
	if err != nil || !ok {
		t.Errorf("HasTarget(wasm32-wasip2) = %v, %v; want true", ok, err)
	}
	ok, _ = HasTarget(context.Background(), p, "wasm32-unknown-unknown")
	if ok {
		t.Error("HasTarget(wasm32-unknown-unknown) = true, want false")
	}
}
