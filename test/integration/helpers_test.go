//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // TILT_HOME: auth_token, organization_id_selected
	ProjectDir string // parent directory for scaffolded projects
	BinDir     string // prepended to PATH; holds fake cargo/rustup
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all tilt operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain scripts need a POSIX shell")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
		BinDir:     t.TempDir(),
	}

	t.Setenv("TILT_HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return env
}

// fakeCargo stands in for cargo. "new --lib <dir>" creates a crate skeleton
// (exiting 101 if it exists) and "build" writes a tiny component where cargo
// would put it.
const fakeCargo = `#!/bin/sh
case "$1" in
new)
	dir="$3"
	if [ -e "$dir" ]; then
		echo "error: destination $dir already exists" >&2
		exit 101
	fi
	mkdir -p "$dir/src"
	printf '[package]\nname = "placeholder"\n' > "$dir/Cargo.toml"
	: > "$dir/src/lib.rs"
	;;
build)
	name=$(sed -n 's/^name = "\(.*\)"$/\1/p' Cargo.toml | head -n 1 | sed 's/-/_/g')
	mkdir -p target/wasm32-wasip2/release
	printf '\000asm\001\000\000\000' > "target/wasm32-wasip2/release/$name.wasm"
	;;
*)
	echo "fake cargo: unsupported $1" >&2
	exit 2
	;;
esac
`

const fakeRustup = `#!/bin/sh
exit 0
`

// installFakeToolchain writes fake cargo and rustup into env.BinDir.
func installFakeToolchain(t *testing.T, env *testEnv) {
	t.Helper()
	writeExecutable(t, filepath.Join(env.BinDir, "cargo"), fakeCargo)
	writeExecutable(t, filepath.Join(env.BinDir, "rustup"), fakeRustup)
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
