//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/auth"
	"github.com/tilt-network/tilt/internal/build"
	"github.com/tilt-network/tilt/internal/credentials"
	"github.com/tilt-network/tilt/internal/deploy"
	"github.com/tilt-network/tilt/internal/manifest"
	"github.com/tilt-network/tilt/internal/programs"
	"github.com/tilt-network/tilt/internal/scaffold"
	"github.com/tilt-network/tilt/internal/toolchain"
)

// service is an in-memory stand-in for the Tilt API.
type service struct {
	mu       sync.Mutex
	programs []string
	uploads  int
}

func (s *service) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

func (s *service) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sign_in/api_key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"session-1"}`))
	})
	mux.HandleFunc("GET /organizations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"org-a","name":"Alpha"},{"id":"org-b","name":"Beta"}]}`))
	})
	mux.HandleFunc("POST /organizations/select", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"session-2"}`))
	})
	mux.HandleFunc("POST /programs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer session-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f, _, err := r.FormFile("program")
		if err != nil {
			t.Errorf("missing program part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		if !bytes.HasPrefix(data, []byte("\x00asm")) {
			t.Errorf("program is not a wasm module: %q", data)
		}
		s.mu.Lock()
		s.uploads++
		s.programs = append(s.programs, r.FormValue("name"))
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /programs", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var items []string
		for _, name := range s.programs {
			items = append(items, `{"name":"`+name+`"}`)
		}
		w.Write([]byte(`{"data":[` + strings.Join(items, ",") + `]}`))
	})
	return mux
}

// TestFullFlowNewDeployList tests the complete flow:
// sign in -> scaffold project -> deploy -> list.
func TestFullFlowNewDeployList(t *testing.T) {
	env := setupTestEnv(t)
	installFakeToolchain(t, env)

	svc := &service{}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()
	client := api.New(server.URL, api.WithHTTPClient(server.Client()))
	store := credentials.New(nil)
	ctx := context.Background()

	// Step 1: Sign in and pick the second organization.
	session := auth.NewSession(client, store)
	if err := session.SubmitSecretKey(ctx, "sk-test"); err != nil {
		t.Fatalf("SubmitSecretKey: %v", err)
	}
	if err := session.Prompt(ctx, strings.NewReader("2\n"), io.Discard, 2); err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	assertFileContains(t, filepath.Join(env.HomeDir, credentials.TokenFile), "session-2")
	assertFileContains(t, filepath.Join(env.HomeDir, credentials.OrganizationFile), "org-b")

	// Step 2: Scaffold a project.
	chdir(t, env.ProjectDir)
	tool := &toolchain.Exec{Stdout: io.Discard, Stderr: io.Discard}
	result, err := scaffold.Create(ctx, tool, "hello-tilt")
	if err != nil {
		t.Fatalf("scaffold.Create: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	projectDir := filepath.Join(env.ProjectDir, "hello-tilt")
	assertFileContains(t, filepath.Join(projectDir, manifest.FileName), "crate-type = [\"cdylib\"]")
	assertFileExists(t, filepath.Join(projectDir, "wit", "tilt_sdk.wit"))

	// Creating it again fails with the cargo "exists" status.
	if _, err := scaffold.Create(ctx, tool, "hello-tilt"); !errors.Is(err, scaffold.ErrProjectExists) {
		t.Errorf("second Create error = %v, want ErrProjectExists", err)
	}

	// Step 3: Deploy from inside the project.
	chdir(t, projectDir)
	meta, err := manifest.Load(".")
	if err != nil {
		t.Fatalf("manifest.Load: %v", err)
	}
	p := &deploy.Pipeline{
		Builder:     &build.Runner{Tool: tool},
		Credentials: store,
		Uploader:    client,
	}
	res, err := p.Deploy(ctx, meta)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if res.Status != http.StatusCreated || res.Organization != "org-b" {
		t.Errorf("unexpected deploy result %+v", res)
	}
	assertFileExists(t, filepath.Join(projectDir, "target", "wasm32-wasip2", "release", "hello_tilt.wasm"))

	// Step 4: The deployed program is listed.
	lister := &programs.Lister{Credentials: store, Remote: client}
	page, err := lister.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Name == nil || *page.Data[0].Name != "hello-tilt" {
		t.Errorf("unexpected programs %+v", page.Data)
	}
	if n := svc.uploadCount(); n != 1 {
		t.Errorf("uploads = %d, want 1", n)
	}
}

// TestDeployWithoutSession checks that a deploy without credentials builds
// but never reaches the network.
func TestDeployWithoutSession(t *testing.T) {
	env := setupTestEnv(t)
	installFakeToolchain(t, env)

	svc := &service{}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()

	chdir(t, env.ProjectDir)
	tool := &toolchain.Exec{Stdout: io.Discard, Stderr: io.Discard}
	if _, err := scaffold.Create(context.Background(), tool, "lonely"); err != nil {
		t.Fatal(err)
	}
	chdir(t, filepath.Join(env.ProjectDir, "lonely"))

	p := &deploy.Pipeline{
		Builder:     &build.Runner{Tool: tool},
		Credentials: credentials.New(nil),
		Uploader:    api.New(server.URL),
	}
	_, err := p.Deploy(context.Background(), &manifest.Metadata{Name: "lonely"})
	if !errors.Is(err, credentials.ErrNotAuthenticated) {
		t.Errorf("Deploy error = %v, want ErrNotAuthenticated", err)
	}
	if n := svc.uploadCount(); n != 0 {
		t.Errorf("uploads = %d, want 0", n)
	}
	assertFileNotExists(t, filepath.Join(env.HomeDir, credentials.TokenFile))
}
