package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/artifact"
	"github.com/tilt-network/tilt/internal/build"
	"github.com/tilt-network/tilt/internal/credentials"
	"github.com/tilt-network/tilt/internal/logger"
	"github.com/tilt-network/tilt/internal/manifest"
)

// Builder produces the artifact to deploy.
type Builder interface {
	Build(ctx context.Context, meta *manifest.Metadata) (*build.Result, error)
}

// Credentials supplies the persisted session.
type Credentials interface {
	Load() (credentials.Credential, error)
	LoadSelectedOrganization() (string, error)
}

// Uploader sends the program to the remote service.
type Uploader interface {
	UploadProgram(ctx context.Context, token string, u *api.Upload) (*api.UploadResult, error)
}

// PackageFunc reads an artifact into an upload. artifact.Package by default.
type PackageFunc func(path string, meta *manifest.Metadata, organizationID string) (*artifact.DeployRequest, error)

// RejectedError means the service answered the upload with a non-2xx status.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("deploy rejected with status %d", e.Status)
	}
	return fmt.Sprintf("deploy rejected with status %d: %s", e.Status, e.Body)
}

// Result describes an accepted deploy.
type Result struct {
	Status       int
	ArtifactPath string
	Organization string
}

// Pipeline wires the deploy steps together.
type Pipeline struct {
	Builder     Builder
	Credentials Credentials
	Uploader    Uploader
	Package     PackageFunc
	Logger      *slog.Logger
}

// Deploy builds, packages and uploads the project described by meta.
// There are no retries; an upload is sent at most once.
func (p *Pipeline) Deploy(ctx context.Context, meta *manifest.Metadata) (*Result, error) {
	log := p.Logger
	if log == nil {
		log = logger.Discard()
	}

	built, err := p.Builder.Build(ctx, meta)
	if err != nil {
		return nil, err
	}
	log.Debug("build finished", slog.String("artifact", built.ArtifactPath))

	cred, err := p.Credentials.Load()
	if err != nil {
		return nil, err
	}
	orgID, err := p.Credentials.LoadSelectedOrganization()
	if err != nil {
		return nil, err
	}

	pkg := p.Package
	if pkg == nil {
		pkg = artifact.Package
	}
	req, err := pkg(built.ArtifactPath, meta, orgID)
	if err != nil {
		return nil, err
	}
	log.Debug("uploading program",
		slog.String("name", req.Upload.Name),
		slog.String("organization_id", orgID),
		slog.Int("bytes", len(req.Upload.Content)),
	)

	res, err := p.Uploader.UploadProgram(ctx, cred.Token, req.Upload)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			return nil, &RejectedError{Status: se.Status, Body: se.Body}
		}
		return nil, err
	}

	return &Result{Status: res.Status, ArtifactPath: built.ArtifactPath, Organization: orgID}, nil
}
