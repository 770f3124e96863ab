// Package artifact turns a built WebAssembly component into an upload
// request. The bytes are sent exactly as cargo wrote them.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/manifest"
)

const (
	// ContentType is the MIME type of the program part.
	ContentType = "application/wasm"
	// FileName is the filename attached to the program part.
	FileName = "program"
)

// ErrArtifactNotFound means the build reported success but left no
// artifact at the expected path.
var ErrArtifactNotFound = errors.New("build artifact not found")

// DeployRequest pairs the upload with where its bytes came from.
type DeployRequest struct {
	Path   string
	Upload *api.Upload
}

// Package reads the artifact at path and builds the upload for it.
func Package(path string, meta *manifest.Metadata, organizationID string) (*DeployRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}

	return &DeployRequest{
		Path: path,
		Upload: &api.Upload{
			Name:           meta.Name,
			Description:    meta.Description,
			OrganizationID: organizationID,
			FileName:       FileName,
			ContentType:    ContentType,
			Content:        data,
		},
	}, nil
}
