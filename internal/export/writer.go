package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bldgsim/thermogen/internal/render"
)

// writeArtifact writes one rendered artifact below root. The content goes
// to a temporary file first and is renamed into place, so a crash never
// leaves a partially written file under the final name.
func writeArtifact(root string, artifact *render.Artifact) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(artifact.Path))
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".thermogen-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(artifact.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("moving %s into place: %w", dest, err)
	}
	return dest, nil
}
