// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/regscan/pkg/types"
)

const hitsBase = "hits"

// ExportHits writes the per-report hits to outDir/hits.yaml or hits.json and
// returns the written path.
func ExportHits(outDir string, format types.ExportFormat, hits []types.ReportHits) (string, error) {
	if hits == nil {
		hits = []types.ReportHits{}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case types.ExportYAML:
		data, err = yaml.Marshal(hits)
	case types.ExportJSON:
		data, err = json.MarshalIndent(hits, "", "  ")
	default:
		return "", fmt.Errorf("unsupported export format %q: use yaml or json", format)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", format, err)
	}

	path := filepath.Join(outDir, hitsBase+"."+string(format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
