package assets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var assetsFS embed.FS

// DefaultSkeleton is the embedded YBot rig.
const DefaultSkeleton = "ybot.yaml"

// Load reads an asset by assets-relative path. When dir is set, a file of the
// same name on disk wins over the embedded copy so rigs can be edited live.
func Load(dir, name string) ([]byte, error) {
	clean := cleanAssetPath(name)
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return assetsFS.ReadFile(clean)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
