package classifier

import (
	"os"
	"path/filepath"
	"strings"
)

var sharedLibraryNames = []string{
	"libonnxruntime.so",
	"onnxruntime.so",
	"libonnxruntime.dylib",
	"onnxruntime.dylib",
	"onnxruntime.dll",
}

// resolveSharedLibraryPath locates the onnxruntime shared library. An
// explicit path wins; otherwise common names are probed under the model
// directory and the usual system locations.
func resolveSharedLibraryPath(explicit, modelDir string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}

	dirs := []string{
		modelDir,
		filepath.Join(modelDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}
	for _, dir := range dirs {
		for _, name := range sharedLibraryNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
