// Provides platform-appropriate paths for the recipe generator.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The tool name "hpccm" is used as the subdirectory
// under each base path.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "hpccm"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the user defaults file supplying fallback base images.
//
//	Linux:   ~/.config/hpccm/defaults.yaml
//	macOS:   ~/Library/Application Support/hpccm/defaults.yaml
func DefaultsFile() string {
	return filepath.Join(xdg.ConfigHome, toolName, "defaults.yaml")
}

// Path to the cache directory for generated recipes.
//
//	Linux:   ~/.cache/hpccm
//	macOS:   ~/Library/Caches/hpccm
func Cache() string {
	return filepath.Join(xdg.CacheHome, toolName)
}
