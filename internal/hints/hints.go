// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-scribe/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVariables are set by the CI providers we know of.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func inCI() bool {
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow exports.
func ForTimeout() string {
	return format("for large documents, use --timeout flag or timeout in the config file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "go-scribe" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputPath returns hints for errors writing the exported file.
func ForOutputPath() string {
	return format("check parent directory exists and is writable")
}

// ForFont returns hints for a configured fallback font that could not be loaded.
// section is the config key, e.g. "fonts.emoji".
func ForFont(section string) string {
	return formatHints([]string{
		"supported formats: TTF, OTF, WOFF, WOFF2",
		"remove " + section + ".file to rely on the installed " + section + ".family",
	})
}

// ForGrammarService returns hints for an unreachable grammar service.
func ForGrammarService(endpoint string) string {
	if endpoint == "" {
		return format("set grammar.endpoint or --grammar-endpoint")
	}
	return format("start a LanguageTool server at " + endpoint + ", e.g. docker run -p 8081:8010 erikvl87/languagetool")
}

// ForAssetPath returns hints for an unusable assets directory.
func ForAssetPath() string {
	return format("the directory must exist and contain templates/ or styles/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
