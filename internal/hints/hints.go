// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRemoteAuth returns hints for a rejected GitHub API token.
func ForRemoteAuth() string {
	return format("check githubOAuthToken or MDPREVIEW_GITHUB_TOKEN")
}

// ForRateLimit returns hints for an exhausted GitHub API rate limit.
// Anonymous requests have a much lower limit than authenticated ones.
func ForRateLimit(hasToken bool) string {
	if hasToken {
		return format("wait for the rate limit to reset or use --parser builtin")
	}
	return formatHints([]string{
		"create a personal access token on GitHub and set githubOAuthToken or MDPREVIEW_GITHUB_TOKEN",
		"or use --parser builtin",
	})
}

// ForRemoteUnreachable returns hints when the GitHub API cannot be reached.
// Detects CI/container environments where outbound network is often restricted.
func ForRemoteUnreachable() string {
	hints := []string{"use --parser builtin to convert offline"}

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "check outbound network access from the container or CI runner")
	}

	return formatHints(hints)
}

// ForBinaryNotFound returns hints for a missing external Markdown program.
func ForBinaryNotFound(parser string) string {
	return format("check the markdownBinaryMap entry for " + parser + " (absolute path or a program on PATH)")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents or slow parsers, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdpreview/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdpreview") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
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
