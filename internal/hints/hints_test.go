package hints

// Notes:
// - ForRemoteUnreachable tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(name, "")
	}
}

// ---------------------------------------------------------------------------
// TestForRemoteUnreachable - CI and container detection
// ---------------------------------------------------------------------------

func TestForRemoteUnreachable_InCI(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	clearCI(t)
	t.Setenv("CI", "true")

	hint := ForRemoteUnreachable()
	if !strings.Contains(hint, "--parser builtin") {
		t.Error("expected builtin parser suggestion")
	}
	if !strings.Contains(hint, "network access") {
		t.Error("expected network suggestion in CI")
	}
}

func TestForRemoteUnreachable_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	clearCI(t)

	if hint := ForRemoteUnreachable(); !strings.Contains(hint, "network access") {
		t.Errorf("expected network suggestion in container, got %q", hint)
	}
}

func TestForRemoteUnreachable_Local(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	clearCI(t)

	if hint := ForRemoteUnreachable(); strings.Contains(hint, "network access") {
		t.Errorf("unexpected network suggestion outside CI: %q", hint)
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Formatting and content
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{"remote auth", ForRemoteAuth(), "githubOAuthToken"},
		{"rate limit without token", ForRateLimit(false), "personal access token"},
		{"rate limit with token", ForRateLimit(true), "wait for the rate limit"},
		{"binary not found", ForBinaryNotFound("mmd"), "markdownBinaryMap entry for mmd"},
		{"timeout", ForTimeout(), "--timeout"},
		{"output directory", ForOutputDirectory(), "writable"},
		{"style not found", ForStyleNotFound([]string{"default", "github"}), "available: default, github"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint %q does not contain %q", tt.hint, tt.want)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"work.yaml", "/home/u/.config/go-mdpreview/work.yaml"})
	if !strings.Contains(hint, "--config") {
		t.Error("expected --config suggestion")
	}
	if !strings.Contains(hint, "or create /home/u/.config/go-mdpreview/work.yaml") {
		t.Errorf("expected user config path suggestion, got %q", hint)
	}
}

func TestForStyleNotFound_Empty(t *testing.T) {
	t.Parallel()

	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", hint)
	}
}
