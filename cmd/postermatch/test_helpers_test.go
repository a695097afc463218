package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dweagle/extras/internal/config"
)

// isolateEnv clears variables that would otherwise add TMDB keys or library
// servers to the loaded configuration.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TMDB_API_KEY",
		"RADARR_URL", "RADARR_API_KEY",
		"SONARR_URL", "SONARR_API_KEY",
		"JELLYFIN_URL", "JELLYFIN_API_KEY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--env-file", ""}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := config.Marshal(*cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(filepath.Dir(cfg.Paths.InputFile), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
