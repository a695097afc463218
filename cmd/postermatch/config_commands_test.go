package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dweagle/extras/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	isolateEnv(t)

	target := filepath.Join(t.TempDir(), "postermatch", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}
	out, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, target+".bak")
	if _, err := os.Stat(target + ".bak"); err != nil {
		t.Fatalf("expected backup of previous config: %v", err)
	}

	cfg := testsupport.NewConfig(t, testsupport.WithRadarr("main", "http://radarr.local:7878", "k"))
	configPath := writeTestConfig(t, cfg)
	out, _, err = runCLI(t, []string{"config", "validate"}, configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Radarr instances")
	requireContains(t, out, configPath)
}

func TestConfigValidateRejectsIncompleteInstance(t *testing.T) {
	isolateEnv(t)

	cfg := testsupport.NewConfig(t, testsupport.WithSonarr("tv", "http://sonarr.local:8989", ""))
	configPath := writeTestConfig(t, cfg)
	_, _, err := runCLI(t, []string{"config", "validate"}, configPath)
	if err == nil {
		t.Fatal("expected validation error for sonarr without api key")
	}
	requireContains(t, err.Error(), "sonarr")
}

func TestConfigShowMasksSecrets(t *testing.T) {
	isolateEnv(t)

	cfg := testsupport.NewConfig(t,
		testsupport.WithTMDB("http://tmdb.local", "supersecretkey"),
		testsupport.WithRadarr("main", "http://radarr.local:7878", "radarrsecret"),
	)
	configPath := writeTestConfig(t, cfg)
	out, _, err := runCLI(t, []string{"config", "show"}, configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "supersecretkey") || strings.Contains(out, "radarrsecret") {
		t.Fatalf("config show leaked a secret:\n%s", out)
	}
	requireContains(t, out, "http://radarr.local:7878")
}
