package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ccs/config"
	"ccs/config/models"
	"ccs/internal/shell"
	"ccs/internal/tui"

	"github.com/tidwall/gjson"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// setupHome points the home directory at a temp dir and stubs the host hooks.
// It returns the home directory.
func setupHome(t *testing.T, env map[string]string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	origDetect, origLookup, origPicker := detectPlatform, lookupEnv, runPicker
	t.Cleanup(func() {
		detectPlatform, lookupEnv, runPicker = origDetect, origLookup, origPicker
	})

	detectPlatform = func() shell.Platform {
		return shell.Platform{Family: shell.Unix, Name: "Linux"}
	}
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	runPicker = func([]models.Profile, string) (*models.Profile, error) {
		t.Fatal("picker should not run")
		return nil, nil
	}

	return home
}

func execute(args ...string) result {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// a nil slice would make cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeConfig(t *testing.T, home, content string) string {
	t.Helper()
	path := filepath.Join(home, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	t.Run("Command definition", func(t *testing.T) {
		if cmd.Use != "ccs [alias]" {
			t.Errorf("Use = %q, want %q", cmd.Use, "ccs [alias]")
		}
		if cmd.Short == "" {
			t.Error("Short should not be empty")
		}
		if cmd.RunE == nil {
			t.Error("RunE should not be nil")
		}
	})

	t.Run("Flags", func(t *testing.T) {
		for name, short := range map[string]string{"init": "i", "sync": "s", "pick": "p"} {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				t.Errorf("flag --%s is not defined", name)
				continue
			}
			if f.Shorthand != short {
				t.Errorf("flag --%s shorthand = %q, want %q", name, f.Shorthand, short)
			}
		}
	})

	t.Run("At most one alias", func(t *testing.T) {
		if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
			t.Error("two positional arguments should be rejected")
		}
		if err := cmd.Args(cmd, []string{"a"}); err != nil {
			t.Errorf("one positional argument should be accepted: %v", err)
		}
	})
}

func TestVersion(t *testing.T) {
	setupHome(t, nil)

	res := execute("--version")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if res.stdout != "ccs 0.1.0\n" {
		t.Errorf("version output = %q, want %q", res.stdout, "ccs 0.1.0\n")
	}
}

func TestInit(t *testing.T) {
	home := setupHome(t, nil)

	res := execute("--init")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}

	path := filepath.Join(home, config.ConfigFileName)
	if !strings.Contains(res.stdout, "Created config file: "+path) {
		t.Errorf("missing success message, got %q", res.stdout)
	}

	profiles, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(profiles) != 2 || profiles[0].Alias != "default" || profiles[1].Alias != "mirror1" {
		t.Errorf("unexpected profiles after init: %+v", profiles)
	}
}

func TestInitIgnoresAlias(t *testing.T) {
	setupHome(t, nil)

	res := execute("-i", "default")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if strings.Contains(res.stdout, "export ") {
		t.Errorf("init should not emit instructions, got %q", res.stdout)
	}
}

func TestInitOverwrites(t *testing.T) {
	home := setupHome(t, nil)
	path := writeConfig(t, home, `{"services": []}`)

	if res := execute("--init"); res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}

	profiles, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("init should restore the two sample profiles, got %d", len(profiles))
	}
}

func TestSwitchUnix(t *testing.T) {
	setupHome(t, nil)
	execute("--init")

	res := execute("default")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}

	wantLines := []string{
		"Switching to: Claude Official",
		"export ANTHROPIC_AUTH_TOKEN='your_api_key_here' && export ANTHROPIC_API_KEY='your_api_key_here' && export ANTHROPIC_BASE_URL='https://api.anthropic.com'",
		"ANTHROPIC_BASE_URL = https://api.anthropic.com",
	}
	for _, want := range wantLines {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestSwitchWindows(t *testing.T) {
	setupHome(t, nil)
	detectPlatform = func() shell.Platform {
		return shell.Platform{Family: shell.Windows, Name: "Windows"}
	}
	execute("--init")

	res := execute("mirror1")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	want := `setx ANTHROPIC_AUTH_TOKEN "your_mirror1_api_key_here"`
	if !strings.Contains(res.stdout, want) {
		t.Errorf("output missing %q:\n%s", want, res.stdout)
	}
}

func TestSwitchFirstMatchWins(t *testing.T) {
	home := setupHome(t, nil)
	writeConfig(t, home, `{"services": [
		{"alias": "dup", "name": "First", "base_url": "https://one", "api_key": "k1"},
		{"alias": "dup", "name": "Second", "base_url": "https://two", "api_key": "k2"}
	]}`)

	res := execute("dup")
	if !strings.Contains(res.stdout, "Switching to: First") {
		t.Errorf("first profile should win:\n%s", res.stdout)
	}
	if strings.Contains(res.stdout, "Second") {
		t.Errorf("second profile should be ignored:\n%s", res.stdout)
	}
}

func TestUnknownAlias(t *testing.T) {
	setupHome(t, nil)
	execute("--init")

	res := execute("nonexistent")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("stdout should be empty, got %q", res.stdout)
	}
	for _, want := range []string{"no profile with alias 'nonexistent'", "Available aliases:", "  - default", "  - mirror1"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, res.stderr)
		}
	}
}

func TestMissingConfig(t *testing.T) {
	home := setupHome(t, nil)

	for _, args := range [][]string{nil, {"default"}} {
		res := execute(args...)
		if res.err != nil {
			t.Fatalf("Execute(%v) error = %v", args, res.err)
		}
		if !strings.Contains(res.stderr, "does not exist") || !strings.Contains(res.stderr, "ccs --init") {
			t.Errorf("Execute(%v) stderr = %q", args, res.stderr)
		}
	}

	entries, err := os.ReadDir(home)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("no files should be created, found %d entries", len(entries))
	}
}

func TestMalformedConfig(t *testing.T) {
	home := setupHome(t, nil)
	writeConfig(t, home, `{"services": [`)

	res := execute("default")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("no instructions expected, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "config file format is invalid") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestList(t *testing.T) {
	setupHome(t, map[string]string{"ANTHROPIC_AUTH_TOKEN": "your_mirror1_api_key_here"})
	execute("--init")

	res := execute()
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	for _, want := range []string{
		"  default    Claude Official",
		"* mirror1    Claude Mirror 1",
		"your_m***************here",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("listing missing %q:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "your_mirror1_api_key_here") {
		t.Error("listing must mask keys")
	}
}

func TestListIgnoresSync(t *testing.T) {
	home := setupHome(t, nil)
	execute("--init")

	if res := execute("--sync"); res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "settings.json")); !os.IsNotExist(err) {
		t.Error("listing should not touch the Claude settings")
	}
}

func TestSync(t *testing.T) {
	home := setupHome(t, nil)
	execute("--init")

	settingsPath := filepath.Join(home, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(settingsPath, []byte(`{"model": "opus", "env": {"FOO": "bar"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	res := execute("mirror1", "--sync")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "Synced profile 'mirror1'") {
		t.Errorf("missing sync message:\n%s", res.stdout)
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	checks := map[string]string{
		"env.ANTHROPIC_AUTH_TOKEN": "your_mirror1_api_key_here",
		"env.ANTHROPIC_API_KEY":    "your_mirror1_api_key_here",
		"env.ANTHROPIC_BASE_URL":   "https://api-mirror1.example.com",
		"env.FOO":                  "bar",
		"model":                    "opus",
	}
	for path, want := range checks {
		if got := gjson.GetBytes(data, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	backups, _ := filepath.Glob(settingsPath + ".backup-*")
	if len(backups) != 1 {
		t.Errorf("expected one backup, found %d", len(backups))
	}
}

func TestPick(t *testing.T) {
	t.Run("chosen profile is activated", func(t *testing.T) {
		setupHome(t, nil)
		execute("--init")

		var gotToken string
		runPicker = func(profiles []models.Profile, token string) (*models.Profile, error) {
			gotToken = token
			return &profiles[1], nil
		}

		res := execute("--pick")
		if res.err != nil {
			t.Fatalf("Execute() error = %v", res.err)
		}
		if gotToken != shell.DefaultAuthToken {
			t.Errorf("picker token = %q, want %q", gotToken, shell.DefaultAuthToken)
		}
		if !strings.Contains(res.stdout, "Switching to: Claude Mirror 1") {
			t.Errorf("chosen profile not activated:\n%s", res.stdout)
		}
	})

	t.Run("quitting prints nothing", func(t *testing.T) {
		setupHome(t, nil)
		execute("--init")
		runPicker = func([]models.Profile, string) (*models.Profile, error) {
			return nil, nil
		}

		res := execute("-p")
		if res.err != nil || res.stdout != "" {
			t.Errorf("Execute() = %q, %v; want empty output", res.stdout, res.err)
		}
	})

	t.Run("falls back to the listing without a terminal", func(t *testing.T) {
		setupHome(t, nil)
		execute("--init")
		runPicker = func([]models.Profile, string) (*models.Profile, error) {
			return nil, tui.ErrNotTerminal
		}

		res := execute("-p")
		if res.err != nil {
			t.Fatalf("Execute() error = %v", res.err)
		}
		if !strings.Contains(res.stderr, "needs a terminal") {
			t.Errorf("missing fallback note:\n%s", res.stderr)
		}
		if !strings.Contains(res.stdout, "Available Claude profiles:") {
			t.Errorf("missing listing:\n%s", res.stdout)
		}
	})

	t.Run("picker errors are returned", func(t *testing.T) {
		setupHome(t, nil)
		execute("--init")
		boom := errors.New("boom")
		runPicker = func([]models.Profile, string) (*models.Profile, error) {
			return nil, boom
		}

		if res := execute("-p"); !errors.Is(res.err, boom) {
			t.Errorf("Execute() error = %v, want %v", res.err, boom)
		}
	})

	t.Run("alias takes precedence", func(t *testing.T) {
		setupHome(t, nil)
		execute("--init")

		res := execute("-p", "default")
		if !strings.Contains(res.stdout, "Switching to: Claude Official") {
			t.Errorf("alias should be activated directly:\n%s", res.stdout)
		}
	})
}

func TestDebugLogging(t *testing.T) {
	setupHome(t, map[string]string{"CCS_DEBUG": "1"})
	execute("--init")

	res := execute("default")
	if !strings.Contains(res.stderr, "detected platform") {
		t.Errorf("debug trace missing from stderr:\n%s", res.stderr)
	}
}

func TestUnknownFlag(t *testing.T) {
	setupHome(t, nil)

	if res := execute("--bogus"); res.err == nil {
		t.Error("unknown flags should be returned as errors")
	}
}
