package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, root string, m Manifest) string {
	t.Helper()

	pluginDir := filepath.Join(root, m.Name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	return pluginDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()

	pluginDir := writeManifest(t, tmpDir, Manifest{
		Name:        "keyboard",
		Version:     "1.0.0",
		Description: "Simulates key presses on pinch events",
		Executable:  "keyboard",
		Actions:     []string{"press_key", "type_text"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	p := plugins[0]
	if p.Manifest.Name != "keyboard" {
		t.Errorf("expected plugin name 'keyboard', got %q", p.Manifest.Name)
	}
	if len(p.Manifest.Actions) != 2 {
		t.Errorf("expected 2 actions, got %d", len(p.Manifest.Actions))
	}
	if p.Path != pluginDir {
		t.Errorf("expected path %q, got %q", pluginDir, p.Path)
	}
	if p.Executable != filepath.Join(pluginDir, "keyboard") {
		t.Errorf("unexpected executable path %q", p.Executable)
	}
}

func TestManager_Discover_MultiplePlugins(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"keyboard", "system-control"} {
		writeManifest(t, tmpDir, Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name,
			Actions:    []string{"run"},
		})
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	if got := len(manager.List()); got != 2 {
		t.Fatalf("expected 2 plugins, got %d", got)
	}
}

func TestManager_Discover_SkipsInvalidManifest(t *testing.T) {
	tmpDir := t.TempDir()

	badDir := filepath.Join(tmpDir, "bad-plugin")
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "plugin.json"), []byte("not valid json"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() should skip invalid manifests, got: %v", err)
	}
	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 plugins, got %d", got)
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager("/path/that/does/not/exist")

	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed on non-existent dir: %v", err)
	}
	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 plugins, got %d", got)
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()

	writeManifest(t, tmpDir, Manifest{
		Name:       "system-control",
		Version:    "2.0.0",
		Executable: "system-control",
		Actions:    []string{"volume_up"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	p, err := manager.Get("system-control")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if p.Manifest.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %q", p.Manifest.Version)
	}

	if _, err := manager.Get("missing"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestManager_PluginDir(t *testing.T) {
	manager := NewManager("/opt/mudra/plugins")
	if manager.PluginDir() != "/opt/mudra/plugins" {
		t.Errorf("unexpected plugin dir %q", manager.PluginDir())
	}
}
