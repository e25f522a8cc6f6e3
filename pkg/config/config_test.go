package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "capabilities.yaml")

	content := `
android:
  deviceName: Pixel_6
  appPackage: com.example.app
  noReset: true
ios:
  deviceName: iPhone 14
  platformVersion: "16.4"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := cfg.Android.String("deviceName"); got != "Pixel_6" {
		t.Errorf("expected android deviceName Pixel_6, got %q", got)
	}
	if got, _ := cfg.Android.String("appPackage"); got != "com.example.app" {
		t.Errorf("expected appPackage com.example.app, got %q", got)
	}
	if noReset, ok := cfg.Android["noReset"].(bool); !ok || !noReset {
		t.Errorf("expected noReset true, got %v", cfg.Android["noReset"])
	}
	if got, _ := cfg.IOS.String("deviceName"); got != "iPhone 14" {
		t.Errorf("expected ios deviceName iPhone 14, got %q", got)
	}
}

func TestLoad_MissingFileDegradesToEmpty(t *testing.T) {
	cfg, err := Load("/nonexistent/capabilities.yaml")
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected empty config, got nil")
	}
	if len(cfg.Android) != 0 || len(cfg.IOS) != 0 {
		t.Errorf("expected empty sections, got %v / %v", cfg.Android, cfg.IOS)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "capabilities.yaml")

	if err := os.WriteFile(configPath, []byte("android: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestCapabilities_Clone(t *testing.T) {
	orig := Capabilities{"deviceName": "Pixel_6"}
	clone := orig.Clone()

	clone["deviceName"] = "Other"
	if orig["deviceName"] != "Pixel_6" {
		t.Error("mutating the clone should not affect the original")
	}
}

func TestCapabilities_CloneNil(t *testing.T) {
	var caps Capabilities
	clone := caps.Clone()
	if clone == nil {
		t.Fatal("clone of nil should be an empty, writable map")
	}
	clone["key"] = "value" // must not panic
}

func TestCapabilities_Merge(t *testing.T) {
	base := Capabilities{"deviceName": "OldDevice", "noReset": true}
	merged := base.Merge(Capabilities{"deviceName": "Pixel_6", "app": "/a.apk"})

	if merged["deviceName"] != "Pixel_6" {
		t.Errorf("override should win, got %v", merged["deviceName"])
	}
	if merged["noReset"] != true {
		t.Error("non-conflicting base keys should survive")
	}
	if merged["app"] != "/a.apk" {
		t.Error("override-only keys should be present")
	}
	if base["deviceName"] != "OldDevice" {
		t.Error("merge should not mutate the base")
	}
}

func TestCapabilities_SetDefault(t *testing.T) {
	caps := Capabilities{"deviceName": "Pixel_6"}

	caps.SetDefault("deviceName", "Android Emulator")
	caps.SetDefault("newCommandTimeout", 300)

	if caps["deviceName"] != "Pixel_6" {
		t.Error("SetDefault must not overwrite existing keys")
	}
	if caps["newCommandTimeout"] != 300 {
		t.Error("SetDefault should fill absent keys")
	}
}

func TestCapabilities_String(t *testing.T) {
	caps := Capabilities{"appiumUrl": "http://localhost:4723", "newCommandTimeout": 300}

	if v, ok := caps.String("appiumUrl"); !ok || v != "http://localhost:4723" {
		t.Errorf("expected appiumUrl string, got %q ok=%v", v, ok)
	}
	if _, ok := caps.String("newCommandTimeout"); ok {
		t.Error("non-string value should report ok=false")
	}
	if _, ok := caps.String("missing"); ok {
		t.Error("missing key should report ok=false")
	}
}
