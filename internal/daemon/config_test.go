package daemon_test

import (
	"testing"

	"github.com/vigor-health/vigor/internal/daemon"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("VIGOR_HOME", t.TempDir())

	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 8480 {
		t.Errorf("default port = %d, want 8480", cfg.API.Port)
	}
	if cfg.Scoring.DefaultBaseline != 290 {
		t.Errorf("default baseline = %v, want 290", cfg.Scoring.DefaultBaseline)
	}
}

func TestSaveLoadConfig_Roundtrip(t *testing.T) {
	t.Setenv("VIGOR_HOME", t.TempDir())

	cfg := daemon.DefaultConfig()
	cfg.API.Port = 9000
	cfg.Telemetry.Prometheus = false
	if err := daemon.SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9000 {
		t.Errorf("port = %d, want 9000", loaded.API.Port)
	}
	if loaded.Telemetry.Prometheus {
		t.Error("prometheus toggle did not survive the roundtrip")
	}
}
