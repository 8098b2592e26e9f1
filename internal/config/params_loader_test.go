package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEngineParamsEmptyPathReturnsDefaults(t *testing.T) {
	params, err := LoadEngineParams("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if params != DefaultEngineParams() {
		t.Errorf("got %+v, want compiled-in defaults", params)
	}
}

func TestLoadEngineParamsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	body := "lookback_games: 15\nhalf_life_games: 5\ncomposite:\n  xg: 0.6\n  shots: 0.3\n  goals: 0.1\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write params file: %v", err)
	}

	params, err := LoadEngineParams(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if params.LookbackGames != 15 || params.HalfLifeGames != 5 {
		t.Errorf("window override not applied: %+v", params)
	}
	if params.Composite.XG != 0.6 || params.Composite.Shots != 0.3 {
		t.Errorf("composite override not applied: %+v", params.Composite)
	}
	// Keys absent from the file keep their defaults.
	if params.ShrinkageGames != DefaultEngineParams().ShrinkageGames {
		t.Errorf("shrinkage_games = %d, want default", params.ShrinkageGames)
	}
}

func TestLoadEngineParamsRejectsBadWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("lookback_games: 0\n"), 0o644); err != nil {
		t.Fatalf("write params file: %v", err)
	}
	if _, err := LoadEngineParams(path); err == nil {
		t.Fatal("expected an error for lookback_games: 0")
	}
}

func TestLoadEngineParamsMissingFile(t *testing.T) {
	if _, err := LoadEngineParams(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
