package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8090" {
		t.Errorf("Expected Port to be 8090, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Engine.Workers != 4 {
		t.Errorf("Expected Engine Workers to be 4, got %d", cfg.Engine.Workers)
	}

	if cfg.Trading.StopLossPct != 0.05 {
		t.Errorf("Expected StopLossPct to be 0.05, got %f", cfg.Trading.StopLossPct)
	}

	if cfg.Trading.MinHoldingDays != 5 {
		t.Errorf("Expected MinHoldingDays to be 5, got %d", cfg.Trading.MinHoldingDays)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("ENGINE_WORKERS", "8")
	os.Setenv("TAKE_PROFIT_PCT", "0.20")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("ENGINE_WORKERS")
		os.Unsetenv("TAKE_PROFIT_PCT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Engine.Workers != 8 {
		t.Errorf("Expected Engine Workers to be 8, got %d", cfg.Engine.Workers)
	}

	if cfg.Trading.TakeProfitPct != 0.20 {
		t.Errorf("Expected TakeProfitPct to be 0.20, got %f", cfg.Trading.TakeProfitPct)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidPositionSizes(t *testing.T) {
	os.Setenv("MIN_POSITION_SIZE", "0.5")
	os.Setenv("MAX_POSITION_SIZE", "0.1")

	defer func() {
		os.Unsetenv("MIN_POSITION_SIZE")
		os.Unsetenv("MAX_POSITION_SIZE")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when MIN_POSITION_SIZE exceeds MAX_POSITION_SIZE, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT", "0.25")
	defer os.Unsetenv("TEST_FLOAT")

	value := getEnvAsFloat("TEST_FLOAT", 0.1)
	if value != 0.25 {
		t.Errorf("Expected value to be 0.25, got %f", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "true")
	defer os.Unsetenv("TEST_BOOL")

	value := getEnvAsBool("TEST_BOOL", false)
	if value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}
