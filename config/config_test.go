package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"PRESENTER", "ATTENDANCE_BACKEND", "MIN_FACE_CONFIDENCE", "TWILIO_ACCOUNT_SID"} {
		t.Setenv(key, "")
	}
	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.Presenter != "terminal" || cfg.AttendanceBackend != "sqlite" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MinFaceConfidence != 0.6 {
		t.Errorf("MinFaceConfidence = %v", cfg.MinFaceConfidence)
	}
	if cfg.TwilioEnabled() {
		t.Error("Twilio should be disabled without credentials")
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv("PRESENTER", "websocket")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://kiosk.local, http://lobby.local")
	t.Setenv("MIN_FACE_CONFIDENCE", "0.75")
	t.Setenv("LISTEN_TIMEOUT", "2.5")
	t.Setenv("SESSION_TIMEOUT", "0")
	t.Setenv("WAKE_WORD", "  Hey Desk ")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC1")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550000000")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.Presenter != "websocket" || cfg.Port != 9090 {
		t.Errorf("presenter/port: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://lobby.local" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.MinFaceConfidence != 0.75 {
		t.Errorf("MinFaceConfidence = %v", cfg.MinFaceConfidence)
	}
	if cfg.ListenTimeout != 2500*time.Millisecond {
		t.Errorf("ListenTimeout = %v", cfg.ListenTimeout)
	}
	if cfg.IdleTimeout != 0 {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout)
	}
	if cfg.WakeWord != "hey desk" {
		t.Errorf("WakeWord = %q", cfg.WakeWord)
	}
	if !cfg.TwilioEnabled() {
		t.Error("Twilio should be enabled")
	}
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                "eighty",
		"PRESENTER":           "hologram",
		"ATTENDANCE_BACKEND":  "paper",
		"MIN_FACE_CONFIDENCE": "1.5",
		"LISTEN_TIMEOUT":      "-1",
		"NOTIFY_TIMEOUT":      "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := fromEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestRedisAttendanceNeedsURL(t *testing.T) {
	t.Setenv("ATTENDANCE_BACKEND", "redis")
	if _, err := fromEnv(); err == nil {
		t.Fatal("expected error without REDIS_URL")
	}
	t.Setenv("REDIS_URL", "localhost:6379")
	if _, err := fromEnv(); err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
}
