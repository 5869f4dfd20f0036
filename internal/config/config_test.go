package config

import (
    "os"
    "testing"
    "time"
)

func TestGetenvFallback(t *testing.T) {
    tests := []struct {
        name     string
        key      string
        envValue string
        fallback string
        want     string
    }{
        {"uses env value", "PG_TEST_VAR_1", "hello", "default", "hello"},
        {"uses fallback when unset", "PG_TEST_VAR_2", "", "default", "default"},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            if tc.envValue != "" {
                os.Setenv(tc.key, tc.envValue)
                defer os.Unsetenv(tc.key)
            }
            if got := getenv(tc.key, tc.fallback); got != tc.want {
                t.Errorf("got %q, want %q", got, tc.want)
            }
        })
    }
}

func TestDurationParsing(t *testing.T) {
    os.Setenv("PG_TEST_MINUTES", "45")
    defer os.Unsetenv("PG_TEST_MINUTES")
    if got := minutes("PG_TEST_MINUTES", 20); got != 45*time.Minute {
        t.Errorf("got %v, want 45m", got)
    }
    if got := minutes("PG_TEST_MISSING", 20); got != 20*time.Minute {
        t.Errorf("got %v, want fallback 20m", got)
    }

    os.Setenv("PG_TEST_BAD", "not-a-number")
    defer os.Unsetenv("PG_TEST_BAD")
    if got := days("PG_TEST_BAD", 3); got != 3*24*time.Hour {
        t.Errorf("got %v, want fallback 3d", got)
    }
}

func TestDefaultSessionTTLs(t *testing.T) {
    cfg := Load()
    if cfg.SessionIdleTTL != 20*time.Minute {
        t.Errorf("idle TTL default %v, want 20m", cfg.SessionIdleTTL)
    }
    if cfg.SessionMaxTTL != 72*time.Hour {
        t.Errorf("max TTL default %v, want 72h", cfg.SessionMaxTTL)
    }
    if cfg.AuthDisabled {
        t.Error("auth must be enabled by default")
    }
}

func TestPublicPathsParsing(t *testing.T) {
    os.Setenv("AUTH_PUBLIC_PATHS", "/login, /request_code ,,/healthz")
    defer os.Unsetenv("AUTH_PUBLIC_PATHS")
    got := Load().PublicPaths
    want := []string{"/login", "/request_code", "/healthz"}
    if len(got) != len(want) {
        t.Fatalf("got %v, want %v", got, want)
    }
    for i := range want {
        if got[i] != want[i] {
            t.Fatalf("got %v, want %v", got, want)
        }
    }
}
