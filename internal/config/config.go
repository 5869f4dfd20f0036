package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

type Config struct {
    Port       string
    DBHost     string
    DBPort     string
    DBUser     string
    DBPassword string
    DBName     string
    DBSSLMode  string

    // Session settings
    SessionIdleTTL time.Duration // sliding window, refreshed on each request
    SessionMaxTTL  time.Duration // absolute lifetime, fixed at login
    // AuthDisabled turns authorization off for every route. Local
    // development only; main logs a warning when it is set.
    AuthDisabled bool
    // PublicPaths are served without a session.
    PublicPaths []string

    // One-time login codes
    CodeTTL time.Duration

    // Initial teacher account
    TeacherEmail    string
    TeacherPassword string
    TeacherFullName string

    // Mail
    AppName         string
    SendGridAPIKey  string
    DefaultFromAddr string
}

func Load() *Config {
    return &Config{
        Port:       getenv("PORT", "8080"),
        DBHost:     getenv("DB_HOST", "localhost"),
        DBPort:     getenv("DB_PORT", "5432"),
        DBUser:     getenv("DB_USER", "postgres"),
        DBPassword: getenv("DB_PASSWORD", "postgres"),
        DBName:     getenv("DB_NAME", "peergrade_db"),
        DBSSLMode:  getenv("DB_SSLMODE", "disable"),

        SessionIdleTTL: minutes("SESSION_IDLE_TTL_MINUTES", 20),
        SessionMaxTTL:  days("SESSION_MAX_TTL_DAYS", 3),
        AuthDisabled:   boolean("AUTH_DISABLED", false),
        PublicPaths:    paths("AUTH_PUBLIC_PATHS", "/login,/request_code"),

        CodeTTL: minutes("LOGIN_CODE_TTL_MINUTES", 15),

        TeacherEmail:    getenv("TEACHER_EMAIL", "teacher@example.com"),
        TeacherPassword: getenv("TEACHER_PASSWORD", "teacher123"),
        TeacherFullName: getenv("TEACHER_FULL_NAME", "Course Teacher"),

        AppName:         getenv("APP_NAME", "peergrade"),
        SendGridAPIKey:  getenv("SENDGRID_API_KEY", ""),
        DefaultFromAddr: getenv("DEFAULT_FROM_EMAIL", "no-reply@example.com"),
    }
}

func getenv(key, fallback string) string {
    v := os.Getenv(key)
    if v == "" {
        return fallback
    }
    return v
}

func minutes(key string, fallback int) time.Duration {
    return time.Duration(integer(key, fallback)) * time.Minute
}

func days(key string, fallback int) time.Duration {
    return time.Duration(integer(key, fallback)) * 24 * time.Hour
}

func integer(key string, fallback int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            return n
        }
    }
    return fallback
}

func boolean(key string, fallback bool) bool {
    v := strings.ToLower(os.Getenv(key))
    if v == "" {
        return fallback
    }
    return v == "true" || v == "1"
}

func paths(key, fallback string) []string {
    raw := getenv(key, fallback)
    out := make([]string, 0)
    for _, p := range strings.Split(raw, ",") {
        p = strings.TrimSpace(p)
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}
