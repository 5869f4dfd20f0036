package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/peergrade_backend_v1/internal/session"
)

func newTestRouter(reg *session.Registry, cfg AuthConfig) *gin.Engine {
    gin.SetMode(gin.TestMode)
    r := gin.New()
    r.Use(SessionAuth(reg, cfg))
    r.GET("/login", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"public": true}) })
    r.GET("/me", func(c *gin.Context) {
        ident, _ := CurrentIdentity(c)
        c.JSON(http.StatusOK, ident)
    })
    r.POST("/create_group", RequireTeacher(), func(c *gin.Context) {
        c.JSON(http.StatusCreated, gin.H{"ok": true})
    })
    return r
}

func doRequest(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, nil)
    if bearer != "" {
        req.Header.Set("Authorization", "Bearer "+bearer)
    }
    rr := httptest.NewRecorder()
    r.ServeHTTP(rr, req)
    return rr
}

func TestPublicPathBypassesAuth(t *testing.T) {
    reg := session.NewRegistry(20*time.Minute, 72*time.Hour)
    r := newTestRouter(reg, AuthConfig{PublicPaths: []string{"/login"}})

    if rr := doRequest(r, http.MethodGet, "/login", ""); rr.Code != http.StatusOK {
        t.Fatalf("public path got %d, want 200", rr.Code)
    }
}

func TestPreflightBypassesAuth(t *testing.T) {
    reg := session.NewRegistry(20*time.Minute, 72*time.Hour)
    gin.SetMode(gin.TestMode)
    r := gin.New()
    r.Use(SessionAuth(reg, AuthConfig{}))
    r.OPTIONS("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

    if rr := doRequest(r, http.MethodOptions, "/me", ""); rr.Code != http.StatusNoContent {
        t.Fatalf("preflight got %d, want 204", rr.Code)
    }
}

func TestMissingOrMalformedHeader(t *testing.T) {
    reg := session.NewRegistry(20*time.Minute, 72*time.Hour)
    r := newTestRouter(reg, AuthConfig{})

    tests := []struct {
        name   string
        header string
    }{
        {"no header", ""},
        {"wrong scheme", "Basic dXNlcjpwdw=="},
        {"unknown token", "Bearer deadbeef"},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/me", nil)
            if tc.header != "" {
                req.Header.Set("Authorization", tc.header)
            }
            rr := httptest.NewRecorder()
            r.ServeHTTP(rr, req)
            if rr.Code != http.StatusUnauthorized {
                t.Fatalf("got %d, want 401", rr.Code)
            }
        })
    }
}

func TestValidTokenPasses(t *testing.T) {
    reg := session.NewRegistry(20*time.Minute, 72*time.Hour)
    r := newTestRouter(reg, AuthConfig{})
    s := reg.Create(session.Identity{UserID: "u1", FullName: "Student"})

    if rr := doRequest(r, http.MethodGet, "/me", s.Token); rr.Code != http.StatusOK {
        t.Fatalf("got %d, want 200", rr.Code)
    }
}

func TestRequireTeacher(t *testing.T) {
    reg := session.NewRegistry(20*time.Minute, 72*time.Hour)
    r := newTestRouter(reg, AuthConfig{})

    student := reg.Create(session.Identity{UserID: "u1"})
    if rr := doRequest(r, http.MethodPost, "/create_group", student.Token); rr.Code != http.StatusForbidden {
        t.Fatalf("student got %d, want 403", rr.Code)
    }

    teacher := reg.Create(session.Identity{UserID: "u2", IsTeacher: true})
    if rr := doRequest(r, http.MethodPost, "/create_group", teacher.Token); rr.Code != http.StatusCreated {
        t.Fatalf("teacher got %d, want 201", rr.Code)
    }
}

func TestDisabledAuthLetsEverythingThrough(t *testing.T) {
    reg := session.NewRegistry(20*time.Minute, 72*time.Hour)
    r := newTestRouter(reg, AuthConfig{Disabled: true})

    if rr := doRequest(r, http.MethodGet, "/me", ""); rr.Code != http.StatusOK {
        t.Fatalf("got %d, want 200 with auth disabled", rr.Code)
    }
}
