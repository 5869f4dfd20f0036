package middleware

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/peergrade_backend_v1/internal/session"
)

// IdentityKey is the context key handlers read the authenticated identity
// from.
const IdentityKey = "identity"

type AuthConfig struct {
    // Disabled turns authorization off entirely. Local development only.
    Disabled bool
    // PublicPaths are exact request paths served without a session.
    PublicPaths []string
}

// SessionAuth gates every request on a valid bearer token in the registry.
// CORS preflights and the configured public paths pass through untouched.
// Every failure mode (missing header, unknown token, idle or absolute
// expiry) answers with the same opaque 401.
func SessionAuth(reg *session.Registry, cfg AuthConfig) gin.HandlerFunc {
    public := make(map[string]struct{}, len(cfg.PublicPaths))
    for _, p := range cfg.PublicPaths {
        public[p] = struct{}{}
    }
    return func(c *gin.Context) {
        if cfg.Disabled {
            c.Set(IdentityKey, session.Identity{UserID: "dev", FullName: "auth disabled", IsTeacher: true})
            c.Next()
            return
        }
        if c.Request.Method == http.MethodOptions {
            c.Next()
            return
        }
        if _, ok := public[c.Request.URL.Path]; ok {
            c.Next()
            return
        }

        auth := c.GetHeader("Authorization")
        if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        token := strings.TrimSpace(auth[len("Bearer "):])

        ident, err := reg.Authorize(token)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        c.Set(IdentityKey, ident)
        c.Next()
    }
}

// RequireTeacher gates a route on the teacher flag carried in the session.
// The flag is captured at login from the user row and is not re-checked
// against the database afterwards.
func RequireTeacher() gin.HandlerFunc {
    return func(c *gin.Context) {
        iVal, ok := c.Get(IdentityKey)
        if !ok {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        if !iVal.(session.Identity).IsTeacher {
            c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
            return
        }
        c.Next()
    }
}

// CurrentIdentity pulls the authenticated identity out of the request
// context.
func CurrentIdentity(c *gin.Context) (session.Identity, bool) {
    iVal, ok := c.Get(IdentityKey)
    if !ok {
        return session.Identity{}, false
    }
    ident, ok := iVal.(session.Identity)
    return ident, ok
}
