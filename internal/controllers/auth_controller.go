package controllers

import (
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/middleware"
    "github.com/zaqqye/peergrade_backend_v1/internal/models"
    "github.com/zaqqye/peergrade_backend_v1/internal/services"
    "github.com/zaqqye/peergrade_backend_v1/internal/session"
    "github.com/zaqqye/peergrade_backend_v1/internal/utils"
)

type AuthController struct {
    DB       *gorm.DB
    Sessions *session.Registry
    Mailer   services.Mailer
    CodeTTL  time.Duration
}

// Login handles GET /login with Basic credentials. The password slot may
// carry the account password or a one-time code issued by RequestCode.
// Bad email, bad secret and inactive account all produce the same 401.
func (a *AuthController) Login(c *gin.Context) {
    email, secret, ok := c.Request.BasicAuth()
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    var user models.User
    if err := a.DB.Where("email = ? AND active = ?", strings.TrimSpace(email), true).First(&user).Error; err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    if !utils.CheckPassword(user.Password, secret) && !a.consumeCode(user.ID, secret) {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    s := a.Sessions.Create(session.Identity{
        UserID:    user.UserID,
        FullName:  user.FullName,
        IsTeacher: user.IsTeacher,
    })
    c.JSON(http.StatusOK, gin.H{
        "token":      s.Token,
        "is_teacher": user.IsTeacher,
    })
}

// consumeCode checks secret against the user's live one-time codes and
// burns the match.
func (a *AuthController) consumeCode(userID uint, secret string) bool {
    code := strings.ToUpper(strings.TrimSpace(secret))
    if code == "" {
        return false
    }
    var rec models.OneTimeCode
    if err := a.DB.Where("user_id_ref = ? AND code = ? AND used_at IS NULL", userID, code).First(&rec).Error; err != nil {
        return false
    }
    now := time.Now().UTC()
    if now.After(rec.ExpiresAt) {
        return false
    }
    if err := a.DB.Model(&rec).Update("used_at", &now).Error; err != nil {
        return false
    }
    return true
}

type requestCodeRequest struct {
    Email string `json:"email" binding:"required,email"`
}

// RequestCode mails a fresh one-time login code. The response is the same
// whether or not the address is registered.
func (a *AuthController) RequestCode(c *gin.Context) {
    var req requestCodeRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var user models.User
    if err := a.DB.Where("email = ? AND active = ?", strings.TrimSpace(req.Email), true).First(&user).Error; err == nil {
        if err := a.issueCode(user); err != nil {
            log.Printf("one-time code for %s: %v", user.Email, err)
        }
    }
    c.JSON(http.StatusOK, gin.H{"message": "if that address is registered, a code is on its way"})
}

func (a *AuthController) issueCode(user models.User) error {
    code, err := utils.GenerateCode(6)
    if err != nil {
        return err
    }
    now := time.Now().UTC()
    // A new request invalidates any earlier unused codes.
    if err := a.DB.Model(&models.OneTimeCode{}).
        Where("user_id_ref = ? AND used_at IS NULL", user.ID).
        Update("used_at", &now).Error; err != nil {
        return err
    }
    rec := models.OneTimeCode{
        UserIDRef: user.ID,
        Code:      code,
        ExpiresAt: now.Add(a.CodeTTL),
    }
    if err := a.DB.Create(&rec).Error; err != nil {
        return err
    }
    return a.Mailer.SendLoginCode(user.Email, user.FullName, code)
}

// Logout drops the presented session. The middleware has already vetted
// the token, so the delete always finds it.
func (a *AuthController) Logout(c *gin.Context) {
    auth := c.GetHeader("Authorization")
    if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
        a.Sessions.Delete(strings.TrimSpace(auth[len("Bearer "):]))
    }
    c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the identity bound to the presented session.
func (a *AuthController) Me(c *gin.Context) {
    ident, ok := middleware.CurrentIdentity(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    c.JSON(http.StatusOK, ident)
}
