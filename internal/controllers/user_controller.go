package controllers

import (
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "github.com/jackc/pgx/v5/pgconn"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/models"
    "github.com/zaqqye/peergrade_backend_v1/internal/utils"
)

type UserController struct {
    DB *gorm.DB
}

type createUserRequest struct {
    FullName  string `json:"full_name" binding:"required"`
    Email     string `json:"email" binding:"required,email"`
    Password  string `json:"password" binding:"required,min=6"`
    IsTeacher bool   `json:"is_teacher"`
    Active    *bool  `json:"active"`
}

type updateUserRequest struct {
    FullName  *string `json:"full_name"`
    Email     *string `json:"email"`
    Password  *string `json:"password"`
    IsTeacher *bool   `json:"is_teacher"`
    Active    *bool   `json:"active"`
}

func userJSON(u models.User) gin.H {
    return gin.H{
        "user_id":    u.UserID,
        "full_name":  u.FullName,
        "email":      u.Email,
        "is_teacher": u.IsTeacher,
        "active":     u.Active,
        "created_at": u.CreatedAt,
        "updated_at": u.UpdatedAt,
    }
}

func (uc *UserController) ListUsers(c *gin.Context) {
    all := strings.EqualFold(c.Query("all"), "true") || c.Query("all") == "1"
    limit := 20
    page := 1
    if v := c.Query("limit"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            limit = n
        }
    }
    if v := c.Query("page"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            page = n
        }
    }
    sortBy := strings.ToLower(c.DefaultQuery("sort_by", "created_at"))
    sortDir := strings.ToUpper(c.DefaultQuery("sort_dir", "DESC"))
    if sortDir != "ASC" && sortDir != "DESC" {
        sortDir = "DESC"
    }
    allowedSorts := map[string]string{
        "created_at": "created_at",
        "full_name":  "full_name",
        "email":      "email",
    }
    sortCol, ok := allowedSorts[sortBy]
    if !ok {
        sortCol = "created_at"
    }
    order := fmt.Sprintf("%s %s", sortCol, sortDir)

    base := uc.DB.Model(&models.User{})
    if qText := strings.TrimSpace(c.Query("q")); qText != "" {
        like := "%" + qText + "%"
        base = base.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
    }
    if t := strings.TrimSpace(strings.ToLower(c.Query("teacher"))); t != "" {
        base = base.Where("is_teacher = ?", t == "true" || t == "1")
    }

    var total int64
    if err := base.Count(&total).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    listQ := base.Order(order)
    if !all {
        listQ = listQ.Offset((page - 1) * limit).Limit(limit)
    }
    var users []models.User
    if err := listQ.Find(&users).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    out := make([]gin.H, 0, len(users))
    for _, u := range users {
        out = append(out, userJSON(u))
    }
    meta := gin.H{"total": total, "all": all}
    if !all {
        meta["limit"] = limit
        meta["page"] = page
        meta["sort_by"] = sortBy
        meta["sort_dir"] = sortDir
    }
    c.JSON(http.StatusOK, gin.H{"data": out, "meta": meta})
}

func (uc *UserController) CreateUser(c *gin.Context) {
    var req createUserRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    pw, err := utils.HashPassword(req.Password)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
        return
    }
    active := true
    if req.Active != nil {
        active = *req.Active
    }
    user := models.User{
        UserID:    uuid.NewString(),
        FullName:  req.FullName,
        Email:     strings.TrimSpace(req.Email),
        Password:  pw,
        IsTeacher: req.IsTeacher,
        Active:    active,
    }
    if err := uc.DB.Create(&user).Error; err != nil {
        var pgErr *pgconn.PgError
        if errors.As(err, &pgErr) && pgErr.Code == "23505" {
            c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
            return
        }
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusCreated, userJSON(user))
}

func (uc *UserController) GetUser(c *gin.Context) {
    userID := strings.TrimSpace(c.Param("user_id"))
    var user models.User
    if err := uc.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
        return
    }
    c.JSON(http.StatusOK, userJSON(user))
}

func (uc *UserController) UpdateUser(c *gin.Context) {
    userID := strings.TrimSpace(c.Param("user_id"))
    var user models.User
    if err := uc.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
        return
    }
    var req updateUserRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if req.FullName != nil {
        user.FullName = *req.FullName
    }
    if req.Email != nil {
        user.Email = strings.TrimSpace(*req.Email)
    }
    if req.Password != nil {
        pw, err := utils.HashPassword(*req.Password)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
            return
        }
        user.Password = pw
    }
    if req.IsTeacher != nil {
        user.IsTeacher = *req.IsTeacher
    }
    if req.Active != nil {
        user.Active = *req.Active
    }
    if err := uc.DB.Save(&user).Error; err != nil {
        var pgErr *pgconn.PgError
        if errors.As(err, &pgErr) && pgErr.Code == "23505" {
            c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
            return
        }
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (uc *UserController) DeleteUser(c *gin.Context) {
    userID := strings.TrimSpace(c.Param("user_id"))
    if err := uc.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("student_id_ref = ?", userID).Delete(&models.Enrollment{}).Error; err != nil {
            return err
        }
        if err := tx.Where("student_id_ref = ?", userID).Delete(&models.GroupAssignment{}).Error; err != nil {
            return err
        }
        return tx.Where("user_id = ?", userID).Delete(&models.User{}).Error
    }); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type importStudent struct {
    FullName string `json:"full_name" binding:"required"`
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=6"`
}

type importStudentsRequest struct {
    Students []importStudent `json:"students" binding:"required"`
}

// ImportStudents bulk-creates student accounts from a roster the SPA parsed
// client-side. Rows whose email is already registered are skipped, not
// failed, so re-importing the same roster is harmless.
func (uc *UserController) ImportStudents(c *gin.Context) {
    var req importStudentsRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    created, skipped := 0, 0
    for _, row := range req.Students {
        pw, err := utils.HashPassword(row.Password)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
            return
        }
        user := models.User{
            UserID:   uuid.NewString(),
            FullName: row.FullName,
            Email:    strings.TrimSpace(row.Email),
            Password: pw,
            Active:   true,
        }
        if err := uc.DB.Create(&user).Error; err != nil {
            var pgErr *pgconn.PgError
            if errors.As(err, &pgErr) && pgErr.Code == "23505" {
                skipped++
                continue
            }
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        created++
    }
    c.JSON(http.StatusOK, gin.H{"created": created, "skipped": skipped})
}
