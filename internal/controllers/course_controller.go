package controllers

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/jackc/pgx/v5/pgconn"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/groups"
    "github.com/zaqqye/peergrade_backend_v1/internal/middleware"
    "github.com/zaqqye/peergrade_backend_v1/internal/models"
)

type CourseController struct {
    DB      *gorm.DB
    Service *groups.Service
}

type createCourseRequest struct {
    Name   string `json:"name" binding:"required"`
    Active *bool  `json:"active"`
}

type updateCourseRequest struct {
    Name   *string `json:"name"`
    Active *bool   `json:"active"`
}

func (cc *CourseController) ListCourses(c *gin.Context) {
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

    base := cc.DB.Model(&models.Course{})
    if qText := strings.TrimSpace(c.Query("q")); qText != "" {
        base = base.Where("name ILIKE ?", "%"+qText+"%")
    }

    var total int64
    if err := base.Count(&total).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    listQ := base.Order("created_at DESC")
    if !all {
        listQ = listQ.Offset((page - 1) * limit).Limit(limit)
    }
    var courses []models.Course
    if err := listQ.Find(&courses).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    meta := gin.H{"total": total, "all": all}
    if !all {
        meta["limit"] = limit
        meta["page"] = page
    }
    c.JSON(http.StatusOK, gin.H{"data": courses, "meta": meta})
}

func (cc *CourseController) CreateCourse(c *gin.Context) {
    var req createCourseRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    ident, _ := middleware.CurrentIdentity(c)
    active := true
    if req.Active != nil {
        active = *req.Active
    }
    course := models.Course{Name: req.Name, OwnerRef: ident.UserID, Active: active}
    if err := cc.DB.Create(&course).Error; err != nil {
        var pgErr *pgconn.PgError
        if errors.As(err, &pgErr) && pgErr.Code == "23505" {
            c.JSON(http.StatusConflict, gin.H{"error": "course name already exists"})
            return
        }
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusCreated, gin.H{"message": "created", "id": course.ID})
}

func (cc *CourseController) GetCourse(c *gin.Context) {
    id := strings.TrimSpace(c.Param("id"))
    var course models.Course
    if err := cc.DB.Where("id = ?", id).First(&course).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
        return
    }
    c.JSON(http.StatusOK, course)
}

func (cc *CourseController) UpdateCourse(c *gin.Context) {
    id := strings.TrimSpace(c.Param("id"))
    var course models.Course
    if err := cc.DB.Where("id = ?", id).First(&course).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
        return
    }
    var req updateCourseRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if req.Name != nil {
        course.Name = *req.Name
    }
    if req.Active != nil {
        course.Active = *req.Active
    }
    if err := cc.DB.Save(&course).Error; err != nil {
        var pgErr *pgconn.PgError
        if errors.As(err, &pgErr) && pgErr.Code == "23505" {
            c.JSON(http.StatusConflict, gin.H{"error": "course name already exists"})
            return
        }
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (cc *CourseController) DeleteCourse(c *gin.Context) {
    id := strings.TrimSpace(c.Param("id"))
    if err := cc.DB.Transaction(func(tx *gorm.DB) error {
        var assignments []models.Assignment
        if err := tx.Where("course_id_ref = ?", id).Find(&assignments).Error; err != nil {
            return err
        }
        for _, a := range assignments {
            if err := tx.Where("assignment_id_ref = ?", a.ID).Delete(&models.GroupAssignment{}).Error; err != nil {
                return err
            }
            if err := tx.Where("assignment_id_ref = ?", a.ID).Delete(&models.Group{}).Error; err != nil {
                return err
            }
        }
        if err := tx.Where("course_id_ref = ?", id).Delete(&models.Assignment{}).Error; err != nil {
            return err
        }
        if err := tx.Where("course_id_ref = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
            return err
        }
        return tx.Where("id = ?", id).Delete(&models.Course{}).Error
    }); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type enrollRequest struct {
    CourseID  string `json:"course_id" binding:"required"`
    StudentID string `json:"student_id" binding:"required"`
}

// Enroll puts a student on a course and seeds an unassigned group row for
// every assignment the course already has. Re-enrolling is a no-op.
func (cc *CourseController) Enroll(c *gin.Context) {
    var req enrollRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    var course models.Course
    if err := cc.DB.Where("id = ?", strings.TrimSpace(req.CourseID)).First(&course).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
        return
    }
    var student models.User
    if err := cc.DB.Where("user_id = ?", strings.TrimSpace(req.StudentID)).First(&student).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
        return
    }

    rec := models.Enrollment{StudentIDRef: student.UserID, CourseIDRef: course.ID}
    if err := cc.DB.Where("student_id_ref = ? AND course_id_ref = ?", rec.StudentIDRef, rec.CourseIDRef).
        FirstOrCreate(&rec).Error; err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var assignments []models.Assignment
    if err := cc.DB.Where("course_id_ref = ?", course.ID).Find(&assignments).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    for _, a := range assignments {
        if err := cc.Service.Enroll(student.UserID, a.ID); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
            return
        }
    }
    c.JSON(http.StatusOK, gin.H{"message": "enrolled"})
}
