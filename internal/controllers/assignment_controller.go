package controllers

import (
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/groups"
    "github.com/zaqqye/peergrade_backend_v1/internal/models"
)

type AssignmentController struct {
    DB      *gorm.DB
    Service *groups.Service
}

type createAssignmentRequest struct {
    CourseID string     `json:"course_id" binding:"required"`
    Name     string     `json:"name" binding:"required"`
    Deadline *time.Time `json:"deadline"`
}

type updateAssignmentRequest struct {
    Name     *string    `json:"name"`
    Deadline *time.Time `json:"deadline"`
}

func (ac *AssignmentController) ListAssignments(c *gin.Context) {
    q := ac.DB.Model(&models.Assignment{}).Order("created_at DESC")
    if courseID := strings.TrimSpace(c.Query("course_id")); courseID != "" {
        q = q.Where("course_id_ref = ?", courseID)
    }
    var assignments []models.Assignment
    if err := q.Find(&assignments).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": assignments})
}

// CreateAssignment adds an assignment and seeds an unassigned group row for
// every student already enrolled in the course.
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
    var req createAssignmentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    var course models.Course
    if err := ac.DB.Where("id = ?", strings.TrimSpace(req.CourseID)).First(&course).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
        return
    }

    assignment := models.Assignment{CourseIDRef: course.ID, Name: req.Name, Deadline: req.Deadline}
    if err := ac.DB.Create(&assignment).Error; err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var enrollments []models.Enrollment
    if err := ac.DB.Where("course_id_ref = ?", course.ID).Find(&enrollments).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    for _, e := range enrollments {
        if err := ac.Service.Enroll(e.StudentIDRef, assignment.ID); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
            return
        }
    }
    c.JSON(http.StatusCreated, gin.H{"message": "created", "id": assignment.ID})
}

func (ac *AssignmentController) GetAssignment(c *gin.Context) {
    id, ok := parseAssignmentID(c, "id")
    if !ok {
        return
    }
    var assignment models.Assignment
    if err := ac.DB.First(&assignment, id).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
        return
    }
    c.JSON(http.StatusOK, assignment)
}

func (ac *AssignmentController) UpdateAssignment(c *gin.Context) {
    id, ok := parseAssignmentID(c, "id")
    if !ok {
        return
    }
    var assignment models.Assignment
    if err := ac.DB.First(&assignment, id).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
        return
    }
    var req updateAssignmentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if req.Name != nil {
        assignment.Name = *req.Name
    }
    if req.Deadline != nil {
        assignment.Deadline = req.Deadline
    }
    if err := ac.DB.Save(&assignment).Error; err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (ac *AssignmentController) DeleteAssignment(c *gin.Context) {
    id, ok := parseAssignmentID(c, "id")
    if !ok {
        return
    }
    if err := ac.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("assignment_id_ref = ?", id).Delete(&models.GroupAssignment{}).Error; err != nil {
            return err
        }
        if err := tx.Where("assignment_id_ref = ?", id).Delete(&models.Group{}).Error; err != nil {
            return err
        }
        return tx.Delete(&models.Assignment{}, id).Error
    }); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
