package controllers

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/groups"
    "github.com/zaqqye/peergrade_backend_v1/internal/models"
    "github.com/zaqqye/peergrade_backend_v1/internal/ws"
)

type GroupController struct {
    DB      *gorm.DB
    Service *groups.Service
    Hub     *ws.GroupHub
}

func parseAssignmentID(c *gin.Context, param string) (uint, bool) {
    id, err := strconv.ParseUint(c.Param(param), 10, 32)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
        return 0, false
    }
    return uint(id), true
}

type createGroupRequest struct {
    AssignmentID uint   `json:"assignment_id" binding:"required"`
    Name         string `json:"name" binding:"required"`
}

func (gc *GroupController) CreateGroup(c *gin.Context) {
    var req createGroupRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    var assignment models.Assignment
    if err := gc.DB.First(&assignment, req.AssignmentID).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
        return
    }
    g, err := gc.Service.CreateGroup(req.AssignmentID, req.Name)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    gc.Hub.Broadcast(ws.GroupEvent{Type: "group_created", AssignmentID: req.AssignmentID, GroupID: &g.ID})
    c.JSON(http.StatusCreated, gin.H{"id": g.ID, "name": g.Name})
}

type deleteGroupRequest struct {
    GroupID FlexibleString `json:"group_id" binding:"required"`
}

func (gc *GroupController) DeleteGroup(c *gin.Context) {
    var req deleteGroupRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    groupID, err := req.GroupID.Int64()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
        return
    }
    assignmentID, err := gc.Service.DeleteGroup(groupID)
    if err != nil {
        if errors.Is(err, groups.ErrGroupNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    gc.Hub.Broadcast(ws.GroupEvent{Type: "group_deleted", AssignmentID: assignmentID, GroupID: &groupID})
    c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type moveStudentRequest struct {
    StudentID    string         `json:"student_id" binding:"required"`
    AssignmentID uint           `json:"assignment_id" binding:"required"`
    GroupID      FlexibleString `json:"group_id" binding:"required"`
}

func (gc *GroupController) MoveStudent(c *gin.Context) {
    var req moveStudentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    groupID, err := req.GroupID.Int64()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
        return
    }
    if err := gc.Service.Move(req.StudentID, req.AssignmentID, groupID); err != nil {
        if errors.Is(err, groups.ErrInvalidGroup) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group for this assignment"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    gc.Hub.Broadcast(ws.GroupEvent{Type: "groups_saved", AssignmentID: req.AssignmentID})
    c.JSON(http.StatusOK, gin.H{"message": "moved"})
}

// RandomizeGroups computes a fresh random placement for the assignment and
// returns it without persisting anything. The client reviews the table and
// applies it through SaveGroups.
func (gc *GroupController) RandomizeGroups(c *gin.Context) {
    assignmentID, ok := parseAssignmentID(c, "assignmentId")
    if !ok {
        return
    }
    table, err := gc.Service.Randomize(assignmentID)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"assignment_id": assignmentID, "placements": table})
}

type savePlacement struct {
    StudentID string         `json:"student_id" binding:"required"`
    GroupID   FlexibleString `json:"group_id"`
}

type saveGroupsRequest struct {
    AssignmentID uint            `json:"assignment_id" binding:"required"`
    Placements   []savePlacement `json:"placements" binding:"required"`
}

func (gc *GroupController) SaveGroups(c *gin.Context) {
    var req saveGroupsRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    placements := make([]groups.Placement, 0, len(req.Placements))
    for _, p := range req.Placements {
        gid, err := p.GroupID.Int64()
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id for student " + p.StudentID})
            return
        }
        placements = append(placements, groups.Placement{StudentID: p.StudentID, GroupID: gid})
    }
    if err := gc.Service.Save(req.AssignmentID, placements); err != nil {
        if errors.Is(err, groups.ErrInvalidGroup) {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    gc.Hub.Broadcast(ws.GroupEvent{Type: "groups_saved", AssignmentID: req.AssignmentID})
    c.JSON(http.StatusOK, gin.H{"message": "saved", "rows": len(placements)})
}

func (gc *GroupController) ListAllGroups(c *gin.Context) {
    assignmentID, ok := parseAssignmentID(c, "assignmentId")
    if !ok {
        return
    }
    out, err := gc.Service.ListGroups(assignmentID)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": out})
}

func (gc *GroupController) ListGroupMembers(c *gin.Context) {
    assignmentID, ok := parseAssignmentID(c, "assignmentId")
    if !ok {
        return
    }
    groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
        return
    }
    members, err := gc.Service.ListMembers(assignmentID, groupID)
    if err != nil {
        if errors.Is(err, groups.ErrInvalidGroup) {
            c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": members})
}

func (gc *GroupController) ListUnassigned(c *gin.Context) {
    assignmentID, ok := parseAssignmentID(c, "assignmentId")
    if !ok {
        return
    }
    members, err := gc.Service.ListUnassigned(assignmentID)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": members})
}
