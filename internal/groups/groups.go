package groups

import (
    "errors"

    "github.com/zaqqye/peergrade_backend_v1/internal/models"
)

var (
    // ErrInvalidGroup means a move or save targeted a group that does not
    // exist or belongs to a different assignment.
    ErrInvalidGroup = errors.New("invalid group for this assignment")
    // ErrGroupNotFound means the referenced group id is not in the store.
    ErrGroupNotFound = errors.New("group not found")
)

// UnassignedID is the sentinel group id for students not yet placed.
const UnassignedID = models.UnassignedGroupID

// Group is the service-level view of a review group.
type Group struct {
    ID   int64  `json:"id"`
    Name string `json:"name"`
}

// Store is the persistence contract the partitioner runs on. The gorm
// implementation lives in internal/repository; tests use an in-memory fake.
type Store interface {
    // Groups lists the assignment's groups in stable iteration order.
    Groups(assignmentID uint) ([]Group, error)
    // Group resolves a group id to the group and its owning assignment.
    // Returns ErrGroupNotFound for unknown ids.
    Group(groupID int64) (Group, uint, error)
    // Members lists student ids in a group; UnassignedID lists the pool.
    Members(assignmentID uint, groupID int64) ([]string, error)
    // Placements returns the full student -> group table for an assignment.
    Placements(assignmentID uint) (map[string]int64, error)
    // Enroll creates an unassigned row for the pair if none exists.
    Enroll(studentID string, assignmentID uint) error
    // Upsert sets the group for the pair, creating the row if needed.
    Upsert(studentID string, assignmentID uint, groupID int64) error
    // CreateGroup adds a group to an assignment.
    CreateGroup(assignmentID uint, name string) (Group, error)
    // DeleteGroup moves every member back to UnassignedID and removes the
    // group, atomically. Returns ErrGroupNotFound for unknown ids.
    DeleteGroup(groupID int64) error
}
