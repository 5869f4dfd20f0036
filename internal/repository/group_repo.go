package repository

import (
    "errors"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/zaqqye/peergrade_backend_v1/internal/groups"
    "github.com/zaqqye/peergrade_backend_v1/internal/models"
)

// GroupRepo is the gorm-backed groups.Store.
type GroupRepo struct {
    DB *gorm.DB
}

var _ groups.Store = (*GroupRepo)(nil)

func NewGroupRepo(db *gorm.DB) *GroupRepo {
    return &GroupRepo{DB: db}
}

func (r *GroupRepo) Groups(assignmentID uint) ([]groups.Group, error) {
    var rows []models.Group
    if err := r.DB.Where("assignment_id_ref = ?", assignmentID).Order("id ASC").Find(&rows).Error; err != nil {
        return nil, err
    }
    out := make([]groups.Group, 0, len(rows))
    for _, g := range rows {
        out = append(out, groups.Group{ID: g.ID, Name: g.Name})
    }
    return out, nil
}

func (r *GroupRepo) Group(groupID int64) (groups.Group, uint, error) {
    var g models.Group
    if err := r.DB.First(&g, groupID).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return groups.Group{}, 0, groups.ErrGroupNotFound
        }
        return groups.Group{}, 0, err
    }
    return groups.Group{ID: g.ID, Name: g.Name}, g.AssignmentIDRef, nil
}

func (r *GroupRepo) Members(assignmentID uint, groupID int64) ([]string, error) {
    var ids []string
    err := r.DB.Model(&models.GroupAssignment{}).
        Where("assignment_id_ref = ? AND group_id_ref = ?", assignmentID, groupID).
        Order("student_id_ref ASC").
        Pluck("student_id_ref", &ids).Error
    if err != nil {
        return nil, err
    }
    return ids, nil
}

func (r *GroupRepo) Placements(assignmentID uint) (map[string]int64, error) {
    var rows []models.GroupAssignment
    if err := r.DB.Where("assignment_id_ref = ?", assignmentID).Find(&rows).Error; err != nil {
        return nil, err
    }
    out := make(map[string]int64, len(rows))
    for _, row := range rows {
        out[row.StudentIDRef] = row.GroupIDRef
    }
    return out, nil
}

func (r *GroupRepo) Enroll(studentID string, assignmentID uint) error {
    rec := models.GroupAssignment{StudentIDRef: studentID, AssignmentIDRef: assignmentID}
    return r.DB.
        Where("student_id_ref = ? AND assignment_id_ref = ?", studentID, assignmentID).
        Attrs(models.GroupAssignment{GroupIDRef: models.UnassignedGroupID}).
        FirstOrCreate(&rec).Error
}

func (r *GroupRepo) Upsert(studentID string, assignmentID uint, groupID int64) error {
    rec := models.GroupAssignment{
        StudentIDRef:    studentID,
        AssignmentIDRef: assignmentID,
        GroupIDRef:      groupID,
    }
    return r.DB.Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "student_id_ref"}, {Name: "assignment_id_ref"}},
        DoUpdates: clause.AssignmentColumns([]string{"group_id_ref", "updated_at"}),
    }).Create(&rec).Error
}

func (r *GroupRepo) CreateGroup(assignmentID uint, name string) (groups.Group, error) {
    g := models.Group{Name: name, AssignmentIDRef: assignmentID}
    if err := r.DB.Create(&g).Error; err != nil {
        return groups.Group{}, err
    }
    return groups.Group{ID: g.ID, Name: g.Name}, nil
}

// DeleteGroup runs the two-step delete inside one transaction: evict the
// members to the unassigned sentinel, then drop the group row. A failure in
// either step rolls back both, so no dangling group id can survive.
func (r *GroupRepo) DeleteGroup(groupID int64) error {
    return r.DB.Transaction(func(tx *gorm.DB) error {
        var g models.Group
        if err := tx.First(&g, groupID).Error; err != nil {
            if errors.Is(err, gorm.ErrRecordNotFound) {
                return groups.ErrGroupNotFound
            }
            return err
        }
        // Zero affected rows is fine; empty groups delete cleanly.
        if err := tx.Model(&models.GroupAssignment{}).
            Where("group_id_ref = ?", groupID).
            Update("group_id_ref", models.UnassignedGroupID).Error; err != nil {
            return err
        }
        return tx.Delete(&models.Group{}, groupID).Error
    })
}
