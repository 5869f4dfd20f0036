package groups

import (
    "fmt"
    "math/rand"
    "sort"
    "sync"
    "time"
)

// Placement is one row of a (proposed or saved) assignment table.
type Placement struct {
    StudentID string `json:"student_id"`
    GroupID   int64  `json:"group_id"`
}

// Service owns all mutation of the per-assignment group tables. A mutex per
// assignment serializes moves, deletes and saves so a manual move cannot be
// silently discarded by a concurrent save of a randomized table.
type Service struct {
    store Store

    mu    sync.Mutex
    locks map[uint]*sync.Mutex

    rngMu sync.Mutex
    rng   *rand.Rand
}

func NewService(store Store) *Service {
    return NewServiceWithRand(store, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewServiceWithRand injects the shuffle source; tests pass a seeded one.
func NewServiceWithRand(store Store, rng *rand.Rand) *Service {
    return &Service{
        store: store,
        locks: make(map[uint]*sync.Mutex),
        rng:   rng,
    }
}

func (s *Service) lock(assignmentID uint) *sync.Mutex {
    s.mu.Lock()
    defer s.mu.Unlock()
    l, ok := s.locks[assignmentID]
    if !ok {
        l = &sync.Mutex{}
        s.locks[assignmentID] = l
    }
    return l
}

// Enroll seeds an unassigned row for the student. Re-enrolling a student who
// already has a row, placed or not, is a no-op.
func (s *Service) Enroll(studentID string, assignmentID uint) error {
    l := s.lock(assignmentID)
    l.Lock()
    defer l.Unlock()
    return s.store.Enroll(studentID, assignmentID)
}

// Move places the student into the target group. The target must exist and
// belong to the same assignment; UnassignedID moves the student back to the
// pool. Repeating a move leaves the table unchanged.
func (s *Service) Move(studentID string, assignmentID uint, groupID int64) error {
    l := s.lock(assignmentID)
    l.Lock()
    defer l.Unlock()

    if groupID != UnassignedID {
        if err := s.checkGroup(assignmentID, groupID); err != nil {
            return err
        }
    }
    return s.store.Upsert(studentID, assignmentID, groupID)
}

func (s *Service) checkGroup(assignmentID uint, groupID int64) error {
    _, owner, err := s.store.Group(groupID)
    if err != nil {
        return ErrInvalidGroup
    }
    if owner != assignmentID {
        return ErrInvalidGroup
    }
    return nil
}

// CreateGroup adds an empty group to the assignment.
func (s *Service) CreateGroup(assignmentID uint, name string) (Group, error) {
    l := s.lock(assignmentID)
    l.Lock()
    defer l.Unlock()
    return s.store.CreateGroup(assignmentID, name)
}

// DeleteGroup evicts every member back to the unassigned pool and removes
// the group, as one atomic step. It returns the owning assignment id so
// callers can tell watchers which table changed.
func (s *Service) DeleteGroup(groupID int64) (uint, error) {
    _, assignmentID, err := s.store.Group(groupID)
    if err != nil {
        return 0, err
    }
    l := s.lock(assignmentID)
    l.Lock()
    defer l.Unlock()
    if err := s.store.DeleteGroup(groupID); err != nil {
        return 0, err
    }
    return assignmentID, nil
}

// Randomize redistributes the full pool (current members plus unassigned)
// evenly across the assignment's groups and returns the proposed table,
// sorted by student id. Nothing is persisted; the caller reviews and then
// applies the table through Save. With zero groups the current pool comes
// back entirely unassigned. Randomize itself cannot fail half-way: it only
// reads a snapshot.
func (s *Service) Randomize(assignmentID uint) ([]Placement, error) {
    l := s.lock(assignmentID)
    l.Lock()
    defer l.Unlock()

    grps, err := s.store.Groups(assignmentID)
    if err != nil {
        return nil, err
    }
    table, err := s.store.Placements(assignmentID)
    if err != nil {
        return nil, err
    }

    pool := make([]string, 0, len(table))
    for studentID := range table {
        pool = append(pool, studentID)
    }
    sort.Strings(pool) // map order is not a shuffle input

    groupIDs := make([]int64, 0, len(grps))
    for _, g := range grps {
        groupIDs = append(groupIDs, g.ID)
    }

    s.rngMu.Lock()
    placed := partition(pool, groupIDs, s.rng)
    s.rngMu.Unlock()

    out := make([]Placement, 0, len(placed))
    for _, studentID := range pool {
        out = append(out, Placement{StudentID: studentID, GroupID: placed[studentID]})
    }
    return out, nil
}

// Save persists a placement table row by row. Every referenced group must
// exist and belong to the assignment. The whole batch runs under the
// assignment lock so a concurrent manual move cannot interleave.
func (s *Service) Save(assignmentID uint, placements []Placement) error {
    l := s.lock(assignmentID)
    l.Lock()
    defer l.Unlock()

    valid := map[int64]struct{}{UnassignedID: {}}
    grps, err := s.store.Groups(assignmentID)
    if err != nil {
        return err
    }
    for _, g := range grps {
        valid[g.ID] = struct{}{}
    }
    for _, p := range placements {
        if _, ok := valid[p.GroupID]; !ok {
            return fmt.Errorf("student %s: %w", p.StudentID, ErrInvalidGroup)
        }
    }
    for _, p := range placements {
        if err := s.store.Upsert(p.StudentID, assignmentID, p.GroupID); err != nil {
            return err
        }
    }
    return nil
}

// ListGroups returns the assignment's groups.
func (s *Service) ListGroups(assignmentID uint) ([]Group, error) {
    return s.store.Groups(assignmentID)
}

// ListMembers returns the student ids in one group.
func (s *Service) ListMembers(assignmentID uint, groupID int64) ([]string, error) {
    if groupID != UnassignedID {
        if err := s.checkGroup(assignmentID, groupID); err != nil {
            return nil, err
        }
    }
    return s.store.Members(assignmentID, groupID)
}

// ListUnassigned returns the assignment's unassigned pool.
func (s *Service) ListUnassigned(assignmentID uint) ([]string, error) {
    return s.store.Members(assignmentID, UnassignedID)
}
