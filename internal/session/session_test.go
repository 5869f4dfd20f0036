package session

import (
    "testing"
    "time"
)

const (
    testIdleTTL = 20 * time.Minute
    testMaxTTL  = 72 * time.Hour
)

func newTestRegistry(start time.Time) (*Registry, *time.Time) {
    current := start
    r := NewRegistry(testIdleTTL, testMaxTTL)
    r.now = func() time.Time { return current }
    return r, &current
}

func TestAuthorizeUnknownToken(t *testing.T) {
    r, _ := newTestRegistry(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
    if _, err := r.Authorize("nope"); err == nil {
        t.Fatal("expected failure for unknown token")
    }
}

func TestAuthorizeSlidingIdleExpiry(t *testing.T) {
    start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
    r, clock := newTestRegistry(start)
    s := r.Create(Identity{UserID: "u1", FullName: "Student One"})

    // Just under the idle deadline the session survives and slides forward.
    *clock = start.Add(testIdleTTL - time.Second)
    if _, err := r.Authorize(s.Token); err != nil {
        t.Fatalf("authorize just under idle deadline: %v", err)
    }

    // The previous call moved the deadline; another 19m59s is still fine.
    *clock = clock.Add(testIdleTTL - time.Second)
    if _, err := r.Authorize(s.Token); err != nil {
        t.Fatalf("authorize after refresh: %v", err)
    }

    // Exactly at the idle deadline the session is gone.
    *clock = clock.Add(testIdleTTL)
    if _, err := r.Authorize(s.Token); err == nil {
        t.Fatal("expected idle-expired session to be rejected")
    }
    if r.Len() != 0 {
        t.Fatalf("expired session should be removed, registry has %d", r.Len())
    }

    // A rejected token stays rejected.
    if _, err := r.Authorize(s.Token); err == nil {
        t.Fatal("token must not come back after expiry")
    }
}

func TestAuthorizeIdleWithoutActivity(t *testing.T) {
    start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
    r, clock := newTestRegistry(start)
    s := r.Create(Identity{UserID: "u1"})

    *clock = start.Add(testIdleTTL)
    if _, err := r.Authorize(s.Token); err == nil {
        t.Fatal("session with no activity must expire at exactly idleTTL")
    }
}

func TestAbsoluteCeilingDominates(t *testing.T) {
    start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
    r, clock := newTestRegistry(start)
    s := r.Create(Identity{UserID: "u1"})

    // Keep touching the session every 19 minutes for the full three days.
    step := 19 * time.Minute
    for clock.Add(step).Before(start.Add(testMaxTTL)) {
        *clock = clock.Add(step)
        if _, err := r.Authorize(s.Token); err != nil {
            t.Fatalf("refresh at %v should succeed: %v", clock.Sub(start), err)
        }
    }

    // One step past the hard deadline fails regardless of all the refreshes.
    *clock = start.Add(testMaxTTL)
    if _, err := r.Authorize(s.Token); err == nil {
        t.Fatal("session must die at the absolute deadline")
    }
    if r.Len() != 0 {
        t.Fatal("hard-expired session should be removed")
    }
}

func TestIdleDeadlineNeverPassesHardDeadline(t *testing.T) {
    start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
    r, clock := newTestRegistry(start)
    s := r.Create(Identity{UserID: "u1"})

    // Stay active right up to a minute before the absolute deadline.
    step := 19 * time.Minute
    for clock.Add(step).Before(start.Add(testMaxTTL - time.Minute)) {
        *clock = clock.Add(step)
        if _, err := r.Authorize(s.Token); err != nil {
            t.Fatalf("refresh at %v: %v", clock.Sub(start), err)
        }
    }
    *clock = start.Add(testMaxTTL - time.Minute)
    if _, err := r.Authorize(s.Token); err != nil {
        t.Fatalf("authorize near hard deadline: %v", err)
    }

    r.mu.Lock()
    got := r.sessions[s.Token].IdleDeadline
    hard := r.sessions[s.Token].HardDeadline
    r.mu.Unlock()
    if got.After(hard) {
        t.Fatalf("idle deadline %v slid past hard deadline %v", got, hard)
    }
    if !hard.Equal(start.Add(testMaxTTL)) {
        t.Fatalf("hard deadline moved: got %v", hard)
    }
}

func TestCreateClampsIdleDeadline(t *testing.T) {
    start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
    current := start
    r := NewRegistry(testMaxTTL+time.Hour, testMaxTTL)
    r.now = func() time.Time { return current }

    s := r.Create(Identity{UserID: "u1"})
    if s.IdleDeadline.After(s.HardDeadline) {
        t.Fatalf("fresh idle deadline %v past hard deadline %v", s.IdleDeadline, s.HardDeadline)
    }
}

func TestDeleteAndPurge(t *testing.T) {
    start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
    r, clock := newTestRegistry(start)

    s1 := r.Create(Identity{UserID: "u1"})
    r.Create(Identity{UserID: "u2"})
    r.Delete(s1.Token)
    if _, err := r.Authorize(s1.Token); err == nil {
        t.Fatal("deleted session must not authorize")
    }
    if r.Len() != 1 {
        t.Fatalf("want 1 session, got %d", r.Len())
    }

    *clock = start.Add(testIdleTTL + time.Minute)
    if n := r.Purge(); n != 1 {
        t.Fatalf("purge removed %d sessions, want 1", n)
    }
    if r.Len() != 0 {
        t.Fatalf("registry should be empty, has %d", r.Len())
    }
}

func TestAuthorizeReturnsIdentity(t *testing.T) {
    r, _ := newTestRegistry(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
    want := Identity{UserID: "u7", FullName: "Grace", IsTeacher: true}
    s := r.Create(want)
    got, err := r.Authorize(s.Token)
    if err != nil {
        t.Fatalf("authorize: %v", err)
    }
    if got != want {
        t.Fatalf("identity mismatch: got %+v want %+v", got, want)
    }
}
