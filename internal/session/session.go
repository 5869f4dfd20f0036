package session

import (
    "errors"
    "fmt"
    "sync"
    "time"
)

// ErrUnauthorized is the only failure callers ever see from Authorize.
// Missing tokens, idle timeouts and absolute expiry are deliberately
// indistinguishable from the outside.
var ErrUnauthorized = errors.New("unauthorized")

var (
    errUnknownToken = fmt.Errorf("unknown token: %w", ErrUnauthorized)
    errIdleTimeout  = fmt.Errorf("idle timeout: %w", ErrUnauthorized)
    errLifetimeOver = fmt.Errorf("absolute lifetime reached: %w", ErrUnauthorized)
)

// Identity is the minimal view of a user a valid session grants downstream
// handlers.
type Identity struct {
    UserID    string `json:"user_id"`
    FullName  string `json:"full_name"`
    IsTeacher bool   `json:"is_teacher"`
}

// Session binds a bearer token to an identity with two expiry clocks.
// HardDeadline is fixed at creation. IdleDeadline slides forward on every
// authorized access but never past HardDeadline.
type Session struct {
    Token        string
    Identity     Identity
    IdleDeadline time.Time
    HardDeadline time.Time
}

// Registry is the process-wide session store. Sessions are volatile: a
// restart logs everyone out. Construct one at startup and inject it into
// the middleware and the auth controller.
type Registry struct {
    mu       sync.Mutex
    sessions map[string]*Session
    idleTTL  time.Duration
    maxTTL   time.Duration
    now      func() time.Time
}

func NewRegistry(idleTTL, maxTTL time.Duration) *Registry {
    return &Registry{
        sessions: make(map[string]*Session),
        idleTTL:  idleTTL,
        maxTTL:   maxTTL,
        now:      time.Now,
    }
}

// Create mints a token and registers a new session for id.
func (r *Registry) Create(id Identity) *Session {
    now := r.now()
    idle := now.Add(r.idleTTL)
    hard := now.Add(r.maxTTL)
    if idle.After(hard) {
        idle = hard
    }
    s := &Session{
        Token:        mintToken(id.UserID),
        Identity:     id,
        IdleDeadline: idle,
        HardDeadline: hard,
    }
    r.mu.Lock()
    r.sessions[s.Token] = s
    r.mu.Unlock()
    return s
}

// Authorize validates token and, when valid, slides the idle deadline
// forward. Expired sessions are removed on the spot.
func (r *Registry) Authorize(token string) (Identity, error) {
    r.mu.Lock()
    defer r.mu.Unlock()

    s, ok := r.sessions[token]
    if !ok {
        return Identity{}, errUnknownToken
    }
    now := r.now()
    if !now.Before(s.HardDeadline) {
        delete(r.sessions, token)
        return Identity{}, errLifetimeOver
    }
    if !now.Before(s.IdleDeadline) {
        delete(r.sessions, token)
        return Identity{}, errIdleTimeout
    }
    next := now.Add(r.idleTTL)
    if next.After(s.HardDeadline) {
        next = s.HardDeadline
    }
    s.IdleDeadline = next
    return s.Identity, nil
}

// Delete drops the session for token, if any. Used by logout.
func (r *Registry) Delete(token string) {
    r.mu.Lock()
    delete(r.sessions, token)
    r.mu.Unlock()
}

// Purge removes sessions past either deadline and reports how many were
// dropped. Authorize already evicts lazily; Purge keeps tokens that are
// never presented again from accumulating.
func (r *Registry) Purge() int {
    r.mu.Lock()
    defer r.mu.Unlock()
    now := r.now()
    n := 0
    for token, s := range r.sessions {
        if !now.Before(s.HardDeadline) || !now.Before(s.IdleDeadline) {
            delete(r.sessions, token)
            n++
        }
    }
    return n
}

// Len reports the number of live entries, expired or not.
func (r *Registry) Len() int {
    r.mu.Lock()
    defer r.mu.Unlock()
    return len(r.sessions)
}
