package session

import (
    "sync"
    "testing"
)

func TestMintTokenUniqueUnderConcurrency(t *testing.T) {
    const goroutines = 16
    const perGoroutine = 500

    var wg sync.WaitGroup
    out := make(chan string, goroutines*perGoroutine)
    for g := 0; g < goroutines; g++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for i := 0; i < perGoroutine; i++ {
                out <- mintToken("same-subject")
            }
        }()
    }
    wg.Wait()
    close(out)

    seen := make(map[string]struct{}, goroutines*perGoroutine)
    for tok := range out {
        if tok == "" {
            t.Fatal("empty token")
        }
        if _, dup := seen[tok]; dup {
            t.Fatalf("duplicate token issued: %s", tok)
        }
        seen[tok] = struct{}{}
    }
    if len(seen) != goroutines*perGoroutine {
        t.Fatalf("want %d distinct tokens, got %d", goroutines*perGoroutine, len(seen))
    }
}

func TestMintTokenNotSubjectDerived(t *testing.T) {
    a := mintToken("alice")
    b := mintToken("alice")
    if a == b {
        t.Fatal("two tokens for the same subject must differ")
    }
    if len(a) != 64 || len(b) != 64 {
        t.Fatalf("tokens should be sha256 hex, got lengths %d and %d", len(a), len(b))
    }
}
