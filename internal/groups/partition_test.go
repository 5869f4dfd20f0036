package groups

import (
    "fmt"
    "math/rand"
    "testing"
)

func poolOf(n int) []string {
    out := make([]string, n)
    for i := range out {
        out[i] = fmt.Sprintf("s%02d", i)
    }
    return out
}

func TestPartitionEvenSplit(t *testing.T) {
    rng := rand.New(rand.NewSource(1))
    got := partition(poolOf(9), []int64{10, 20, 30}, rng)

    counts := map[int64]int{}
    for _, gid := range got {
        counts[gid]++
    }
    for _, gid := range []int64{10, 20, 30} {
        if counts[gid] != 3 {
            t.Fatalf("group %d has %d members, want 3", gid, counts[gid])
        }
    }
    if counts[UnassignedID] != 0 {
        t.Fatalf("%d students left unassigned, want 0", counts[UnassignedID])
    }
}

func TestPartitionRemainderStaysUnassigned(t *testing.T) {
    rng := rand.New(rand.NewSource(2))
    got := partition(poolOf(10), []int64{1, 2, 3}, rng)

    counts := map[int64]int{}
    for _, gid := range got {
        counts[gid]++
    }
    placed := 0
    for _, gid := range []int64{1, 2, 3} {
        if counts[gid] != 3 {
            t.Fatalf("group %d has %d members, want 3", gid, counts[gid])
        }
        placed += counts[gid]
    }
    if placed != 9 || counts[UnassignedID] != 1 {
        t.Fatalf("placed=%d unassigned=%d, want 9 and 1", placed, counts[UnassignedID])
    }
}

func TestPartitionIsAPermutationOfThePool(t *testing.T) {
    pool := poolOf(23)
    rng := rand.New(rand.NewSource(3))
    got := partition(pool, []int64{5, 6, 7, 8}, rng)

    if len(got) != len(pool) {
        t.Fatalf("table has %d rows, want %d", len(got), len(pool))
    }
    for _, id := range pool {
        if _, ok := got[id]; !ok {
            t.Fatalf("student %s missing from result", id)
        }
    }
    // 23 students over 4 groups: 5 each, 3 left over.
    counts := map[int64]int{}
    for _, gid := range got {
        counts[gid]++
    }
    for _, gid := range []int64{5, 6, 7, 8} {
        if counts[gid] != 5 {
            t.Fatalf("group %d has %d members, want 5", gid, counts[gid])
        }
    }
    if counts[UnassignedID] != 3 {
        t.Fatalf("unassigned=%d, want 3", counts[UnassignedID])
    }
}

func TestPartitionDegenerateInputs(t *testing.T) {
    rng := rand.New(rand.NewSource(4))

    got := partition(poolOf(5), nil, rng)
    for id, gid := range got {
        if gid != UnassignedID {
            t.Fatalf("no groups: student %s placed in %d", id, gid)
        }
    }

    if got := partition(nil, []int64{1, 2}, rng); len(got) != 0 {
        t.Fatalf("empty pool produced %d rows", len(got))
    }

    // More groups than students: nobody is placed (floor(2/3) == 0).
    got = partition(poolOf(2), []int64{1, 2, 3}, rng)
    for id, gid := range got {
        if gid != UnassignedID {
            t.Fatalf("floor division should leave %s unassigned, got %d", id, gid)
        }
    }
}

func TestPartitionShufflesDifferentlyAcrossSeeds(t *testing.T) {
    pool := poolOf(12)
    groupIDs := []int64{1, 2, 3}
    a := partition(pool, groupIDs, rand.New(rand.NewSource(10)))
    b := partition(pool, groupIDs, rand.New(rand.NewSource(11)))

    same := true
    for id, gid := range a {
        if b[id] != gid {
            same = false
            break
        }
    }
    if same {
        t.Fatal("two seeds produced identical placements; shuffle looks inert")
    }
}
