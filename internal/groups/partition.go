package groups

import "math/rand"

// partition redistributes pool across groupIDs and returns the complete new
// placement table. It is pure: nothing shared is touched, the caller applies
// the result.
//
// Every permutation of the pool is equally likely (Fisher-Yates). Each group
// receives exactly floor(len(pool)/len(groupIDs)) students, filled
// sequentially in group order; the remainder stays at UnassignedID. With no
// groups the whole pool stays unassigned.
func partition(pool []string, groupIDs []int64, rng *rand.Rand) map[string]int64 {
    out := make(map[string]int64, len(pool))
    for _, id := range pool {
        out[id] = UnassignedID
    }
    if len(groupIDs) == 0 || len(pool) == 0 {
        return out
    }

    shuffled := append([]string(nil), pool...)
    for i := len(shuffled) - 1; i > 0; i-- {
        j := rng.Intn(i + 1)
        shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
    }

    perGroup := len(pool) / len(groupIDs)
    idx := 0
    for _, gid := range groupIDs {
        for k := 0; k < perGroup; k++ {
            out[shuffled[idx]] = gid
            idx++
        }
    }
    return out
}
