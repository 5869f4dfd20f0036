package utils

import (
    "crypto/sha256"
    "encoding/hex"
)

// SHA256Hex returns the lowercase hex digest of s.
func SHA256Hex(s string) string {
    h := sha256.Sum256([]byte(s))
    return hex.EncodeToString(h[:])
}

