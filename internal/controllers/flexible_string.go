package controllers

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strconv"
    "strings"
)

// FlexibleString allows JSON fields to be provided as string or number.
// The SPA sends group ids both ways depending on where the payload was
// assembled.
type FlexibleString string

func (fs *FlexibleString) UnmarshalJSON(data []byte) error {
    if fs == nil {
        return fmt.Errorf("FlexibleString: nil receiver")
    }
    trimmed := bytes.TrimSpace(data)
    if bytes.Equal(trimmed, []byte("null")) {
        return nil
    }

    var s string
    if err := json.Unmarshal(trimmed, &s); err == nil {
        *fs = FlexibleString(strings.TrimSpace(s))
        return nil
    }

    var num json.Number
    if err := json.Unmarshal(trimmed, &num); err == nil {
        *fs = FlexibleString(num.String())
        return nil
    }

    return fmt.Errorf("FlexibleString: expected string or number, got %s", string(data))
}

func (fs FlexibleString) String() string {
    return string(fs)
}

// Int64 parses the value as a signed integer.
func (fs FlexibleString) Int64() (int64, error) {
    return strconv.ParseInt(string(fs), 10, 64)
}
