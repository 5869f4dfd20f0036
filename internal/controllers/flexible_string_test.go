package controllers

import (
    "encoding/json"
    "testing"
)

func TestFlexibleStringAcceptsBothShapes(t *testing.T) {
    tests := []struct {
        name string
        raw  string
        want int64
    }{
        {"number", `{"student_id":"s1","group_id":3}`, 3},
        {"string", `{"student_id":"s1","group_id":"3"}`, 3},
        {"negative sentinel", `{"student_id":"s1","group_id":-1}`, -1},
        {"quoted sentinel", `{"student_id":"s1","group_id":"-1"}`, -1},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            var p savePlacement
            if err := json.Unmarshal([]byte(tc.raw), &p); err != nil {
                t.Fatalf("unmarshal: %v", err)
            }
            got, err := p.GroupID.Int64()
            if err != nil {
                t.Fatalf("parse: %v", err)
            }
            if got != tc.want {
                t.Fatalf("got %d, want %d", got, tc.want)
            }
        })
    }
}

func TestFlexibleStringRejectsGarbage(t *testing.T) {
    var fs FlexibleString
    if err := json.Unmarshal([]byte(`{"a":1}`), &fs); err == nil {
        t.Fatal("object should not parse as FlexibleString")
    }
    fs = FlexibleString("not-a-number")
    if _, err := fs.Int64(); err == nil {
        t.Fatal("non-numeric value should not parse as int64")
    }
}
