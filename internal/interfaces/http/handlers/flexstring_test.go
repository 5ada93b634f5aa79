package handlers

import (
	"encoding/json"
	"testing"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"15.99"`, "15.99"},
		{`15.99`, "15.99"},
		{`20`, "20"},
		{`"monthly"`, "monthly"},
	}

	for _, tt := range tests {
		var fs FlexString
		if err := json.Unmarshal([]byte(tt.raw), &fs); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.raw, err)
			continue
		}
		if string(fs) != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.raw, fs, tt.want)
		}
	}
}

func TestFlexString_RejectsNonScalar(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1]`, `true`} {
		var fs FlexString
		if err := json.Unmarshal([]byte(raw), &fs); err == nil {
			t.Errorf("Unmarshal(%s) should fail, got %q", raw, fs)
		}
	}
}

func TestFlexString_StringPtr(t *testing.T) {
	var fs *FlexString
	if fs.stringPtr() != nil {
		t.Error("nil FlexString should map to a nil field")
	}

	v := FlexString("15.99")
	p := (&v).stringPtr()
	if p == nil || *p != "15.99" {
		t.Errorf("stringPtr = %v", p)
	}
}
