package client

import (
	"errors"
	"testing"
)

func TestCheckIndexVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.4.2", true},
		{"v1.0.0", true},
		{"2.0.0", false},
		{"0.9.0", false},
		{"", false},
		{"banana", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckIndexVersion(tt.version)
			if tt.ok && err != nil {
				t.Fatalf("CheckIndexVersion(%q) = %v, want nil", tt.version, err)
			}
			if !tt.ok && !errors.Is(err, ErrIncompatibleIndex) {
				t.Fatalf("CheckIndexVersion(%q) = %v, want ErrIncompatibleIndex", tt.version, err)
			}
		})
	}
}
