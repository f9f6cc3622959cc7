//go:build !mobile

package utils

import "testing"

func TestIsMobileDesktop(t *testing.T) {
	t.Setenv("GLYPHRAIN_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

func TestIsMobileEmulated(t *testing.T) {
	t.Setenv("GLYPHRAIN_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour GLYPHRAIN_MOBILE_EMULATE=1")
	}
}

func TestEnsureStorageDirDesktop(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() error: %v", err)
	}
}

func TestGetStoragePathDesktop(t *testing.T) {
	if got := GetStoragePath(); got != "" {
		t.Errorf("GetStoragePath() = %q, want empty on desktop", got)
	}
}
