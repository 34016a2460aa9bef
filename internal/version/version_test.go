// ABOUTME: Tests for version strings
// ABOUTME: Checks the semantic version shape and the log banner
package version

import (
	"strconv"
	"strings"
	"testing"
)

func TestVersionIsSemantic(t *testing.T) {
	parts := strings.Split(Version, ".")
	if len(parts) != 3 {
		t.Fatalf("Version %q should be MAJOR.MINOR.PATCH", Version)
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			t.Errorf("Version %q has non-numeric part %q", Version, p)
		}
	}
}

func TestString(t *testing.T) {
	got := String()
	if got != "noisegen "+Version {
		t.Errorf("String() = %q", got)
	}
	if !strings.HasPrefix(got, Product) {
		t.Errorf("String() = %q should start with the product name", got)
	}
}
