//go:build conformance && virtualenv

package conformance

import (
	"testing"

	"github.com/venvr/venvr/internal/backend"
	_ "github.com/venvr/venvr/internal/backend/virtualenv" // Register virtualenv backend
)

// TestVirtualenvConformance runs the conformance test suite against the
// virtualenv backend.
//
// Run with: go test -tags=conformance,virtualenv ./internal/backend/conformance
func TestVirtualenvConformance(t *testing.T) {
	be, err := backend.Get("virtualenv")
	if err != nil {
		t.Fatalf("failed to get virtualenv backend: %v", err)
	}

	suite := &Suite{
		Backend: be,
		Tool:    "virtualenv",
	}
	suite.Run(t)
}
