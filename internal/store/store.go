// Package store persists analysis results keyed by content identity.
package store

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/panbanda/augur/pkg/models"
)

// ErrNotFound indicates no result exists for the requested id.
var ErrNotFound = errors.New("result not found")

// Store persists analysis results. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save persists a result under its content id and returns the id.
	Save(result *models.AnalysisResult, id string) error

	// Get returns the result saved under id, or ErrNotFound.
	Get(id string) (*models.AnalysisResult, error)

	// List returns the ids of all saved results, in no defined order.
	List() ([]string, error)
}

// ResultID derives the content identity of an analysis input. Two
// analyses of the same path and source share an id, so re-analysis
// overwrites rather than accumulates.
func ResultID(path string, source []byte) string {
	h := blake3.New()
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(source)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("empty result id")
	}
	if _, err := hex.DecodeString(id); err != nil {
		return fmt.Errorf("malformed result id %q: %w", id, err)
	}
	return nil
}
