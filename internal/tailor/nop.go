// Package tailor runs pending applications through the resume/cover-letter
// generation seam. The generation subsystem itself ships separately; this
// package owns the batch loop, the already-tailored guard, and persisting
// whatever documents come back.
package tailor

import (
	"context"

	"github.com/amishk599/jobhunter/internal/model"
)

// Nop is the default Tailor used when no generation subsystem is wired in.
// It produces no documents, so applications stay in the pending queue.
type Nop struct{}

// NewNop returns a Nop.
func NewNop() *Nop {
	return &Nop{}
}

// TailorApplication returns empty paths and a zero score.
func (n *Nop) TailorApplication(_ context.Context, _ model.Application) (string, string, float64, error) {
	return "", "", 0, nil
}
