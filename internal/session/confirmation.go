package session

import (
	"context"
	"sync"
)

// PromptSure asks whether to finish before reaching the last page.
const PromptSure = "SURE"

// Confirmation is a pending yes/no question whose continuation runs once.
type Confirmation struct {
	// Prompt is the catalog key of the question.
	Prompt string

	mu       sync.Mutex
	resolved bool
	onYes    func(ctx context.Context) error
}

// NewConfirmation returns a confirmation that runs onYes when accepted.
func NewConfirmation(prompt string, onYes func(ctx context.Context) error) *Confirmation {
	return &Confirmation{Prompt: prompt, onYes: onYes}
}

// Resolve answers the confirmation. Declining runs nothing. A second call
// returns ErrAlreadyResolved.
func (c *Confirmation) Resolve(ctx context.Context, yes bool) error {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return ErrAlreadyResolved
	}
	c.resolved = true
	c.mu.Unlock()

	if !yes || c.onYes == nil {
		return nil
	}
	return c.onYes(ctx)
}

// Resolved reports whether Resolve has been called.
func (c *Confirmation) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}
