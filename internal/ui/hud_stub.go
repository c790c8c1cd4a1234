//go:build !ebiten

package ui

import "neon-slither/internal/session"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*session.Controller) *HUD { return nil }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any) {}
