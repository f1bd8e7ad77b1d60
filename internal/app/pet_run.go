package app

import (
	"context"
	"fmt"

	"studycompanion/internal/pet"
)

// RunPet shows the study pet derived from the session log.
func (a *App) RunPet(ctx context.Context) error {
	sessions, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	fmt.Fprint(a.stdout, pet.FromSessions(sessions).Render())
	return nil
}
