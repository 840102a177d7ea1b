// Package simple is the fallback picker for scripts and dumb terminals: a
// plain select prompt with no animation, built on huh.
package simple

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"repopick/internal/domain"
)

// options builds the prompt options, one per record in collection order
func options(repos []domain.Repository, showTool bool) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(repos))
	for _, repo := range repos {
		label := repo.Name
		if showTool && repo.Tool != "" {
			label = fmt.Sprintf("%s (%s)", repo.Name, repo.Tool)
		}
		opts = append(opts, huh.NewOption(label, repo.ID))
	}
	return opts
}

// Pick prompts for a single repository. It returns nil without error when
// the user aborts.
func Pick(repos []domain.Repository, showTool bool) (*domain.Repository, error) {
	if len(repos) == 0 {
		return nil, fmt.Errorf("no repositories to choose from")
	}

	var chosen int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Choose a repository").
			Options(options(repos, showTool)...).
			Value(&chosen),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	for _, repo := range repos {
		if repo.ID == chosen {
			return &repo, nil
		}
	}
	return nil, fmt.Errorf("chosen repository %d not in collection", chosen)
}
