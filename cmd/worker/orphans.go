package main

import (
	"context"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/repository"
)

// FindOrphans returns the projects whose client no longer exists. Deleting a
// client does not cascade, so these are expected to appear over time.
func FindOrphans(ctx context.Context, store *repository.Store) ([]domain.Project, error) {
	clients, err := store.Clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	live := make(map[string]struct{}, len(clients))
	for _, c := range clients {
		live[c.ID] = struct{}{}
	}

	projects, err := store.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var orphans []domain.Project
	for _, p := range projects {
		if _, ok := live[p.ClientID]; !ok {
			orphans = append(orphans, p)
		}
	}
	return orphans, nil
}

// RunOrphans prints the projects found by FindOrphans.
func RunOrphans(ctx context.Context, store *repository.Store, out io.Writer) error {
	orphans, err := FindOrphans(ctx, store)
	if err != nil {
		return err
	}
	for _, p := range orphans {
		fmt.Fprintf(out, "%s\t%s\tclient=%s\n", p.ID, domain.Deref(p.Name), p.ClientID)
	}
	fmt.Fprintf(out, "%d orphaned project(s)\n", len(orphans))
	return nil
}
