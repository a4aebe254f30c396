package main

import (
	"context"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/repository"
)

// RunSeed inserts a demo client with one project.
func RunSeed(ctx context.Context, store *repository.Store, out io.Writer) error {
	client, err := store.Clients.Create(ctx, &domain.Client{
		Name:  "Ann",
		Email: "ann@x.com",
		Phone: "555-0100",
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	project, err := store.Projects.Create(ctx, &domain.Project{
		Name:        domain.Ptr("Site"),
		Description: domain.Ptr("Build site"),
		Status:      domain.StatusNotStarted,
		ClientID:    client.ID,
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	fmt.Fprintf(out, "client  %s  %s\n", client.ID, client.Name)
	fmt.Fprintf(out, "project %s  %s  client=%s\n", project.ID, domain.Deref(project.Name), project.ClientID)
	return nil
}
