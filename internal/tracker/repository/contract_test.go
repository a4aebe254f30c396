package repository

import (
	"context"
	"testing"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every backend must share.
func runStoreContract(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty collections list as empty slices", func(t *testing.T) {
		clients, err := store.Clients.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, clients)
		assert.Empty(t, clients)
	})

	var ann, bob *domain.Client
	t.Run("create assigns ids and keeps insertion order", func(t *testing.T) {
		var err error
		ann, err = store.Clients.Create(ctx, &domain.Client{Name: "Ann", Email: "ann@x.com", Phone: "555-0100"})
		require.NoError(t, err)
		require.NotEmpty(t, ann.ID)

		bob, err = store.Clients.Create(ctx, &domain.Client{Name: "Bob", Email: "bob@x.com", Phone: "555-0101"})
		require.NoError(t, err)
		assert.NotEqual(t, ann.ID, bob.ID)

		clients, err := store.Clients.List(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, "Ann", clients[0].Name)
		assert.Equal(t, "Bob", clients[1].Name)
		assert.Equal(t, ann.ID, clients[0].ID)
	})

	t.Run("create rejects missing required fields", func(t *testing.T) {
		_, err := store.Clients.Create(ctx, &domain.Client{Name: "NoEmail", Phone: "1"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		clients, err := store.Clients.List(ctx)
		require.NoError(t, err)
		assert.Len(t, clients, 2)
	})

	t.Run("get returns the stored record", func(t *testing.T) {
		got, err := store.Clients.GetByID(ctx, ann.ID)
		require.NoError(t, err)
		assert.Equal(t, *ann, *got)
	})

	t.Run("get of unknown id is not found", func(t *testing.T) {
		_, err := store.Clients.GetByID(ctx, "does-not-exist")
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})

	var site *domain.Project
	t.Run("project update is partial", func(t *testing.T) {
		var err error
		site, err = store.Projects.Create(ctx, &domain.Project{
			Name:        domain.Ptr("Site"),
			Description: domain.Ptr("Build site"),
			Status:      domain.StatusNotStarted,
			ClientID:    ann.ID,
		})
		require.NoError(t, err)
		require.NotEmpty(t, site.ID)

		updated, err := store.Projects.Update(ctx, site.ID, domain.ProjectPatch{Status: domain.Some(domain.StatusInProgress)})
		require.NoError(t, err)
		assert.Equal(t, site.ID, updated.ID)
		assert.Equal(t, "Site", domain.Deref(updated.Name))
		assert.Equal(t, "Build site", domain.Deref(updated.Description))
		assert.Equal(t, domain.StatusInProgress, updated.Status)
		assert.Equal(t, ann.ID, updated.ClientID)

		got, err := store.Projects.GetByID(ctx, site.ID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *got)
	})

	t.Run("project update can set an empty string", func(t *testing.T) {
		updated, err := store.Projects.Update(ctx, site.ID, domain.ProjectPatch{Description: domain.Some("")})
		require.NoError(t, err)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "", *updated.Description)

		got, err := store.Projects.GetByID(ctx, site.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Description)
		assert.Equal(t, "", *got.Description)
	})

	t.Run("project update can clear a field", func(t *testing.T) {
		updated, err := store.Projects.Update(ctx, site.ID, domain.ProjectPatch{Description: domain.Null[string]()})
		require.NoError(t, err)
		assert.Equal(t, "Site", domain.Deref(updated.Name))
		assert.Nil(t, updated.Description)

		got, err := store.Projects.GetByID(ctx, site.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Equal(t, domain.StatusInProgress, got.Status)
	})

	t.Run("create rejects an unknown status", func(t *testing.T) {
		_, err := store.Projects.Create(ctx, &domain.Project{Name: domain.Ptr("X"), Status: "Done", ClientID: ann.ID})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		_, err := store.Projects.Update(ctx, "does-not-exist", domain.ProjectPatch{Name: domain.Some("x")})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("delete returns the removed record", func(t *testing.T) {
		removed, err := store.Clients.Delete(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, *bob, *removed)

		_, err = store.Clients.GetByID(ctx, bob.ID)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)

		_, err = store.Clients.Delete(ctx, bob.ID)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})

	t.Run("deleting a client leaves its projects", func(t *testing.T) {
		_, err := store.Clients.Delete(ctx, ann.ID)
		require.NoError(t, err)

		got, err := store.Projects.GetByID(ctx, site.ID)
		require.NoError(t, err)
		assert.Equal(t, ann.ID, got.ClientID)
	})
}
