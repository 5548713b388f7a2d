package links

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/savelinks/internal/models"
)

// runRepositoryContract checks the behavior every backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("insert then list keeps order", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		id1, err := r.Insert(ctx, 1, []byte("tok-1"))
		require.NoError(t, err)
		id2, err := r.Insert(ctx, 1, []byte("tok-2"))
		require.NoError(t, err)
		id3, err := r.Insert(ctx, 1, []byte("tok-3"))
		require.NoError(t, err)

		got, err := r.ListByUser(ctx, 1)
		require.NoError(t, err)

		want := []models.Link{
			{ID: id1, UserID: 1, Data: []byte("tok-1")},
			{ID: id2, UserID: 1, Data: []byte("tok-2")},
			{ID: id3, UserID: 1, Data: []byte("tok-3")},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("list mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("list of unknown user is empty", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.ListByUser(context.Background(), 99)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("records are isolated per user", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		_, err := r.Insert(ctx, 1, []byte("alice"))
		require.NoError(t, err)
		_, err = r.Insert(ctx, 2, []byte("bob"))
		require.NoError(t, err)

		a, err := r.ListByUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, a, 1)
		assert.Equal(t, []byte("alice"), a[0].Data)

		b, err := r.ListByUser(ctx, 2)
		require.NoError(t, err)
		require.Len(t, b, 1)
		assert.Equal(t, []byte("bob"), b[0].Data)
	})

	t.Run("delete is scoped by owner and idempotent", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		id, err := r.Insert(ctx, 1, []byte("tok"))
		require.NoError(t, err)

		n, err := r.Delete(ctx, id, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n, "another user must not delete the record")

		left, err := r.ListByUser(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, left, 1)

		n, err = r.Delete(ctx, id, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = r.Delete(ctx, id, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		left, err = r.ListByUser(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("ids are unique across users", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		a, err := r.Insert(ctx, 1, []byte("x"))
		require.NoError(t, err)
		b, err := r.Insert(ctx, 2, []byte("y"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
