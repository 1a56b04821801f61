package db_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-finder/internal/db"
	"pantry-finder/internal/models"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestPantryStore(t *testing.T) {
	t.Run("upsert and list round trip", func(t *testing.T) {
		database := openTestDB(t)

		p := &models.Pantry{Name: "A", Address: "Addr", Latitude: 10, Longitude: 20}
		require.NoError(t, database.UpsertPantry(p))

		pantries, err := database.ListPantries(db.PantryFilter{})
		require.NoError(t, err)
		require.Len(t, pantries, 1)
		assert.Equal(t, "A", pantries[0].Name)
		assert.Equal(t, "Addr", pantries[0].Address)
		assert.Equal(t, 10.0, pantries[0].Latitude)
		assert.Equal(t, 20.0, pantries[0].Longitude)
		assert.NotZero(t, pantries[0].ID)
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		database := openTestDB(t)

		for _, name := range []string{"C", "A", "B"} {
			require.NoError(t, database.UpsertPantry(&models.Pantry{Name: name, Address: name, Latitude: 1, Longitude: 2}))
		}

		pantries, err := database.ListPantries(db.PantryFilter{})
		require.NoError(t, err)
		require.Len(t, pantries, 3)
		assert.Equal(t, "C", pantries[0].Name)
		assert.Equal(t, "A", pantries[1].Name)
		assert.Equal(t, "B", pantries[2].Name)
	})

	t.Run("upsert updates coordinates in place", func(t *testing.T) {
		database := openTestDB(t)

		require.NoError(t, database.UpsertPantry(&models.Pantry{Name: "A", Address: "Addr", Latitude: 1, Longitude: 2}))
		require.NoError(t, database.UpsertPantry(&models.Pantry{Name: "A", Address: "Addr", Latitude: 3, Longitude: 4}))

		pantries, err := database.ListPantries(db.PantryFilter{})
		require.NoError(t, err)
		require.Len(t, pantries, 1)
		assert.Equal(t, 3.0, pantries[0].Latitude)
		assert.Equal(t, 4.0, pantries[0].Longitude)

		count, err := database.CountPantries()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("filters by name", func(t *testing.T) {
		database := openTestDB(t)

		require.NoError(t, database.UpsertPantry(&models.Pantry{Name: "Bowery Mission", Address: "1", Latitude: 1, Longitude: 2}))
		require.NoError(t, database.UpsertPantry(&models.Pantry{Name: "River Fund", Address: "2", Latitude: 1, Longitude: 2}))

		name := "mission"
		pantries, err := database.ListPantries(db.PantryFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, pantries, 1)
		assert.Equal(t, "Bowery Mission", pantries[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		database := openTestDB(t)

		for i := 0; i < 5; i++ {
			p := &models.Pantry{Name: fmt.Sprintf("P%d", i), Address: fmt.Sprintf("%d", i), Latitude: 1, Longitude: 2}
			require.NoError(t, database.UpsertPantry(p))
		}

		page, err := database.ListPantries(db.PantryFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "P2", page[0].Name)
		assert.Equal(t, "P3", page[1].Name)
	})

	t.Run("get by id", func(t *testing.T) {
		database := openTestDB(t)

		require.NoError(t, database.UpsertPantry(&models.Pantry{Name: "A", Address: "Addr", Latitude: 1, Longitude: 2}))

		pantries, err := database.ListPantries(db.PantryFilter{})
		require.NoError(t, err)
		require.Len(t, pantries, 1)

		p, err := database.GetPantry(pantries[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "A", p.Name)
	})

	t.Run("get missing id fails", func(t *testing.T) {
		database := openTestDB(t)

		_, err := database.GetPantry(9999)
		assert.Error(t, err)
	})
}
