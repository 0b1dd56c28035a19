package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

func setupRoomTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.RoomModel{})
	require.NoError(t, err)

	return db
}

func mustRoom(t *testing.T, id string, area string) *property.Room {
	t.Helper()
	room, err := property.NewRoom(id, decimal.RequireFromString(area), "", 4)
	require.NoError(t, err)
	return room
}

func TestRoomRepository_SaveAndFind(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	t.Run("saves and reloads a room", func(t *testing.T) {
		room := mustRoom(t, "P101", "25.5")
		room.Description = "Corner room, second floor"

		require.NoError(t, repo.Save(ctx, room))

		found, err := repo.FindByID(ctx, "P101")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "P101", found.ID)
		assert.True(t, found.Area.Equal(decimal.RequireFromString("25.5")))
		assert.Equal(t, "Corner room, second floor", found.Description)
		assert.Equal(t, property.RoomStatusAvailable, found.Status)
		assert.Equal(t, 4, found.MaxOccupants)
	})

	t.Run("returns nil for unknown room", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "P999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("save updates an existing room", func(t *testing.T) {
		room := mustRoom(t, "P102", "18")
		require.NoError(t, repo.Save(ctx, room))

		room.MarkOccupied()
		require.NoError(t, repo.Save(ctx, room))

		found, err := repo.FindByID(ctx, "P102")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, property.RoomStatusOccupied, found.Status)
	})
}

func TestRoomRepository_FindAll(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	for _, id := range []string{"P101", "P102", "P201"} {
		require.NoError(t, repo.Save(ctx, mustRoom(t, id, "20")))
	}
	occupied := mustRoom(t, "P202", "20")
	occupied.MarkOccupied()
	require.NoError(t, repo.Save(ctx, occupied))

	t.Run("lists all rooms ordered by id", func(t *testing.T) {
		rooms, err := repo.FindAll(ctx, property.RoomFilter{})
		require.NoError(t, err)
		require.Len(t, rooms, 4)
		assert.Equal(t, "P101", rooms[0].ID)
		assert.Equal(t, "P202", rooms[3].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := property.RoomStatusOccupied
		rooms, err := repo.FindAll(ctx, property.RoomFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "P202", rooms[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		rooms, err := repo.FindAll(ctx, property.RoomFilter{Page: 2, PageSize: 3})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "P202", rooms[0].ID)
	})

	t.Run("counts with filter", func(t *testing.T) {
		status := property.RoomStatusAvailable
		count, err := repo.Count(ctx, property.RoomFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestRoomRepository_Delete(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mustRoom(t, "P101", "20")))
	require.NoError(t, repo.Delete(ctx, "P101"))

	found, err := repo.FindByID(ctx, "P101")
	require.NoError(t, err)
	assert.Nil(t, found)
}
