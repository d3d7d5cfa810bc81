package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutriplan/config"
	"nutriplan/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.AutoMigrate(db))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type recordingPublisher struct {
	events []publishedNeeds
}

type publishedNeeds struct {
	userID string
	needs  models.CalculatedNeeds
}

func (r *recordingPublisher) PublishNeeds(userID string, needs models.CalculatedNeeds) {
	r.events = append(r.events, publishedNeeds{userID: userID, needs: needs})
}

func (r *recordingPublisher) last() publishedNeeds {
	return r.events[len(r.events)-1]
}
