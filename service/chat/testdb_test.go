package chat

import (
	"testing"

	"hotel-concierge-backend/dao"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 用内存 sqlite 替换全局连接，用例结束后自动恢复
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	prev := dao.DB
	dao.DB = db
	t.Cleanup(func() { dao.DB = prev })

	if err := dao.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
}
