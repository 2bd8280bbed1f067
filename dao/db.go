package dao

import (
	"fmt"

	"hotel-concierge-backend/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}
	DB = db
	return nil
}

func AllModels() []any {
	return []any{
		&model.Hotel{},
		&model.Room{},
		&model.ServiceType{},
		&model.StaffUser{},
		&model.ChatSession{},
		&model.Message{},
		&model.ServiceRequest{},
		&model.ItineraryItem{},
	}
}

func AutoMigrate() error {
	return DB.AutoMigrate(AllModels()...)
}
