package dao

import (
	"context"

	"hotel-concierge-backend/model"
)

func CreateItineraryItem(ctx context.Context, item *model.ItineraryItem) error {
	return DB.WithContext(ctx).Create(item).Error
}

func ListItineraryItems(ctx context.Context, sessionID string) ([]model.ItineraryItem, error) {
	var items []model.ItineraryItem
	err := DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("start_time ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func GetItineraryItem(ctx context.Context, id uint, sessionID string) (*model.ItineraryItem, error) {
	var item model.ItineraryItem
	err := DB.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateItineraryItem(ctx context.Context, item *model.ItineraryItem) error {
	return DB.WithContext(ctx).Save(item).Error
}

func DeleteItineraryItem(ctx context.Context, id uint, sessionID string) error {
	return DB.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&model.ItineraryItem{}).Error
}
