package dao

import (
	"hotel-concierge-backend/model"
)

func GetHotelByID(id uint) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := DB.Where("id = ?", id).
		First(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func GetRoomByID(id uint) (*model.Room, error) {
	var room model.Room
	if err := DB.Where("id = ?", id).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// GetActiveServiceTypeNames 按语言取该酒店启用的服务名，作为模型的白名单
func GetActiveServiceTypeNames(hotelID uint, language string) ([]string, error) {
	var names []string
	err := DB.Model(&model.ServiceType{}).
		Where("hotel_id = ? AND language = ? AND active = ?", hotelID, language, true).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func FindServiceTypeByName(hotelID uint, name string) (*model.ServiceType, error) {
	var st model.ServiceType
	err := DB.Where("hotel_id = ? AND name = ? AND active = ?", hotelID, name, true).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func GetStaffByEmail(email string) (*model.StaffUser, error) {
	var staff model.StaffUser
	if err := DB.Where("email = ?", email).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}
