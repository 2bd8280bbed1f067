package dao

import (
	"context"

	"hotel-concierge-backend/model"
)

func CreateServiceRequest(ctx context.Context, req *model.ServiceRequest) error {
	return DB.WithContext(ctx).Create(req).Error
}

func GetServiceRequest(ctx context.Context, id, hotelID uint) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	err := DB.WithContext(ctx).
		Where("id = ? AND hotel_id = ?", id, hotelID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func ListServiceRequestsByHotel(ctx context.Context, hotelID uint) ([]model.ServiceRequest, error) {
	var reqs []model.ServiceRequest
	err := DB.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func ListServiceRequestsByRoom(ctx context.Context, hotelID, roomID uint) ([]model.ServiceRequest, error) {
	var reqs []model.ServiceRequest
	err := DB.WithContext(ctx).
		Where("hotel_id = ? AND room_id = ?", hotelID, roomID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// TransitionServiceRequest 以当前状态作为条件做单行 CAS 更新，
// 并发的员工操作若状态已被别人改掉则影响行数为 0
func TransitionServiceRequest(ctx context.Context, id, hotelID uint, expected model.RequestStatus, updates map[string]any) (int64, error) {
	result := DB.WithContext(ctx).
		Model(&model.ServiceRequest{}).
		Where("id = ? AND hotel_id = ? AND status = ?", id, hotelID, expected).
		Updates(updates)
	return result.RowsAffected, result.Error
}
