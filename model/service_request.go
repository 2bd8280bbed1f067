package model

import "time"

// RequestStatus 服务请求状态机的状态，合法迁移见 service/lifecycle
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusDeclined   RequestStatus = "declined"
	StatusModified   RequestStatus = "modified"
	StatusRejected   RequestStatus = "rejected"
	StatusCancelled  RequestStatus = "cancelled"
)

// Resolution 终态标记
type Resolution string

const (
	ResolutionFulfilled        Resolution = "fulfilled"
	ResolutionDeclinedByStaff  Resolution = "declined_by_staff"
	ResolutionAcceptedModified Resolution = "accepted_modified"
	ResolutionRejectedModified Resolution = "rejected_modified"
	ResolutionCancelledByGuest Resolution = "cancelled_by_guest"
)

type ServiceRequest struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	HotelID       uint          `gorm:"not null;index" json:"hotel_id"`
	RoomID        *uint         `gorm:"index" json:"room_id"`
	ServiceTypeID *uint         `json:"service_type_id"`
	RequestType   string        `gorm:"not null" json:"request_type"`
	Details       string        `gorm:"type:text" json:"details"`
	Status        RequestStatus `gorm:"not null;default:pending;index" json:"status"`
	GuestLanguage string        `json:"guest_language"`
	StaffResponse string        `gorm:"type:text" json:"staff_response"`
	Resolution    Resolution    `json:"resolution"`
	GuestAccepted *bool         `json:"guest_accepted"`
	RespondedAt   *time.Time    `json:"responded_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
}

func (ServiceRequest) TableName() string {
	return "service_request"
}
