package model

import "time"

// Tone 决定酒店 AI 礼宾的人设风格
type Tone string

const (
	ToneRelaxedResort  Tone = "relaxed_resort"
	ToneFormalBusiness Tone = "formal_business"
	ToneBoutiqueChic   Tone = "boutique_chic"
	ToneFamilyFriendly Tone = "family_friendly"
)

type Hotel struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `gorm:"not null" json:"name"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Tone            Tone      `gorm:"not null;default:relaxed_resort" json:"tone"`
	WifiPassword    string    `json:"wifi_password"`
	BreakfastHours  string    `json:"breakfast_hours"`
	CheckoutTime    string    `json:"checkout_time"`
	DefaultLanguage string    `gorm:"not null;default:en" json:"default_language"`
}

func (Hotel) TableName() string {
	return "hotel"
}

type Room struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	HotelID   uint      `gorm:"not null;index" json:"hotel_id"`
	Number    string    `gorm:"not null" json:"number"`
	PINHash   string    `gorm:"not null" json:"-"`
}

func (Room) TableName() string {
	return "room"
}

// ServiceType 按语言存储可预订的服务项，仅 active 的会提供给模型
type ServiceType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	HotelID   uint      `gorm:"not null;index" json:"hotel_id"`
	Name      string    `gorm:"not null" json:"name"`
	Language  string    `gorm:"not null;default:en" json:"language"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
}

func (ServiceType) TableName() string {
	return "service_type"
}

type StaffUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	HotelID      uint      `gorm:"not null;index" json:"hotel_id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:staff" json:"role"`
}

func (StaffUser) TableName() string {
	return "staff_user"
}
