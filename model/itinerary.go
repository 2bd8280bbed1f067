package model

import "time"

// ItineraryCategory 行程项分类，未识别的值统一归为 other
type ItineraryCategory string

const (
	CategoryRestaurant ItineraryCategory = "restaurant"
	CategoryAttraction ItineraryCategory = "attraction"
	CategoryBeach      ItineraryCategory = "beach"
	CategoryNightlife  ItineraryCategory = "nightlife"
	CategoryShopping   ItineraryCategory = "shopping"
	CategoryTour       ItineraryCategory = "tour"
	CategoryOther      ItineraryCategory = "other"
)

var itineraryCategories = map[ItineraryCategory]bool{
	CategoryRestaurant: true,
	CategoryAttraction: true,
	CategoryBeach:      true,
	CategoryNightlife:  true,
	CategoryShopping:   true,
	CategoryTour:       true,
	CategoryOther:      true,
}

// NormalizeCategory 将任意输入收敛到合法分类，缺省或未识别时为 other
func NormalizeCategory(raw string) ItineraryCategory {
	c := ItineraryCategory(raw)
	if itineraryCategories[c] {
		return c
	}
	return CategoryOther
}

type ItineraryItem struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	SessionID        string            `gorm:"not null;index" json:"session_id"`
	HotelID          uint              `gorm:"not null;index" json:"hotel_id"`
	Title            string            `gorm:"not null" json:"title"`
	Description      string            `gorm:"type:text" json:"description"`
	Location         string            `json:"location"`
	Category         ItineraryCategory `gorm:"not null;default:other" json:"category"`
	StartTime        *time.Time        `json:"start_time"`
	EndTime          *time.Time        `json:"end_time"`
	RecommendationID *uint             `json:"recommendation_id"`
}

func (ItineraryItem) TableName() string {
	return "itinerary_item"
}
