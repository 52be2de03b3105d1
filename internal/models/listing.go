package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing condition values. Kept in Turkish to match the categories the
// storefront exposes.
const (
	ConditionNew        = "sifir"
	ConditionLikeNew    = "sifir-gibi"
	ConditionLightlyUse = "az-kullanilmis"
	ConditionGood       = "iyi-durumda"
	ConditionOld        = "eski"
	ConditionBroken     = "arizali"
)

// ListingConditions enumerates every accepted condition value.
var ListingConditions = []string{
	ConditionNew,
	ConditionLikeNew,
	ConditionLightlyUse,
	ConditionGood,
	ConditionOld,
	ConditionBroken,
}

// ValidListingCondition reports whether c is an accepted condition value.
func ValidListingCondition(c string) bool {
	for _, v := range ListingConditions {
		if v == c {
			return true
		}
	}
	return false
}

// Listing represents an instrument-for-sale advert.
type Listing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"not null;index" json:"category"`
	Subcategory string         `json:"subcategory"`
	Brand       string         `gorm:"not null" json:"brand"`
	Condition   string         `gorm:"not null;default:iyi-durumda" json:"condition"`
	Price       float64        `gorm:"not null" json:"price"`
	Location    string         `gorm:"not null;index" json:"location"`
	Images      []ListingImage `gorm:"foreignKey:ListingID" json:"images"`
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	Views       uint           `gorm:"default:0" json:"views"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ListingImage is one externally hosted photo attached to a listing.
// PublicID is the object-store key used for deletion.
type ListingImage struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ListingID uint   `gorm:"not null;index" json:"-"`
	PublicID  string `gorm:"not null" json:"public_id"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `gorm:"not null;default:0" json:"-"`
}
