package models

import (
	"time"

	"gorm.io/gorm"
)

// Band post types.
const (
	BandTypeMusicianWanted = "Müzisyen Aranıyor"
	BandTypeFormingBand    = "Grup Kuruluyor"
	BandTypePartnerWanted  = "Partner Aranıyor"
)

// Band experience levels.
const (
	ExperienceBeginner     = "Başlangıç"
	ExperienceIntermediate = "Orta"
	ExperienceAdvanced     = "İleri"
	ExperienceAny          = "Farketmez"
)

// BandTypes enumerates accepted band post types.
var BandTypes = []string{BandTypeMusicianWanted, BandTypeFormingBand, BandTypePartnerWanted}

// ExperienceLevels enumerates accepted experience levels.
var ExperienceLevels = []string{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceAny}

// ValidBandType reports whether t is an accepted band post type.
func ValidBandType(t string) bool {
	for _, v := range BandTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidExperienceLevel reports whether l is an accepted experience level.
func ValidExperienceLevel(l string) bool {
	for _, v := range ExperienceLevels {
		if v == l {
			return true
		}
	}
	return false
}

// BandPost is a classifieds entry for forming or joining a music group.
// LookingFor and Genres are free-text tags stored as JSON arrays.
type BandPost struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"user"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Type            string         `gorm:"not null" json:"type"`
	LookingFor      []string       `gorm:"serializer:json;type:text" json:"looking_for"`
	Genres          []string       `gorm:"serializer:json;type:text" json:"genres"`
	Location        string         `gorm:"not null;index" json:"location"`
	ExperienceLevel string         `gorm:"not null;default:Farketmez" json:"experience_level"`
	CurrentMembers  int            `gorm:"default:1" json:"current_members"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
