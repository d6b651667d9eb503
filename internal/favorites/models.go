package favorites

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite marks a package a tourist wants to keep an eye on. One row per
// tourist per package, enforced by a unique index.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TouristID uuid.UUID `gorm:"type:uuid;not null;index" json:"tourist_id"`
	PackageID uuid.UUID `gorm:"type:uuid;not null;index" json:"package_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type AddFavoriteRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
}
