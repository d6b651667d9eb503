package reviews

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a tourist's rating of a package they actually travelled on.
// One review per tourist per package, enforced by a unique index.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_tourist_package" json:"package_id"`
	TouristID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_tourist_package" json:"tourist_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CreateReviewRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

type ReviewListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PaginatedReviews struct {
	Reviews []Review `json:"reviews"`
	Total   int64    `json:"total_count"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}
