package packages

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TourPackage struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OperatorID     uuid.UUID       `json:"operator_id" gorm:"type:uuid;not null;index"`
	Title          string          `json:"title" gorm:"not null;size:255"`
	Description    string          `json:"description" gorm:"type:text"`
	Location       string          `json:"location" gorm:"not null;size:255;index"`
	CoverImage     string          `json:"cover_image" gorm:"size:500"`
	StartDate      time.Time       `json:"start_date" gorm:"not null"`
	EndDate        time.Time       `json:"end_date" gorm:"not null"`
	TotalSeats     int             `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	AvailableSeats int             `json:"available_seats" gorm:"not null;check:available_seats >= 0"`
	BasePrice      decimal.Decimal `json:"base_price" gorm:"type:decimal(10,2);not null"`
	Status         PackageStatus   `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	IsRefundable   bool            `json:"is_refundable" gorm:"default:true"`
	RefundPolicy   string          `json:"refund_policy" gorm:"type:text"`
	Featured       bool            `json:"featured" gorm:"default:false"`
	Rating         float64         `json:"rating" gorm:"default:0"`
	ReviewCount    int             `json:"review_count" gorm:"default:0"`
	PublishedAt    *time.Time      `json:"published_at,omitempty"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`

	Categories []PackageCategory `json:"categories" gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// PackageCategory is a bookable tier within a package (e.g. standard,
// deluxe). Bookings reference a category; seats are accounted at the
// package level.
type PackageCategory struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	PackageID   uuid.UUID       `json:"package_id" gorm:"type:uuid;not null;index"`
	Name        string          `json:"name" gorm:"not null;size:100"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Features    []string        `json:"features" gorm:"serializer:json"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TourPackage) TableName() string {
	return "tour_packages"
}

func (PackageCategory) TableName() string {
	return "package_categories"
}

func (p *TourPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *PackageCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CreateCategoryRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Features    []string        `json:"features"`
}

type CreatePackageRequest struct {
	Title        string                  `json:"title" binding:"required,min=3,max=255"`
	Description  string                  `json:"description" binding:"max=5000"`
	Location     string                  `json:"location" binding:"required,min=2,max=255"`
	CoverImage   string                  `json:"cover_image" binding:"omitempty,url"`
	StartDate    time.Time               `json:"start_date" binding:"required"`
	EndDate      time.Time               `json:"end_date" binding:"required"`
	TotalSeats   int                     `json:"total_seats" binding:"required,min=1,max=10000"`
	BasePrice    decimal.Decimal         `json:"base_price" binding:"required"`
	IsRefundable *bool                   `json:"is_refundable"`
	RefundPolicy string                  `json:"refund_policy" binding:"max=2000"`
	Categories   []CreateCategoryRequest `json:"categories"`
}

type UpdatePackageRequest struct {
	Title        *string          `json:"title" binding:"omitempty,min=3,max=255"`
	Description  *string          `json:"description" binding:"omitempty,max=5000"`
	Location     *string          `json:"location" binding:"omitempty,min=2,max=255"`
	CoverImage   *string          `json:"cover_image" binding:"omitempty,url"`
	StartDate    *time.Time       `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	BasePrice    *decimal.Decimal `json:"base_price"`
	IsRefundable *bool            `json:"is_refundable"`
	RefundPolicy *string          `json:"refund_policy" binding:"omitempty,max=2000"`
	Featured     *bool            `json:"featured"`
}

type PackageListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Location string `form:"location"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published closed cancelled"`
}

type CategoryResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Features    []string        `json:"features"`
}

type PackageResponse struct {
	ID             string             `json:"id"`
	OperatorID     string             `json:"operator_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Location       string             `json:"location"`
	CoverImage     string             `json:"cover_image"`
	StartDate      time.Time          `json:"start_date"`
	EndDate        time.Time          `json:"end_date"`
	TotalSeats     int                `json:"total_seats"`
	AvailableSeats int                `json:"available_seats"`
	BasePrice      decimal.Decimal    `json:"base_price"`
	Status         PackageStatus      `json:"status"`
	IsRefundable   bool               `json:"is_refundable"`
	RefundPolicy   string             `json:"refund_policy"`
	Featured       bool               `json:"featured"`
	Rating         float64            `json:"rating"`
	ReviewCount    int                `json:"review_count"`
	Categories     []CategoryResponse `json:"categories"`
	PublishedAt    *time.Time         `json:"published_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type PaginatedPackages struct {
	Packages   []PackageResponse `json:"packages"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (p *TourPackage) ToResponse() PackageResponse {
	categories := make([]CategoryResponse, len(p.Categories))
	for i, c := range p.Categories {
		categories[i] = c.ToResponse()
	}

	return PackageResponse{
		ID:             p.ID.String(),
		OperatorID:     p.OperatorID.String(),
		Title:          p.Title,
		Description:    p.Description,
		Location:       p.Location,
		CoverImage:     p.CoverImage,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		TotalSeats:     p.TotalSeats,
		AvailableSeats: p.AvailableSeats,
		BasePrice:      p.BasePrice,
		Status:         p.Status,
		IsRefundable:   p.IsRefundable,
		RefundPolicy:   p.RefundPolicy,
		Featured:       p.Featured,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Categories:     categories,
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (c *PackageCategory) ToResponse() CategoryResponse {
	features := c.Features
	if features == nil {
		features = []string{}
	}
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Features:    features,
	}
}
