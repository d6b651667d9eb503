package notifications

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	TypeBookingCreated   NotificationType = "booking_created"
	TypeBookingConfirmed NotificationType = "booking_confirmed"
	TypeBookingCancelled NotificationType = "booking_cancelled"
	TypeBookingCompleted NotificationType = "booking_completed"
	TypeBookingRefunded  NotificationType = "booking_refunded"
	TypeOperatorApproved NotificationType = "operator_approved"
)

// Notification is an in-app notification row. Kafka delivery is best
// effort on top; the row is the durable record.
type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title       string           `gorm:"not null;size:255" json:"title"`
	Body        string           `gorm:"type:text" json:"body"`
	BookingID   *uuid.UUID       `gorm:"type:uuid" json:"booking_id,omitempty"`
	PackageID   *uuid.UUID       `gorm:"type:uuid" json:"package_id,omitempty"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

type NotificationListQuery struct {
	Page   int  `form:"page" binding:"omitempty,min=1"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=100"`
	Unread bool `form:"unread"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	TotalCount    int64          `json:"total_count"`
	UnreadCount   int64          `json:"unread_count"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
}
