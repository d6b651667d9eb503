package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hawabodol/internal/bookings"
	"hawabodol/pkg/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Service interface {
	GetMyNotifications(ctx context.Context, recipientID uuid.UUID, query NotificationListQuery) (*NotificationListResponse, error)
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	NotifyOperatorApproved(ctx context.Context, operatorID uuid.UUID) error
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) GetMyNotifications(ctx context.Context, recipientID uuid.UUID, query NotificationListQuery) (*NotificationListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	notifications, totalCount, err := s.repo.GetByRecipient(ctx, recipientID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	unreadCount, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &NotificationListResponse{
		Notifications: notifications,
		TotalCount:    totalCount,
		UnreadCount:   unreadCount,
		Page:          query.Page,
		Limit:         query.Limit,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	marked, err := s.repo.MarkRead(ctx, recipientID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !marked {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *service) NotifyOperatorApproved(ctx context.Context, operatorID uuid.UUID) error {
	return s.repo.Create(ctx, &Notification{
		RecipientID: operatorID,
		Type:        TypeOperatorApproved,
		Title:       "Your operator account has been approved",
		Body:        "You can now create and publish tour packages.",
	})
}

// BookingNotifier sinks booking lifecycle events into notification rows and
// the Kafka event stream. It implements bookings.Notifier. Without a broker
// it degrades to rows only.
type BookingNotifier struct {
	repo     Repository
	producer EventProducer
	log      *logger.Logger
}

func NewBookingNotifier(repo Repository, producer EventProducer) *BookingNotifier {
	return &BookingNotifier{
		repo:     repo,
		producer: producer,
		log:      logger.GetDefault(),
	}
}

func (n *BookingNotifier) NotifyBookingEvent(ctx context.Context, event bookings.BookingEvent) {
	notificationType, touristTitle, operatorTitle := describeEvent(event)
	if notificationType == "" {
		return
	}

	bookingID, _ := uuid.Parse(event.BookingID)
	packageID, _ := uuid.Parse(event.PackageID)

	if touristID, err := uuid.Parse(event.TouristID); err == nil {
		notification := &Notification{
			RecipientID: touristID,
			Type:        notificationType,
			Title:       touristTitle,
			Body:        fmt.Sprintf("Booking %s for %d seat(s).", event.BookingRef, event.Quantity),
			BookingID:   &bookingID,
			PackageID:   &packageID,
		}
		if err := n.repo.Create(ctx, notification); err != nil {
			n.log.Warn("failed to store tourist notification", "booking_id", event.BookingID, "error", err)
		}
	}

	if operatorID, err := uuid.Parse(event.OperatorID); err == nil && operatorTitle != "" {
		notification := &Notification{
			RecipientID: operatorID,
			Type:        notificationType,
			Title:       operatorTitle,
			Body:        fmt.Sprintf("Booking %s for %d seat(s).", event.BookingRef, event.Quantity),
			BookingID:   &bookingID,
			PackageID:   &packageID,
		}
		if err := n.repo.Create(ctx, notification); err != nil {
			n.log.Warn("failed to store operator notification", "booking_id", event.BookingID, "error", err)
		}
	}

	if n.producer != nil {
		if err := n.producer.PublishBookingEvent(event); err != nil {
			n.log.Warn("failed to publish booking event", "booking_id", event.BookingID, "error", err)
		}
	}
}

func describeEvent(event bookings.BookingEvent) (NotificationType, string, string) {
	switch event.Type {
	case "booking.created":
		return TypeBookingCreated, "Your booking has been placed", "New booking received"
	case "booking.confirmed":
		return TypeBookingConfirmed, "Your booking is confirmed", "Booking confirmed"
	case "booking.cancelled":
		return TypeBookingCancelled, "Your booking has been cancelled", "Booking cancelled"
	case "booking.completed":
		return TypeBookingCompleted, "Your trip is complete", "Booking completed"
	case "booking.refunded":
		return TypeBookingRefunded, "Your booking has been refunded", "Booking refunded"
	default:
		return "", "", ""
	}
}
