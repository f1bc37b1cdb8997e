package usecase

import (
	"context"
	"fmt"

	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"
)

// PickupMessage builds the text sent to an owner at pickup time. An unset
// pickup time falls back to the "this afternoon" phrasing.
func PickupMessage(dogName, pickUpTime string) string {
	if pickUpTime == "" {
		pickUpTime = "i eftermiddag"
	}
	return fmt.Sprintf("Hej! 🐾 %s har haft en toppenbra dag här idag. Det går jättebra att hämta kl %s. Vi ses!", dogName, pickUpTime)
}

// NotifyService sends pickup messages to owners through the SMS gateway.
type NotifyService struct {
	notifier repository.PickupNotifier
	logger   logger.Logger
}

// NewNotifyService creates a new notify service
func NewNotifyService(notifier repository.PickupNotifier, log logger.Logger) *NotifyService {
	return &NotifyService{
		notifier: notifier,
		logger:   log,
	}
}

// NotifyPickup composes and sends the pickup message for a dog, using its
// owner's phone number and the dog's pickup time in the given week. A failed
// send is reported upward; state is never mutated.
func (s *NotifyService) NotifyPickup(ctx context.Context, gw *Gateway, weekKey, dogID string) error {
	doc := gw.Snapshot()

	dog, ok := doc.DogByID(dogID)
	if !ok {
		return fmt.Errorf("dog %s not found", dogID)
	}

	owner, ok := doc.CustomerByID(dog.CustomerID)
	if !ok || owner.Phone == "" {
		return fmt.Errorf("no owner phone for dog %s", dogID)
	}

	pickUpTime := ""
	if week, ok := doc.Schedules[weekKey]; ok {
		pickUpTime = week[dogID].PickUpTime
	}

	message := PickupMessage(dog.Name, pickUpTime)
	if err := s.notifier.SendPickupMessage(ctx, owner.Phone, message); err != nil {
		s.logger.Error("Pickup notification failed", "dog", dogID, "error", err)
		return err
	}
	return nil
}
