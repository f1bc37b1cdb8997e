package repository

import "context"

// PickupNotifier delivers a pickup message to an owner's phone. Delivery is
// fire-and-forget; a failed send is reported upward but never mutates state.
type PickupNotifier interface {
	SendPickupMessage(ctx context.Context, phone, message string) error
}
