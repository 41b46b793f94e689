package whatsapp

import (
	"context"
	"log"

	"github.com/rehlatours/umrahbooking/internal/domain"
)

// Notifier adapts the transport client to the booking service's post-commit
// hook: build the confirmation message, pick and normalize the target number,
// send. Callers treat any returned error as best-effort.
type Notifier struct {
	client *Client
}

func NewNotifier(client *Client) *Notifier {
	if !client.Configured() {
		log.Printf("WARNING: whatsapp api configuration missing, confirmations disabled")
	}
	return &Notifier{client: client}
}

func (n *Notifier) BookingChanged(ctx context.Context, b *domain.Booking, op string) error {
	phone := b.ContactPhone()
	if phone == "" {
		return nil
	}
	return n.client.SendMessage(ctx, Message{
		Phone:   NormalizePhone(phone),
		Message: ConfirmationMessage(b, op),
	})
}
