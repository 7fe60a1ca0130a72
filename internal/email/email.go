package email

import (
	"context"
	"fmt"

	"github.com/chainhotel/pms/internal/kafka"
)

// Sender delivers booking notifications to the partner agency. Stub
// transport: real delivery goes through the chain's mail relay.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify agency %s: %s for room %s (%s to %s)\n",
		event.AgencyCode, event.Type, event.RoomCode, event.StartDate, event.EndDate)
	return nil
}
