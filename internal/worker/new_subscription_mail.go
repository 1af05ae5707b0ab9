package worker

import (
	"context"
	"fmt"
	"log/slog"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/mailer"
	"meetapp.app/api/internal/queue"
)

// NewSubscriptionMailHandler emails an organizer about a new subscriber.
type NewSubscriptionMailHandler struct {
	renderer *mailer.Renderer
	sender   mailer.Sender
}

func NewNewSubscriptionMailHandler(renderer *mailer.Renderer, sender mailer.Sender) *NewSubscriptionMailHandler {
	return &NewSubscriptionMailHandler{renderer: renderer, sender: sender}
}

func (h *NewSubscriptionMailHandler) Handle(ctx context.Context, msg queue.Message) error {
	payload, err := queue.DecodeNewSubscriptionMail(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermanent, err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MeetupID:       &payload.MeetupID,
		SubscriptionID: &payload.SubscriptionID,
	})

	mail, err := h.renderer.NewSubscription(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermanent, err)
	}

	if err := h.sender.Send(ctx, mail); err != nil {
		return fmt.Errorf("sending new subscription mail: %w", err)
	}

	slog.InfoContext(ctx, "new subscription mail sent",
		"organizer", logger.RedactEmail(payload.OrganizerEmail),
		"subscribers", payload.SubscriberCount+1)
	return nil
}
