// Package bot implements the conversation controller: the per-user state
// machine dispatching incoming Telegram messages to reply handlers.
package bot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/clavicordio/bodymass-telegram-bot/internal/config"
	"github.com/clavicordio/bodymass-telegram-bot/internal/metrics"
)

const (
	// fetchTimeout bounds the whole CSV download during an import.
	fetchTimeout = 30 * time.Second
	// turnTimeout bounds one conversation turn end to end.
	turnTimeout = 2 * time.Minute
)

// RegisterHandlers wires message handling into the bot. Every text message
// and document goes through the same dispatch, mirroring how commands are
// plain-text tokens rather than per-command registrations.
//
// Errors never propagate back to the poller: one user's failure must not
// stop everyone else's updates. Telegram delivers a chat's messages in
// order, which is what makes the read-state/act/write-state turn safe
// without locking; two in-flight messages from the same user would be a
// last-write-wins race.
func RegisterHandlers(b *tele.Bot, records RecordStore, states StateStore, log *logrus.Logger, cfg *config.Config) {
	fetcher := newTelegramFetcher(b, cfg.MaxFileSize, fetchTimeout)
	h := newMessageHandler(b, records, states, fetcher, log,
		cfg.MaxFileSize, cfg.MaxBodyWeight, cfg.MaintenanceThreshold)

	handle := func(c tele.Context) error {
		m := c.Message()
		if m == nil {
			return nil
		}

		entry := log.WithFields(logrus.Fields{
			"user_id":    m.Chat.ID,
			"request_id": uuid.NewString(),
		})
		entry.WithField("text", m.Text).Info("incoming message")

		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()

		act, err := h.process(ctx, m)
		outcome := reportOutcome(entry, act, err)
		metrics.MessagesProcessed.WithLabelValues(act.String(), outcome).Inc()
		return nil
	}

	b.Handle(tele.OnText, handle)
	b.Handle(tele.OnDocument, handle)
}

// reportOutcome logs the result of one turn and names it for metrics. An
// invalid conversation state is a contract violation, not a user mistake, so
// it is flagged critical to stand out from ordinary handler failures.
func reportOutcome(entry *logrus.Entry, act action, err error) string {
	switch {
	case errors.Is(err, ErrInvalidState):
		entry.WithError(err).WithField("severity", "critical").Error("conversation state contract violation")
		return "invalid_state"
	case err != nil:
		entry.WithError(err).WithField("action", act.String()).Error("error handling message")
		return "error"
	}
	return "ok"
}
