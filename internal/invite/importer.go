package invite

import (
	"context"
	"log/slog"
	"time"

	"github.com/rohitkumarofficial/reactivities/internal/registry"
)

// lookback bounds how far back the mailbox is scanned for invitations.
const lookback = 7 * 24 * time.Hour

// fetchLimit caps the number of messages examined per run.
const fetchLimit = 100

// Importer scans the invitation mailbox and creates the activities it
// finds through the registry, so imports take the same
// commit-after-confirm path as interactive writes.
type Importer struct {
	client *IMAPClient
	reg    *registry.Registry
	log    *slog.Logger
}

// NewImporter creates an importer over the given mailbox client.
func NewImporter(
	client *IMAPClient,
	reg *registry.Registry,
	log *slog.Logger,
) *Importer {
	return &Importer{client: client, reg: reg, log: log}
}

// Run performs one import pass and returns the number of activities
// created. Messages that fail to import stay unflagged and are retried
// next pass; messages that are not invitations are flagged so they are
// not examined again.
func (i *Importer) Run(ctx context.Context) (int, error) {
	messages, err := i.client.FetchUnprocessed(
		ctx, time.Now().Add(-lookback), fetchLimit,
	)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, msg := range messages {
		act, ok := Parse(msg)
		if !ok {
			if err := i.client.MarkProcessed(ctx, msg.UID); err != nil {
				i.log.Warn("flagging non-invitation mail",
					"uid", msg.UID, "error", err)
			}
			continue
		}

		if err := i.reg.Create(ctx, act); err != nil {
			i.log.Warn("creating imported activity",
				"uid", msg.UID, "title", act.Title, "error", err)
			continue
		}

		if err := i.client.MarkProcessed(ctx, msg.UID); err != nil {
			i.log.Warn("flagging imported mail",
				"uid", msg.UID, "error", err)
		}

		i.log.Info("imported invitation",
			"title", act.Title, "from", msg.From)
		created++
	}

	return created, nil
}
