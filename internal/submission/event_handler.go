package submission

import (
	"context"
	"log/slog"

	"github.com/talentbase/hiring-pipeline/internal/core/events"
)

// Notifier consumes lifecycle events. Today it only writes structured log
// lines; it is the seam where candidate emails or outbound webhooks would
// hang off the bus without touching the engine.
type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

func (n *Notifier) HandleSubmissionCreated(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	n.logger.Info("candidate applied",
		"event_id", event.EventID(),
		"submission_id", data["submission_id"],
		"job_id", data["job_id"],
		"candidate_id", data["candidate_id"])
	return nil
}

func (n *Notifier) HandleSubmissionTransitioned(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	n.logger.Info("submission status changed",
		"event_id", event.EventID(),
		"submission_id", data["submission_id"],
		"from_status", data["from_status"],
		"to_status", data["to_status"],
		"actor_id", data["actor_id"])
	return nil
}

func (n *Notifier) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.SubmissionCreatedEvent, n.HandleSubmissionCreated)
	eventBus.Subscribe(events.SubmissionTransitionedEvent, n.HandleSubmissionTransitioned)
}
