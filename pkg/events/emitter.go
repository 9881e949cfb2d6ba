// Package events handles event emission for match lifecycle changes
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/leguplabs/pythia/pkg/kafka"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter handles event emission for the matching engine. A nil producer
// disables emission, so the engine can run without a broker in local setups.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitMatchGenerated emits a match.generated event after a rank run persists
func (e *Emitter) EmitMatchGenerated(ctx context.Context, startupID string, results []models.MatchResult) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchGenerated")
	defer span.End()

	if e.producer == nil {
		return nil
	}

	event := &kafka.MatchEvent{
		EventType: "match.generated",
		StartupID: startupID,
	}
	if len(results) > 0 {
		event.SnapshotFingerprint = results[0].SnapshotFingerprint
		event.ResultCount = len(results)
		event.TopScore = results[0].Score
	}

	if err := e.producer.PublishMatchEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit match.generated event")
		return err
	}

	return nil
}

// EmitShareCreated emits a share.created event when a share link is minted
func (e *Emitter) EmitShareCreated(ctx context.Context, token *models.ShareToken) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitShareCreated")
	defer span.End()

	if e.producer == nil {
		return nil
	}

	event := &kafka.MatchEvent{
		EventType:  "share.created",
		StartupID:  token.StartupID,
		ShareToken: token.Token,
	}

	if err := e.producer.PublishMatchEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit share.created event")
		return err
	}

	return nil
}
