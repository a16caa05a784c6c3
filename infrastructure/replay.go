package infrastructure

import (
	"context"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/contracts"
	"github.com/go-foreman/cqrs/eventstore"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/pkg/errors"
)

// ReplayEventsHandler re-dispatches events of the bounded context event store to the context listeners
type ReplayEventsHandler struct {
	bc         *boundedcontext.BoundedContext
	knownTypes scheme.KnownTypesRegistry
}

func NewReplayEventsHandler(bc *boundedcontext.BoundedContext, knownTypes scheme.KnownTypesRegistry) *ReplayEventsHandler {
	return &ReplayEventsHandler{bc: bc, knownTypes: knownTypes}
}

func (h *ReplayEventsHandler) Commands() []message.Object {
	return []message.Object{&contracts.ReplayEventsCommand{}}
}

func (h *ReplayEventsHandler) Handle(ctx context.Context, cmd message.Object) error {
	replay, ok := cmd.(*contracts.ReplayEventsCommand)
	if !ok {
		return errors.Errorf("unexpected command %T", cmd)
	}

	if replay.Destination != "" && replay.Destination != h.bc.Name {
		return errors.Errorf("replay %s is addressed to %s, not %s", replay.ID, replay.Destination, h.bc.Name)
	}

	// the store is looked up on every replay, it may be attached after the handler
	store := h.bc.EventStore()
	if store == nil {
		return errors.Errorf("bounded context %s has no event store to replay %s from", h.bc.Name, replay.ID)
	}

	records, err := store.ReadSince(ctx, replay.From)
	if err != nil {
		return errors.Wrapf(err, "reading events for replay %s", replay.ID)
	}

	filtered, err := h.filter(records, replay.Kinds)
	if err != nil {
		return errors.Wrapf(err, "filtering events for replay %s", replay.ID)
	}

	if err := h.bc.DispatchCommit(ctx, filtered); err != nil {
		return errors.Wrapf(err, "replay %s", replay.ID)
	}

	h.bc.Logger().Logf(log.InfoLevel, "replay %s dispatched %d of %d events since %s", replay.ID, len(filtered), len(records), replay.From)

	return nil
}

func (h *ReplayEventsHandler) filter(records []eventstore.Record, kinds []string) ([]eventstore.Record, error) {
	if len(kinds) == 0 {
		return records, nil
	}

	wanted := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[k] = struct{}{}
	}

	var filtered []eventstore.Record

	for _, record := range records {
		gk := record.Payload.GroupKind()

		if gk.Empty() {
			known, err := h.knownTypes.ObjectKind(record.Payload)
			if err != nil {
				return nil, errors.Wrapf(err, "record %s", record.UID)
			}
			gk = *known
		}

		if _, ok := wanted[gk.String()]; ok {
			filtered = append(filtered, record)
		}
	}

	return filtered, nil
}
