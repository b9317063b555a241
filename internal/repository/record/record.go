// Package record implements the entity repositories on top of the embedded
// record store. Each repository owns one collection, serializes its entities
// as JSON payloads, and publishes a change event after every successful
// mutation so derived views can invalidate.
package record

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/omermarcel/renaltrack/internal/store"
	"github.com/omermarcel/renaltrack/pkg/event"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

func decodeAll[T any](collection string, records []store.Record) ([]*T, error) {
	out := make([]*T, 0, len(records))
	for _, rec := range records {
		var entity T
		if err := json.Unmarshal(rec.Payload, &entity); err != nil {
			return nil, apperrors.Persistence("decode "+collection, err)
		}
		out = append(out, &entity)
	}
	return out, nil
}

func encode(collection string, entity any) ([]byte, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return nil, apperrors.Persistence("encode "+collection, err)
	}
	return payload, nil
}

func recordIDs(records []store.Record) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return ids
}

// containsFold is the case-insensitive substring match used by list filters.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type publisher struct {
	events     *event.Dispatcher
	collection string
}

func (p publisher) publish(op event.Operation, id string) {
	if p.events == nil {
		return
	}
	p.events.Publish(event.Change{
		Collection: p.collection,
		Operation:  op,
		RecordID:   id,
		OccurredAt: time.Now(),
	})
}

func exists(ctx context.Context, s store.RecordStore, collection, id string) (bool, error) {
	records, err := s.GetAll(ctx, collection)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return true, nil
		}
	}
	return false, nil
}
