package mapping

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/models"
)

// ToModelEvent converts a domain Event to a model Event, serializing the
// payload for storage.
func ToModelEvent(d domain.Event) (models.Event, error) {
	payload, err := domain.EncodeEventPayload(d)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{
		EventID:       d.EventID,
		AggregateID:   d.AggregateID,
		AggregateType: string(d.AggregateType),
		EventType:     string(d.EventType),
		Payload:       payload,
		Version:       d.Version,
		OccurredAt:    d.OccurredAt,
	}, nil
}

// ToDomainEvent converts a model Event to a domain Event, decoding the
// payload into its concrete type.
func ToDomainEvent(m models.Event) (domain.Event, error) {
	payload, err := domain.DecodeEventPayload(domain.EventType(m.EventType), m.Payload)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		EventID:       m.EventID,
		AggregateID:   m.AggregateID,
		AggregateType: domain.AggregateType(m.AggregateType),
		EventType:     domain.EventType(m.EventType),
		Payload:       payload,
		Version:       m.Version,
		OccurredAt:    m.OccurredAt,
	}, nil
}
