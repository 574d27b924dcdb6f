package clubapi

import (
	"context"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
)

// ListEvents fetches every club event.
func (c *Client) ListEvents(ctx context.Context) ([]event.Event, error) {
	var out []event.Event
	if err := c.get(ctx, "/events", "/events", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUpcomingEvents fetches the events the server considers upcoming.
func (c *Client) ListUpcomingEvents(ctx context.Context) ([]event.Event, error) {
	var out []event.Event
	if err := c.get(ctx, "/events/upcoming", "/events/upcoming", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent fetches one event with its participants.
func (c *Client) GetEvent(ctx context.Context, id entity.ID) (event.Event, error) {
	var out event.Event
	if err := c.get(ctx, idPath("/events", id, ""), "/events/:id", &out); err != nil {
		return event.Event{}, err
	}
	return out, nil
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(ctx context.Context, p event.Payload) (event.Event, error) {
	var out event.Event
	if err := c.post(ctx, "/events", "/events", p, &out); err != nil {
		return event.Event{}, err
	}
	return out, nil
}

// UpdateEvent patches an event.
func (c *Client) UpdateEvent(ctx context.Context, id entity.ID, p event.Payload) (event.Event, error) {
	var out event.Event
	if err := c.patch(ctx, idPath("/events", id, ""), "/events/:id", p, &out); err != nil {
		return event.Event{}, err
	}
	return out, nil
}

// AddEventParticipants registers players for an event.
func (c *Client) AddEventParticipants(ctx context.Context, id entity.ID, p event.Participants) error {
	return c.post(ctx, idPath("/events", id, "/participants"), "/events/:id/participants", p, nil)
}

// RemoveEventParticipant unregisters one player.
func (c *Client) RemoveEventParticipant(ctx context.Context, id, playerID entity.ID) error {
	return c.delete(ctx, idPath("/events", id, idPath("/participants", playerID, "")), "/events/:id/participants/:playerId")
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/events", id, ""), "/events/:id")
}
