package clubapi

import (
	"context"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/training"
)

// ListTrainings fetches every training session.
func (c *Client) ListTrainings(ctx context.Context) ([]training.Training, error) {
	var out []training.Training
	if err := c.get(ctx, "/trainings", "/trainings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTraining fetches one training session.
func (c *Client) GetTraining(ctx context.Context, id entity.ID) (training.Training, error) {
	var out training.Training
	if err := c.get(ctx, idPath("/trainings", id, ""), "/trainings/:id", &out); err != nil {
		return training.Training{}, err
	}
	return out, nil
}

// CreateTraining creates a training session.
func (c *Client) CreateTraining(ctx context.Context, p training.Payload) (training.Training, error) {
	var out training.Training
	if err := c.post(ctx, "/trainings", "/trainings", p, &out); err != nil {
		return training.Training{}, err
	}
	return out, nil
}

// UpdateTraining patches a training session.
func (c *Client) UpdateTraining(ctx context.Context, id entity.ID, p training.Payload) (training.Training, error) {
	var out training.Training
	if err := c.patch(ctx, idPath("/trainings", id, ""), "/trainings/:id", p, &out); err != nil {
		return training.Training{}, err
	}
	return out, nil
}

// MarkTrainingAttendance records who attended.
func (c *Client) MarkTrainingAttendance(ctx context.Context, id entity.ID, a training.Attendance) error {
	return c.post(ctx, idPath("/trainings", id, "/attendance"), "/trainings/:id/attendance", a, nil)
}

// DeleteTraining deletes a training session.
func (c *Client) DeleteTraining(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/trainings", id, ""), "/trainings/:id")
}
