package clubapi

import (
	"context"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/payment"
)

// ListPayments fetches every payment.
func (c *Client) ListPayments(ctx context.Context) ([]payment.Payment, error) {
	var out []payment.Payment
	if err := c.get(ctx, "/payments", "/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaymentsByPlayer fetches one player's payments.
func (c *Client) ListPaymentsByPlayer(ctx context.Context, playerID entity.ID) ([]payment.Payment, error) {
	var out []payment.Payment
	if err := c.get(ctx, idPath("/payments/player", playerID, ""), "/payments/player/:id", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOverduePayments fetches the payments the server flagged overdue.
func (c *Client) ListOverduePayments(ctx context.Context) ([]payment.Payment, error) {
	var out []payment.Payment
	if err := c.get(ctx, "/payments/overdue", "/payments/overdue", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPaymentStatistics fetches the aggregate counters.
func (c *Client) GetPaymentStatistics(ctx context.Context) (payment.Statistics, error) {
	var out payment.Statistics
	if err := c.get(ctx, "/payments/statistics", "/payments/statistics", &out); err != nil {
		return payment.Statistics{}, err
	}
	return out, nil
}

// GetPayment fetches one payment.
func (c *Client) GetPayment(ctx context.Context, id entity.ID) (payment.Payment, error) {
	var out payment.Payment
	if err := c.get(ctx, idPath("/payments", id, ""), "/payments/:id", &out); err != nil {
		return payment.Payment{}, err
	}
	return out, nil
}

// CreatePayment registers a payment.
func (c *Client) CreatePayment(ctx context.Context, p payment.Payload) (payment.Payment, error) {
	var out payment.Payment
	if err := c.post(ctx, "/payments", "/payments", p, &out); err != nil {
		return payment.Payment{}, err
	}
	return out, nil
}

// UpdatePayment patches a payment.
func (c *Client) UpdatePayment(ctx context.Context, id entity.ID, p payment.Payload) (payment.Payment, error) {
	var out payment.Payment
	if err := c.patch(ctx, idPath("/payments", id, ""), "/payments/:id", p, &out); err != nil {
		return payment.Payment{}, err
	}
	return out, nil
}

// MarkPaymentPaid settles a payment.
func (c *Client) MarkPaymentPaid(ctx context.Context, id entity.ID, m payment.MarkPaid) (payment.Payment, error) {
	var out payment.Payment
	if err := c.patch(ctx, idPath("/payments", id, "/mark-paid"), "/payments/:id/mark-paid", m, &out); err != nil {
		return payment.Payment{}, err
	}
	return out, nil
}

// DeletePayment deletes a payment.
func (c *Client) DeletePayment(ctx context.Context, id entity.ID) error {
	return c.delete(ctx, idPath("/payments", id, ""), "/payments/:id")
}
