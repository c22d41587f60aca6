// Package push performs multicast push delivery and reports per-target
// outcomes. The provider is behind the MulticastSender port so the rest of
// the system never touches FCM types directly.
package push

import (
	"context"
	"fmt"
	"log/slog"

	"jobscaffold-backend/internal/domain"
)

// ClickAction is the routing marker the mobile client uses to open the
// right screen when the notification is tapped.
const ClickAction = "FLUTTER_NOTIFICATION_CLICK"

// Message is the channel-agnostic content of one push delivery.
type Message struct {
	Title    string
	Body     string
	Category domain.Category
	Data     map[string]string
}

// TokenResult is the provider's verdict for a single token within a
// multicast. Code is meaningful only when Success is false.
type TokenResult struct {
	Success bool
	Code    domain.ErrorCode
}

// MulticastSender delivers one batched call to the push provider and
// returns one result per token, in token order.
type MulticastSender interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]TokenResult, error)
}

type Dispatcher struct {
	sender MulticastSender
	logger *slog.Logger
}

func NewDispatcher(sender MulticastSender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// Send issues exactly one multicast call for the given targets and returns
// one DeliveryResult per target in the same order. An empty target set
// returns an empty result with no provider call; it means "no push channel
// available", not an error.
func (d *Dispatcher) Send(ctx context.Context, targets []domain.DeviceToken, msg Message) ([]domain.DeliveryResult, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	category := msg.Category
	if category == "" {
		category = domain.CategoryCustom
	}

	data := make(map[string]string, len(msg.Data)+2)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["type"] = string(category)
	data["click_action"] = ClickAction

	tokens := make([]string, len(targets))
	for i, t := range targets {
		tokens[i] = t.Token
	}

	results, err := d.sender.SendMulticast(ctx, tokens, msg.Title, msg.Body, data)
	if err != nil {
		return nil, fmt.Errorf("multicast send: %w", err)
	}
	if len(results) != len(targets) {
		return nil, fmt.Errorf("multicast send: provider returned %d results for %d tokens", len(results), len(targets))
	}

	outcomes := make([]domain.DeliveryResult, len(targets))
	success := 0
	for i, r := range results {
		outcomes[i] = domain.DeliveryResult{
			Target:  targets[i],
			Success: r.Success,
		}
		if r.Success {
			success++
		} else {
			outcomes[i].ErrorCode = r.Code
		}
	}

	d.logger.Info("push multicast sent",
		"targets", len(targets),
		"success", success,
		"failure", len(targets)-success,
	)
	return outcomes, nil
}
