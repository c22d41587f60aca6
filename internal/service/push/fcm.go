package push

import (
	"context"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"

	"jobscaffold-backend/internal/domain"
)

// FCMSender is the Firebase Cloud Messaging implementation of
// MulticastSender.
type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

func (s *FCMSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]TokenResult, error) {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	resp, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return nil, err
	}

	results := make([]TokenResult, len(resp.Responses))
	for i, r := range resp.Responses {
		results[i] = TokenResult{Success: r.Success}
		if !r.Success {
			results[i].Code = classify(r.Error)
		}
	}
	return results, nil
}

func classify(err error) domain.ErrorCode {
	switch {
	case err == nil:
		return ""
	case messaging.IsUnregistered(err):
		return domain.ErrTokenNotRegistered
	case errorutils.IsInvalidArgument(err):
		return domain.ErrTokenInvalid
	case messaging.IsQuotaExceeded(err) || errorutils.IsResourceExhausted(err):
		return domain.ErrRateLimited
	case errorutils.IsUnavailable(err):
		return domain.ErrUnavailable
	default:
		return domain.ErrInternal
	}
}
