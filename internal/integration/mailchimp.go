package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MailchimpClient upserts list members through the Mailchimp v3 API.
type MailchimpClient struct {
	apiKey       string
	listID       string
	serverPrefix string
	httpClient   *http.Client
}

func NewMailchimpClient(apiKey, listID, serverPrefix string) *MailchimpClient {
	return &MailchimpClient{
		apiKey:       apiKey,
		listID:       listID,
		serverPrefix: serverPrefix,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *MailchimpClient) Subscribe(ctx context.Context, email, source string) error {
	body, err := json.Marshal(map[string]interface{}{
		"email_address": email,
		"status":        "subscribed",
		"merge_fields": map[string]string{
			"SOURCE": source,
		},
		"tags": []string{"website_lead"},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://%s.api.mailchimp.com/3.0/lists/%s/members", c.serverPrefix, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// Mailchimp basic auth ignores the username.
	req.SetBasicAuth("anystring", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mailchimp returned %s: %s", resp.Status, detail)
	}
	return nil
}
