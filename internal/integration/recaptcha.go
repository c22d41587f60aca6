package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaVerifier checks reCAPTCHA v3 tokens against Google's verify
// endpoint. v2 responses carry no score and pass on success alone.
type RecaptchaVerifier struct {
	secret     string
	minScore   float64
	httpClient *http.Client
}

func NewRecaptchaVerifier(secret string, minScore float64) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:     secret,
		minScore:   minScore,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, recaptchaVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("recaptcha verify returned %s", resp.Status)
	}

	var result struct {
		Success bool     `json:"success"`
		Score   *float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}

	if !result.Success {
		return false, nil
	}
	if result.Score != nil && *result.Score < v.minScore {
		return false, nil
	}
	return true, nil
}
