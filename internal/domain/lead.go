package domain

import "time"

// Lead is a captured marketing contact, keyed by email so repeated
// submissions collapse into one row.
type Lead struct {
	Email       string    `json:"email" db:"email"`
	Source      string    `json:"source" db:"source"`
	UTMSource   *string   `json:"utm_source,omitempty" db:"utm_source"`
	UTMMedium   *string   `json:"utm_medium,omitempty" db:"utm_medium"`
	UTMCampaign *string   `json:"utm_campaign,omitempty" db:"utm_campaign"`
	UTMTerm     *string   `json:"utm_term,omitempty" db:"utm_term"`
	UTMContent  *string   `json:"utm_content,omitempty" db:"utm_content"`
	LandingPath *string   `json:"landing_path,omitempty" db:"landing_path"`
	Referrer    *string   `json:"referrer,omitempty" db:"referrer"`
	UserAgent   *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateLeadInput struct {
	Email          string `json:"email"`
	Source         string `json:"source"`
	UTMSource      string `json:"utm_source"`
	UTMMedium      string `json:"utm_medium"`
	UTMCampaign    string `json:"utm_campaign"`
	UTMTerm        string `json:"utm_term"`
	UTMContent     string `json:"utm_content"`
	LandingPath    string `json:"landing_path"`
	Referrer       string `json:"referrer"`
	UserAgent      string `json:"user_agent"`
	RecaptchaToken string `json:"recaptcha_token"`
}
