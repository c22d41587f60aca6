package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/repository"
)

// EmailSender is the slice of the email service the digest uses.
type EmailSender interface {
	SendDigestEmail(ctx context.Context, to, subject, text, html string) error
}

// ChatNotifier posts the digest summary to team chat.
type ChatNotifier interface {
	Notify(ctx context.Context, text string) error
}

type Service struct {
	leads       repository.LeadRepository
	email       EmailSender
	chat        ChatNotifier
	adminEmails []string
	logger      *slog.Logger
}

func NewService(leads repository.LeadRepository, email EmailSender, chat ChatNotifier, adminEmails []string, logger *slog.Logger) *Service {
	return &Service{
		leads:       leads,
		email:       email,
		chat:        chat,
		adminEmails: adminEmails,
		logger:      logger,
	}
}

// SourceCount is one row of a digest breakdown, ordered by count.
type SourceCount struct {
	Name  string
	Count int
}

// Digest summarizes the leads captured in the reporting window.
type Digest struct {
	Total        int
	Sources      []SourceCount
	TopReferrers []SourceCount
	Leads        []domain.Lead
}

// BuildDigest aggregates leads by attributed source and referrer. Sources
// are ordered by count descending; referrers are capped at five.
func BuildDigest(leads []domain.Lead) Digest {
	sources := make(map[string]int)
	referrers := make(map[string]int)
	for _, lead := range leads {
		source := lead.Source
		if lead.UTMSource != nil && *lead.UTMSource != "" {
			source = *lead.UTMSource
		}
		if source == "" {
			source = "unknown"
		}
		sources[source]++
		if lead.Referrer != nil && *lead.Referrer != "" {
			referrers[*lead.Referrer]++
		}
	}

	digest := Digest{
		Total:        len(leads),
		Sources:      sortedCounts(sources, 0),
		TopReferrers: sortedCounts(referrers, 5),
		Leads:        leads,
	}
	return digest
}

// WeeklyLeadSummary reports on the trailing seven days: one email per
// configured admin address plus a chat post. With zero new leads the run
// is a logged no-op.
func (s *Service) WeeklyLeadSummary(ctx context.Context) error {
	since := time.Now().AddDate(0, 0, -7)
	leads, err := s.leads.ListSince(ctx, since)
	if err != nil {
		return fmt.Errorf("list leads: %w", err)
	}
	if len(leads) == 0 {
		s.logger.Info("no new leads this week")
		return nil
	}

	digest := BuildDigest(leads)
	subject := fmt.Sprintf("JobScaffold Weekly Leads: %d new %s", digest.Total, plural(digest.Total, "lead"))
	text := digest.Text()
	html := digest.HTML()

	if s.email != nil {
		for _, admin := range s.adminEmails {
			if err := s.email.SendDigestEmail(ctx, admin, subject, text, html); err != nil {
				s.logger.Error("weekly digest email failed", "to", admin, "error", err)
			}
		}
	} else {
		s.logger.Info("email channel not configured, skipping digest email")
	}

	if s.chat != nil {
		if err := s.chat.Notify(ctx, digest.ChatText()); err != nil {
			s.logger.Error("weekly digest chat post failed", "error", err)
		}
	}
	return nil
}

func (d Digest) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly Lead Summary\n\nTotal new leads this week: %d\n\nBreakdown by source:\n", d.Total)
	for _, s := range d.Sources {
		fmt.Fprintf(&b, "• %s: %d\n", s.Name, s.Count)
	}
	if len(d.TopReferrers) > 0 {
		b.WriteString("\nTop referrers:\n")
		for _, r := range d.TopReferrers {
			fmt.Fprintf(&b, "• %s: %d\n", r.Name, r.Count)
		}
	}
	b.WriteString("\nAll leads:\n")
	for _, lead := range d.Leads {
		source := lead.Source
		if lead.UTMSource != nil && *lead.UTMSource != "" {
			source = *lead.UTMSource
		}
		fmt.Fprintf(&b, "• %s (%s) - %s\n", lead.Email, source, lead.CreatedAt.Format("2006-01-02"))
	}
	return b.String()
}

func (d Digest) HTML() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Weekly Lead Summary</h2><p><strong>Total new leads this week:</strong> %d</p>", d.Total)
	b.WriteString("<h3>Breakdown by source:</h3><ul>")
	for _, s := range d.Sources {
		fmt.Fprintf(&b, "<li>%s: %d</li>", s.Name, s.Count)
	}
	b.WriteString("</ul>")
	if len(d.TopReferrers) > 0 {
		b.WriteString("<h3>Top referrers:</h3><ul>")
		for _, r := range d.TopReferrers {
			fmt.Fprintf(&b, "<li>%s: %d</li>", r.Name, r.Count)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("<h3>All leads:</h3><ul>")
	for _, lead := range d.Leads {
		source := lead.Source
		if lead.UTMSource != nil && *lead.UTMSource != "" {
			source = *lead.UTMSource
		}
		fmt.Fprintf(&b, "<li>%s (%s) - %s</li>", lead.Email, source, lead.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("</ul>")
	return b.String()
}

func (d Digest) ChatText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Weekly Lead Summary*\n\n*Total:* %d\n\n*By source:*\n", d.Total)
	for _, s := range d.Sources {
		fmt.Fprintf(&b, "• %s: %d\n", s.Name, s.Count)
	}
	if len(d.TopReferrers) > 0 {
		b.WriteString("\n*Top referrers:*\n")
		for _, r := range d.TopReferrers {
			fmt.Fprintf(&b, "• %s: %d\n", r.Name, r.Count)
		}
	}
	return b.String()
}

func sortedCounts(counts map[string]int, limit int) []SourceCount {
	out := make([]SourceCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, SourceCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
