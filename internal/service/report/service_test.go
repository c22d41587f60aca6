package report_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/service/report"
	"jobscaffold-backend/tests/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func leadFrom(email, source string, utmSource, referrer *string) domain.Lead {
	return domain.Lead{
		Email:     email,
		Source:    source,
		UTMSource: utmSource,
		Referrer:  referrer,
		CreatedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildDigest_GroupsByAttributedSource(t *testing.T) {
	leads := []domain.Lead{
		leadFrom("a@x.com", "website", nil, nil),
		leadFrom("b@x.com", "website", strPtr("google"), nil),
		leadFrom("c@x.com", "website", strPtr("google"), nil),
		leadFrom("d@x.com", "", nil, nil),
	}

	digest := report.BuildDigest(leads)

	assert.Equal(t, 4, digest.Total)
	assert.Equal(t, []report.SourceCount{
		{Name: "google", Count: 2},
		{Name: "unknown", Count: 1},
		{Name: "website", Count: 1},
	}, digest.Sources)
	assert.Empty(t, digest.TopReferrers)
}

func TestBuildDigest_ReferrersCappedAtFive(t *testing.T) {
	var leads []domain.Lead
	for _, ref := range []string{"r1", "r2", "r3", "r4", "r5", "r6"} {
		leads = append(leads, leadFrom(ref+"@x.com", "website", nil, strPtr(ref)))
	}
	leads = append(leads, leadFrom("again@x.com", "website", nil, strPtr("r3")))

	digest := report.BuildDigest(leads)

	assert.Len(t, digest.TopReferrers, 5)
	assert.Equal(t, report.SourceCount{Name: "r3", Count: 2}, digest.TopReferrers[0])
}

func TestDigestText_ListsEveryLead(t *testing.T) {
	digest := report.BuildDigest([]domain.Lead{
		leadFrom("a@x.com", "website", nil, nil),
		leadFrom("b@x.com", "website", strPtr("google"), nil),
	})

	text := digest.Text()

	assert.Contains(t, text, "Total new leads this week: 2")
	assert.Contains(t, text, "a@x.com (website) - 2026-08-24")
	assert.Contains(t, text, "b@x.com (google) - 2026-08-24")
}

func TestWeeklyLeadSummary_EmailsEveryAdminAndPostsChat(t *testing.T) {
	leads := new(mocks.LeadRepository)
	email := new(mocks.EmailService)
	chat := new(mocks.ChatNotifier)
	svc := report.NewService(leads, email, chat, []string{"admin1@x.com", "admin2@x.com"}, testLogger())

	leads.On("ListSince", mock.Anything, mock.Anything).Return([]domain.Lead{
		leadFrom("a@x.com", "website", nil, nil),
	}, nil).Once()
	email.On("SendDigestEmail", mock.Anything, "admin1@x.com", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	email.On("SendDigestEmail", mock.Anything, "admin2@x.com", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	chat.On("Notify", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Weekly Lead Summary")
	})).Return(nil).Once()

	err := svc.WeeklyLeadSummary(context.Background())

	assert.NoError(t, err)
	email.AssertExpectations(t)
	chat.AssertExpectations(t)
}

func TestWeeklyLeadSummary_SubjectCountsLeads(t *testing.T) {
	leads := new(mocks.LeadRepository)
	email := new(mocks.EmailService)
	svc := report.NewService(leads, email, nil, []string{"admin@x.com"}, testLogger())

	leads.On("ListSince", mock.Anything, mock.Anything).Return([]domain.Lead{
		leadFrom("a@x.com", "website", nil, nil),
	}, nil).Once()

	var subject string
	email.On("SendDigestEmail", mock.Anything, "admin@x.com", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			subject = args.Get(2).(string)
		}).
		Return(nil).Once()

	err := svc.WeeklyLeadSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "JobScaffold Weekly Leads: 1 new lead", subject)
}

func TestWeeklyLeadSummary_NoLeadsIsNoOp(t *testing.T) {
	leads := new(mocks.LeadRepository)
	email := new(mocks.EmailService)
	chat := new(mocks.ChatNotifier)
	svc := report.NewService(leads, email, chat, []string{"admin@x.com"}, testLogger())

	leads.On("ListSince", mock.Anything, mock.Anything).Return(nil, nil).Once()

	err := svc.WeeklyLeadSummary(context.Background())

	assert.NoError(t, err)
	email.AssertNotCalled(t, "SendDigestEmail")
	chat.AssertNotCalled(t, "Notify")
}

func TestWeeklyLeadSummary_EmailFailureDoesNotStopRemaining(t *testing.T) {
	leads := new(mocks.LeadRepository)
	email := new(mocks.EmailService)
	chat := new(mocks.ChatNotifier)
	svc := report.NewService(leads, email, chat, []string{"admin1@x.com", "admin2@x.com"}, testLogger())

	leads.On("ListSince", mock.Anything, mock.Anything).Return([]domain.Lead{
		leadFrom("a@x.com", "website", nil, nil),
	}, nil).Once()
	email.On("SendDigestEmail", mock.Anything, "admin1@x.com", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bounce")).Once()
	email.On("SendDigestEmail", mock.Anything, "admin2@x.com", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	chat.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	err := svc.WeeklyLeadSummary(context.Background())

	assert.NoError(t, err)
	email.AssertExpectations(t)
}
