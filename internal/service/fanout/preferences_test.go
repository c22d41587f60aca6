package fanout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/service/fanout"
)

func TestSuppressed(t *testing.T) {
	cases := []struct {
		name     string
		prefs    domain.Preferences
		category domain.Category
		want     bool
	}{
		{
			name:     "explicit false suppresses",
			prefs:    domain.Preferences{"notif_projectUpdates": false},
			category: domain.CategoryProjectUpdate,
			want:     true,
		},
		{
			name:     "explicit true allows",
			prefs:    domain.Preferences{"notif_invoices": true},
			category: domain.CategoryInvoice,
			want:     false,
		},
		{
			name:     "missing key allows",
			prefs:    domain.Preferences{},
			category: domain.CategoryMessage,
			want:     false,
		},
		{
			name:     "nil preferences allow",
			prefs:    nil,
			category: domain.CategoryMessage,
			want:     false,
		},
		{
			name:     "unmapped category cannot be suppressed",
			prefs:    domain.Preferences{"notif_projectUpdates": false},
			category: domain.CategoryContractCompleted,
			want:     false,
		},
		{
			name:     "false under a different key does not leak across categories",
			prefs:    domain.Preferences{"notif_messages": false},
			category: domain.CategoryInvoice,
			want:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fanout.Suppressed(tc.prefs, tc.category))
		})
	}
}
