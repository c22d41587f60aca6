package fanout

import "jobscaffold-backend/internal/domain"

// preferenceKeys maps a notification category to the legacy preference key
// users toggle in the app. Categories without an entry cannot be opted out
// of.
var preferenceKeys = map[domain.Category]string{
	domain.CategoryProjectUpdate: "notif_projectUpdates",
	domain.CategoryInvoice:       "notif_invoices",
	domain.CategoryMessage:       "notif_messages",
}

// Suppressed reports whether the user has opted out of the category. Only
// an explicit false stored under the mapped key suppresses; a missing key
// or a true value means the notification goes out.
func Suppressed(prefs domain.Preferences, category domain.Category) bool {
	key, ok := preferenceKeys[category]
	if !ok {
		return false
	}
	enabled, ok := prefs[key]
	return ok && !enabled
}
