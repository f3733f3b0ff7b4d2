package household

import (
	"net/http"
	"time"
)

// SessionCookieName holds the session pointer linking a browser to its household record.
const SessionCookieName = "mindthegap_household"

const sessionCookieTTL = 30 * 24 * time.Hour

// SetSessionCookie points the browser session at the given household.
func SetSessionCookie(w http.ResponseWriter, householdID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    householdID,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID reads the session pointer from the request, empty when absent.
func SessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
