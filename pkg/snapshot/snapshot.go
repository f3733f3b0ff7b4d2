package snapshot

import (
	crand "crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"

	"github.com/mindthegap/mindthegap/pkg/donation"
	log "github.com/sirupsen/logrus"
)

// Snapshot is the full {income, donations} state: the unit of local
// persistence and link-sharing. Loading a snapshot always replaces the
// existing state, snapshots are never merged.
type Snapshot struct {
	AnnualIncome int                    `json:"annualIncome"`
	Donations    []donation.DonationDTO `json:"donations"`
}

// Encode serializes the snapshot to its transport form:
// base64 of the URL-encoded JSON document.
func Encode(s Snapshot) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("could not serialize snapshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(string(raw)))), nil
}

// Decode reverses Encode. Any malformed layer yields an error; callers fall
// back to previously stored state.
func Decode(value string) (Snapshot, error) {
	escaped, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not base64-decode snapshot: %w", err)
	}
	raw, err := url.QueryUnescape(string(escaped))
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not url-decode snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, fmt.Errorf("could not parse snapshot: %w", err)
	}
	if s.Donations == nil {
		s.Donations = []donation.DonationDTO{}
	}
	return s, nil
}

// NewDonationID generates a random token for a client-owned donation record.
// Falls back to a pseudo-random token when the secure generator is unavailable.
func NewDonationID() string {
	buf := make([]byte, 16)
	if _, err := crand.Read(buf); err != nil {
		log.Warnf("secure random generator unavailable, falling back: %v", err)
		return fmt.Sprintf("%016x%016x", rand.Uint64(), rand.Uint64())
	}
	return hex.EncodeToString(buf)
}
