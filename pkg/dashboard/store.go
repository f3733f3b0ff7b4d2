package dashboard

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mindthegap/mindthegap/internal/config"
	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
)

// ShareParam is the query parameter of a shareable link. It carries the
// household identifier in remote mode and an encoded snapshot in local mode.
const ShareParam = "d"

// Status is the top-level lifecycle of a store: loading until the initial
// load resolves, ready afterwards, success or not.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
)

// State is the dashboard state a store currently holds.
type State struct {
	// HouseholdID is empty in local mode, where no backend record exists.
	HouseholdID  string
	AnnualIncome int
	Donations    []donation.Donation
}

// Store keeps the dashboard state consistent with one system of record:
// either a backend household record or a local snapshot file. Mutations
// either fully apply or leave the state at its last-known-good value.
type Store interface {
	// Load resolves the initial state. It always transitions the store to
	// ready, falling back to defaults plus an error message on failure.
	Load(ctx context.Context) error
	Status() Status
	State() State
	SaveIncome(ctx context.Context, annualIncome int) error
	AddDonation(ctx context.Context, fields donation.Fields) error
	UpdateDonation(ctx context.Context, donationID string, fields donation.Fields) error
	RemoveDonation(ctx context.Context, donationID string) error
	// ShareLink builds a link that reproduces the current state when opened.
	ShareLink() (string, error)
	Messages() *MessageCenter
}

// NewStore selects the persistence strategy for the given configuration.
// The shareLink, when not empty, is a previously shared link to adopt on Load.
func NewStore(cfg config.Client, shareBase string, shareLink string, clock utils.Clock) (Store, error) {
	switch cfg.Mode {
	case "remote":
		return NewRemoteStore(cfg.Server, shareBase, cfg.DataDir, shareLink, clock), nil
	case "local":
		return NewLocalStore(cfg.DataDir, shareBase, shareLink, clock), nil
	default:
		return nil, fmt.Errorf("unsupported client mode: %q", cfg.Mode)
	}
}

// shareParamValue extracts the share parameter from a link. A value that does
// not parse as a URL or has no parameter is returned as-is, so a bare
// identifier or encoded snapshot also works.
func shareParamValue(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if v := u.Query().Get(ShareParam); v != "" {
		return v
	}
	if u.Scheme == "" && u.Host == "" && u.RawQuery == "" {
		return link
	}
	return ""
}

// buildShareLink appends the share parameter to the configured public base URL.
func buildShareLink(shareBase string, value string) (string, error) {
	u, err := url.Parse(shareBase)
	if err != nil {
		return "", fmt.Errorf("invalid share base URL: %w", err)
	}
	q := u.Query()
	q.Set(ShareParam, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
