package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/mindthegap/mindthegap/pkg/household"
	log "github.com/sirupsen/logrus"
)

const sessionFileName = "session.json"

// sessionPointer links this client to its backend household record, with the
// same 30-day lifetime the browser cookie carries.
type sessionPointer struct {
	HouseholdID string    `json:"householdId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

const sessionTTL = 30 * 24 * time.Hour

// RemoteStore is the remote-backed persistence strategy: the backend is the
// system of record and every mutation replaces local state with the server's
// canonical response. Nothing is committed locally before confirmation.
type RemoteStore struct {
	client    *http.Client
	baseURL   string
	shareBase string
	dataDir   string
	incoming  string
	clock     utils.Clock
	messages  *MessageCenter

	mu     sync.Mutex
	status Status
	state  State
	// seq tags mutations so a response that raced a newer one is discarded
	// instead of clobbering fresher state.
	seq     uint64
	applied uint64
}

func NewRemoteStore(baseURL string, shareBase string, dataDir string, shareLink string, clock utils.Clock) *RemoteStore {
	return &RemoteStore{
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   baseURL,
		shareBase: shareBase,
		dataDir:   dataDir,
		incoming:  shareParamValue(shareLink),
		clock:     clock,
		messages:  NewMessageCenter(),
		status:    StatusLoading,
	}
}

func (s *RemoteStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *RemoteStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *RemoteStore) Messages() *MessageCenter {
	return s.messages
}

// Load resolves the active household: a share link wins over the stored
// session pointer, and with neither present a fresh household is created.
// Every outcome, including failure, leaves the store ready.
func (s *RemoteStore) Load(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.status = StatusReady
		s.mu.Unlock()
	}()

	if s.incoming != "" {
		payload, err := s.fetchHousehold(ctx, s.incoming)
		if err != nil {
			s.messages.Publish(MessageError, "Could not load that shared snapshot.")
			return err
		}
		s.adopt(payload)
		return nil
	}

	if pointer, ok := s.readSession(); ok {
		payload, err := s.fetchHousehold(ctx, pointer.HouseholdID)
		if err == nil {
			s.adopt(payload)
			return nil
		}
		log.Warnf("stored session %s no longer resolves: %v", pointer.HouseholdID, err)
	}

	payload, err := s.createHousehold(ctx)
	if err != nil {
		s.messages.Publish(MessageError, "Starting a fresh session failed. Try again shortly.")
		return err
	}
	s.adopt(payload)
	return nil
}

func (s *RemoteStore) SaveIncome(ctx context.Context, annualIncome int) error {
	id, seq, err := s.beginMutation()
	if err != nil {
		return err
	}

	body := map[string]any{"id": id, "annualIncome": annualIncome}
	var payload household.PayloadDTO
	if err := s.call(ctx, http.MethodPut, "/api/household", body, http.StatusOK, &payload); err != nil {
		s.messages.Publish(MessageError, "Updating your income fizzled.")
		return err
	}
	if s.apply(seq, payload) {
		s.messages.Publish(MessageSuccess, "Income saved.")
	}
	return nil
}

func (s *RemoteStore) AddDonation(ctx context.Context, fields donation.Fields) error {
	if err := fields.Validate(); err != nil {
		s.messages.Publish(MessageError, "Add a charity name and a positive amount.")
		return err
	}
	id, seq, err := s.beginMutation()
	if err != nil {
		return err
	}

	body := map[string]any{
		"householdId": id,
		"charityName": fields.CharityName,
		"amount":      fields.Amount,
		"frequency":   string(fields.Frequency),
	}
	var resp donationList
	if err := s.call(ctx, http.MethodPost, "/api/donations", body, http.StatusCreated, &resp); err != nil {
		s.messages.Publish(MessageError, "Could not store that donation.")
		return err
	}
	if s.applyDonations(seq, resp.Donations) {
		s.messages.Publish(MessageSuccess, "Donation added.")
	}
	return nil
}

func (s *RemoteStore) UpdateDonation(ctx context.Context, donationID string, fields donation.Fields) error {
	if err := fields.Validate(); err != nil {
		s.messages.Publish(MessageError, "Add a charity name and a positive amount.")
		return err
	}
	id, seq, err := s.beginMutation()
	if err != nil {
		return err
	}

	body := map[string]any{
		"id":          donationID,
		"householdId": id,
		"charityName": fields.CharityName,
		"amount":      fields.Amount,
		"frequency":   string(fields.Frequency),
	}
	var resp donationList
	if err := s.call(ctx, http.MethodPut, "/api/donations", body, http.StatusOK, &resp); err != nil {
		s.messages.Publish(MessageError, "Could not update that donation.")
		return err
	}
	if s.applyDonations(seq, resp.Donations) {
		s.messages.Publish(MessageSuccess, "Donation updated.")
	}
	return nil
}

func (s *RemoteStore) RemoveDonation(ctx context.Context, donationID string) error {
	id, seq, err := s.beginMutation()
	if err != nil {
		return err
	}

	body := map[string]any{"id": donationID, "householdId": id}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := s.call(ctx, http.MethodDelete, "/api/donations", body, http.StatusOK, &resp); err != nil {
		s.messages.Publish(MessageError, "Could not remove that donation.")
		return err
	}

	// The delete endpoint only acknowledges, so refetch the canonical record.
	payload, err := s.fetchHousehold(ctx, id)
	if err != nil {
		s.messages.Publish(MessageError, "Could not remove that donation.")
		return err
	}
	if s.apply(seq, payload) {
		s.messages.Publish(MessageInfo, "Donation removed.")
	}
	return nil
}

func (s *RemoteStore) ShareLink() (string, error) {
	s.mu.Lock()
	id := s.state.HouseholdID
	s.mu.Unlock()
	if id == "" {
		s.messages.Publish(MessageError, "Add your own numbers before sharing them.")
		return "", errors.New("no active household to share")
	}
	link, err := buildShareLink(s.shareBase, id)
	if err != nil {
		return "", err
	}
	s.messages.Publish(MessageSuccess, "Shareable link created.")
	return link, nil
}

func (s *RemoteStore) beginMutation() (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.HouseholdID == "" {
		return "", 0, errors.New("no active household")
	}
	s.seq++
	return s.state.HouseholdID, s.seq, nil
}

// apply replaces the full state with a canonical server payload. Returns
// false when a newer mutation already applied, in which case the response
// is stale and dropped.
func (s *RemoteStore) apply(seq uint64, payload household.PayloadDTO) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		log.Debugf("discarding stale response (seq %d < %d)", seq, s.applied)
		return false
	}
	s.applied = seq
	s.state = State{
		HouseholdID:  payload.Household.ID,
		AnnualIncome: payload.Household.AnnualIncome,
		Donations:    donation.FromDTOs(payload.Donations),
	}
	return true
}

func (s *RemoteStore) applyDonations(seq uint64, donations []donation.DonationDTO) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		log.Debugf("discarding stale response (seq %d < %d)", seq, s.applied)
		return false
	}
	s.applied = seq
	s.state.Donations = donation.FromDTOs(donations)
	return true
}

func (s *RemoteStore) adopt(payload household.PayloadDTO) {
	s.apply(0, payload)
	s.writeSession(payload.Household.ID)
}

func (s *RemoteStore) fetchHousehold(ctx context.Context, id string) (household.PayloadDTO, error) {
	var payload household.PayloadDTO
	err := s.call(ctx, http.MethodGet, "/api/household?id="+id, nil, http.StatusOK, &payload)
	return payload, err
}

func (s *RemoteStore) createHousehold(ctx context.Context) (household.PayloadDTO, error) {
	var payload household.PayloadDTO
	err := s.call(ctx, http.MethodPost, "/api/household", map[string]any{"annualIncome": 0}, http.StatusCreated, &payload)
	return payload, err
}

type donationList struct {
	Donations []donation.DonationDTO `json:"donations"`
}

func (s *RemoteStore) call(ctx context.Context, method string, path string, body any, wantStatus int, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not serialize request: %w", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Errorf("request %s %s failed: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		err := fmt.Errorf("unexpected status %d for %s %s: %s", resp.StatusCode, method, path, apiErr.Error)
		log.Error(err)
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}
	return nil
}

func (s *RemoteStore) sessionPath() string {
	return filepath.Join(s.dataDir, sessionFileName)
}

func (s *RemoteStore) readSession() (sessionPointer, bool) {
	raw, err := os.ReadFile(s.sessionPath())
	if err != nil {
		return sessionPointer{}, false
	}
	var pointer sessionPointer
	if err := json.Unmarshal(raw, &pointer); err != nil {
		log.Warnf("could not parse session file: %v", err)
		return sessionPointer{}, false
	}
	if pointer.HouseholdID == "" || s.clock.Now().After(pointer.ExpiresAt) {
		return sessionPointer{}, false
	}
	return pointer, true
}

// writeSession persists the session pointer; failure is logged only, the
// in-memory session keeps working without it.
func (s *RemoteStore) writeSession(householdID string) {
	pointer := sessionPointer{
		HouseholdID: householdID,
		ExpiresAt:   s.clock.Now().Add(sessionTTL),
	}
	raw, err := json.Marshal(pointer)
	if err != nil {
		log.Errorf("could not serialize session pointer: %v", err)
		return
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		log.Errorf("could not create data dir: %v", err)
		return
	}
	if err := os.WriteFile(s.sessionPath(), raw, 0o600); err != nil {
		log.Errorf("could not write session pointer: %v", err)
	}
}
