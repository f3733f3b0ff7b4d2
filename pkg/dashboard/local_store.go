package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/mindthegap/mindthegap/internal/event_bus"
	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/mindthegap/mindthegap/pkg/snapshot"
	log "github.com/sirupsen/logrus"
)

const snapshotFileName = "snapshot.json"

// LocalStore keeps the whole dashboard state in memory and mirrors it to a
// snapshot file on disk. Mutations commit synchronously; the write to disk
// happens as a StateChanged side effect and its failure never rolls back a
// change the user already saw.
type LocalStore struct {
	dataDir   string
	shareBase string
	incoming  string
	clock     utils.Clock
	bus       *event_bus.EventBus
	messages  *MessageCenter

	mu     sync.Mutex
	status Status
	state  State
}

func NewLocalStore(dataDir string, shareBase string, shareLink string, clock utils.Clock) *LocalStore {
	s := &LocalStore{
		dataDir:   dataDir,
		shareBase: shareBase,
		incoming:  shareParamValue(shareLink),
		clock:     clock,
		bus:       event_bus.NewEventBus(),
		messages:  NewMessageCenter(),
		status:    StatusLoading,
	}
	s.bus.Subscribe(event_bus.StateChanged, s.persist)
	return s
}

func (s *LocalStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *LocalStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *LocalStore) Messages() *MessageCenter {
	return s.messages
}

// Load restores state from an incoming share link when one is present,
// otherwise from the snapshot file. A malformed share link is logged and
// ignored so the stored snapshot still wins over an empty screen.
func (s *LocalStore) Load(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.status = StatusReady
		s.mu.Unlock()
	}()

	if s.incoming != "" {
		snap, err := snapshot.Decode(s.incoming)
		if err == nil {
			s.replace(ctx, snap)
			return nil
		}
		log.Warnf("ignoring malformed share link: %v", err)
		s.messages.Publish(MessageError, "Could not load that shared snapshot.")
	}

	snap, ok := s.readSnapshot()
	if ok {
		s.mu.Lock()
		s.state = stateFromSnapshot(snap)
		s.mu.Unlock()
	}
	return nil
}

func (s *LocalStore) SaveIncome(ctx context.Context, annualIncome int) error {
	if annualIncome < 0 {
		annualIncome = 0
	}
	s.mu.Lock()
	s.state.AnnualIncome = annualIncome
	s.mu.Unlock()

	s.stateChanged(ctx)
	s.messages.Publish(MessageSuccess, "Income saved.")
	return nil
}

func (s *LocalStore) AddDonation(ctx context.Context, fields donation.Fields) error {
	if err := fields.Validate(); err != nil {
		s.messages.Publish(MessageError, "Add a charity name and a positive amount.")
		return err
	}

	record := donation.Donation{
		ID:           snapshot.NewDonationID(),
		CharityName:  fields.CharityName,
		Amount:       fields.Amount,
		Frequency:    fields.Frequency,
		AnnualAmount: donation.Annualize(fields.Amount, fields.Frequency),
		CreatedAt:    s.clock.Now(),
	}
	s.mu.Lock()
	s.state.Donations = append(s.state.Donations, record)
	s.mu.Unlock()

	s.stateChanged(ctx)
	s.messages.Publish(MessageSuccess, "Donation added.")
	return nil
}

func (s *LocalStore) UpdateDonation(ctx context.Context, donationID string, fields donation.Fields) error {
	if err := fields.Validate(); err != nil {
		s.messages.Publish(MessageError, "Add a charity name and a positive amount.")
		return err
	}

	s.mu.Lock()
	found := false
	for i := range s.state.Donations {
		if s.state.Donations[i].ID == donationID {
			s.state.Donations[i].CharityName = fields.CharityName
			s.state.Donations[i].Amount = fields.Amount
			s.state.Donations[i].Frequency = fields.Frequency
			s.state.Donations[i].AnnualAmount = donation.Annualize(fields.Amount, fields.Frequency)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		s.messages.Publish(MessageError, "Could not update that donation.")
		return donation.ErrDonationNotFound
	}
	s.stateChanged(ctx)
	s.messages.Publish(MessageSuccess, "Donation updated.")
	return nil
}

func (s *LocalStore) RemoveDonation(ctx context.Context, donationID string) error {
	s.mu.Lock()
	found := false
	kept := s.state.Donations[:0]
	for _, d := range s.state.Donations {
		if d.ID == donationID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	s.state.Donations = kept
	s.mu.Unlock()

	if !found {
		s.messages.Publish(MessageError, "Could not remove that donation.")
		return donation.ErrDonationNotFound
	}
	s.stateChanged(ctx)
	s.messages.Publish(MessageInfo, "Donation removed.")
	return nil
}

// ShareLink encodes the current state itself, so the link stays valid even
// when the snapshot file on this machine is gone.
func (s *LocalStore) ShareLink() (string, error) {
	s.mu.Lock()
	snap := snapshotFromState(s.state)
	s.mu.Unlock()

	if snap.AnnualIncome == 0 && len(snap.Donations) == 0 {
		s.messages.Publish(MessageError, "Add your own numbers before sharing them.")
		return "", errors.New("nothing to share yet")
	}
	value, err := snapshot.Encode(snap)
	if err != nil {
		return "", err
	}
	link, err := buildShareLink(s.shareBase, value)
	if err != nil {
		return "", err
	}
	s.messages.Publish(MessageSuccess, "Shareable link created.")
	return link, nil
}

func (s *LocalStore) replace(ctx context.Context, snap snapshot.Snapshot) {
	s.mu.Lock()
	s.state = stateFromSnapshot(snap)
	s.mu.Unlock()
	s.stateChanged(ctx)
}

func (s *LocalStore) stateChanged(ctx context.Context) {
	s.mu.Lock()
	payload := event_bus.StateChangedPayload{
		AnnualIncome: s.state.AnnualIncome,
		Donations:    len(s.state.Donations),
	}
	s.mu.Unlock()
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.StateChanged, payload)); err != nil {
		log.Errorf("state change side effects failed: %v", err)
	}
}

// persist mirrors the committed state to disk. Errors are logged only, the
// in-memory state stays authoritative for the session.
func (s *LocalStore) persist(event_bus.Event) error {
	s.mu.Lock()
	snap := snapshotFromState(s.state)
	s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		log.Errorf("could not serialize snapshot: %v", err)
		return err
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		log.Errorf("could not create data dir: %v", err)
		return err
	}
	if err := os.WriteFile(s.snapshotPath(), raw, 0o600); err != nil {
		log.Errorf("could not write snapshot: %v", err)
		return err
	}
	return nil
}

func (s *LocalStore) snapshotPath() string {
	return filepath.Join(s.dataDir, snapshotFileName)
}

func (s *LocalStore) readSnapshot() (snapshot.Snapshot, bool) {
	raw, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		return snapshot.Snapshot{}, false
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Warnf("could not parse snapshot file: %v", err)
		return snapshot.Snapshot{}, false
	}
	return snap, true
}

func stateFromSnapshot(snap snapshot.Snapshot) State {
	return State{
		AnnualIncome: snap.AnnualIncome,
		Donations:    donation.FromDTOs(snap.Donations),
	}
}

func snapshotFromState(state State) snapshot.Snapshot {
	return snapshot.Snapshot{
		AnnualIncome: state.AnnualIncome,
		Donations:    donation.ToDTOs(state.Donations),
	}
}
