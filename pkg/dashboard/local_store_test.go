package dashboard

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/mindthegap/mindthegap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
)

func newTestLocalStore(t *testing.T, shareLink string) *LocalStore {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := NewLocalStore(t.TempDir(), "http://localhost:3000", shareLink, clock)
	t.Cleanup(func() { store.Messages().Close() })
	return store
}

func TestLocalStore_LoadWithoutSnapshotStartsEmpty(t *testing.T) {
	store := newTestLocalStore(t, "")

	err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, StatusReady, store.Status())
	assert.Equal(t, 0, store.State().AnnualIncome)
	assert.Empty(t, store.State().Donations)
}

func TestLocalStore_MutationsSurviveReload(t *testing.T) {
	dir := t.TempDir()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := NewLocalStore(dir, "http://localhost:3000", "", clock)
	defer store.Messages().Close()

	assert.NoError(t, store.Load(context.Background()))
	assert.NoError(t, store.SaveIncome(context.Background(), 50000))
	assert.NoError(t, store.AddDonation(context.Background(), donation.Fields{
		CharityName: "Sea Shepherd",
		Amount:      100,
		Frequency:   donation.FrequencyMonthly,
	}))

	assert.FileExists(t, filepath.Join(dir, snapshotFileName))

	reloaded := NewLocalStore(dir, "http://localhost:3000", "", clock)
	defer reloaded.Messages().Close()
	assert.NoError(t, reloaded.Load(context.Background()))

	state := reloaded.State()
	assert.Equal(t, 50000, state.AnnualIncome)
	if assert.Len(t, state.Donations, 1) {
		assert.Equal(t, "Sea Shepherd", state.Donations[0].CharityName)
		assert.Equal(t, 1200, state.Donations[0].AnnualAmount)
	}
}

func TestLocalStore_AddDonationRejectsInvalidFields(t *testing.T) {
	store := newTestLocalStore(t, "")
	assert.NoError(t, store.Load(context.Background()))

	err := store.AddDonation(context.Background(), donation.Fields{
		CharityName: "",
		Amount:      100,
		Frequency:   donation.FrequencyMonthly,
	})

	assert.Error(t, err)
	assert.Empty(t, store.State().Donations)
	if msg := store.Messages().Current(); assert.NotNil(t, msg) {
		assert.Equal(t, MessageError, msg.Type)
	}
}

func TestLocalStore_UpdateDonationRecomputesAnnualAmount(t *testing.T) {
	store := newTestLocalStore(t, "")
	assert.NoError(t, store.Load(context.Background()))
	assert.NoError(t, store.AddDonation(context.Background(), donation.Fields{
		CharityName: "Giro 555",
		Amount:      250,
		Frequency:   donation.FrequencyQuarterly,
	}))
	id := store.State().Donations[0].ID

	err := store.UpdateDonation(context.Background(), id, donation.Fields{
		CharityName: "Giro 555",
		Amount:      300,
		Frequency:   donation.FrequencyYearly,
	})

	assert.NoError(t, err)
	assert.Equal(t, 300, store.State().Donations[0].AnnualAmount)
}

func TestLocalStore_UpdateUnknownDonation(t *testing.T) {
	store := newTestLocalStore(t, "")
	assert.NoError(t, store.Load(context.Background()))

	err := store.UpdateDonation(context.Background(), "missing", donation.Fields{
		CharityName: "Giro 555",
		Amount:      10,
		Frequency:   donation.FrequencyMonthly,
	})

	assert.ErrorIs(t, err, donation.ErrDonationNotFound)
}

func TestLocalStore_RemoveDonation(t *testing.T) {
	store := newTestLocalStore(t, "")
	assert.NoError(t, store.Load(context.Background()))
	assert.NoError(t, store.AddDonation(context.Background(), donation.Fields{
		CharityName: "Sea Shepherd",
		Amount:      40,
		Frequency:   donation.FrequencyMonthly,
	}))
	id := store.State().Donations[0].ID

	assert.NoError(t, store.RemoveDonation(context.Background(), id))
	assert.Empty(t, store.State().Donations)

	assert.ErrorIs(t, store.RemoveDonation(context.Background(), id), donation.ErrDonationNotFound)
}

func TestLocalStore_ShareLinkRoundTrip(t *testing.T) {
	store := newTestLocalStore(t, "")
	assert.NoError(t, store.Load(context.Background()))
	assert.NoError(t, store.SaveIncome(context.Background(), 42000))
	assert.NoError(t, store.AddDonation(context.Background(), donation.Fields{
		CharityName: "Sea Shepherd",
		Amount:      100,
		Frequency:   donation.FrequencyMonthly,
	}))

	link, err := store.ShareLink()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "http://localhost:3000?"))

	u, err := url.Parse(link)
	assert.NoError(t, err)
	snap, err := snapshot.Decode(u.Query().Get(ShareParam))
	assert.NoError(t, err)
	assert.Equal(t, 42000, snap.AnnualIncome)
	assert.Len(t, snap.Donations, 1)

	// A second store opened with that link adopts the shared state.
	adopted := newTestLocalStore(t, link)
	assert.NoError(t, adopted.Load(context.Background()))
	assert.Equal(t, 42000, adopted.State().AnnualIncome)
	assert.Len(t, adopted.State().Donations, 1)
}

func TestLocalStore_ShareLinkWithEmptyState(t *testing.T) {
	store := newTestLocalStore(t, "")
	assert.NoError(t, store.Load(context.Background()))

	_, err := store.ShareLink()

	assert.Error(t, err)
}

func TestLocalStore_MalformedShareLinkFallsBackToSnapshot(t *testing.T) {
	dir := t.TempDir()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	seeded := NewLocalStore(dir, "http://localhost:3000", "", clock)
	defer seeded.Messages().Close()
	assert.NoError(t, seeded.Load(context.Background()))
	assert.NoError(t, seeded.SaveIncome(context.Background(), 12345))

	// Valid base64, but the payload inside is not a snapshot document.
	store := NewLocalStore(dir, "http://localhost:3000", "http://localhost:3000?d=bm90LWEtc25hcHNob3Q=", clock)
	defer store.Messages().Close()
	assert.NoError(t, store.Load(context.Background()))

	assert.Equal(t, StatusReady, store.Status())
	assert.Equal(t, 12345, store.State().AnnualIncome)
}
