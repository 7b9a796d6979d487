package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungerscrm/internal/models"
	"hungerscrm/internal/repositories"
)

// fakeGitHub emulates the slice of the contents API the backup layer
// uses: GET returns the stored document plus its sha, PUT replaces it
// when the supplied sha matches and answers 409 when it does not.
type fakeGitHub struct {
	mu          sync.Mutex
	content     string // base64
	sha         string
	staleGetSHA string // when set, GET reports this instead of the real sha
	requests    int
	lastPut     struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	lastAuth string
}

func (f *fakeGitHub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		f.lastAuth = r.Header.Get("Authorization")

		switch r.Method {
		case http.MethodGet:
			if f.sha == "" {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
				return
			}
			sha := f.sha
			if f.staleGetSHA != "" {
				sha = f.staleGetSHA
			}
			json.NewEncoder(w).Encode(map[string]string{
				"content": f.content,
				"sha":     sha,
			})
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&f.lastPut); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if f.lastPut.SHA != f.sha {
				w.WriteHeader(http.StatusConflict)
				fmt.Fprint(w, `{"message":"deals.json does not match"}`)
				return
			}
			f.content = f.lastPut.Content
			f.sha = fmt.Sprintf("sha-%d", f.requests)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (f *fakeGitHub) seed(t *testing.T, deals []models.Deal) {
	t.Helper()
	raw, err := json.Marshal(deals)
	require.NoError(t, err)
	f.mu.Lock()
	f.content = base64.StdEncoding.EncodeToString(raw)
	f.sha = "sha-seed"
	f.mu.Unlock()
}

type backupFixture struct {
	github   *fakeGitHub
	deals    *DealService
	settings *repositories.SettingsRepository
	backup   *BackupService
}

func newBackupFixture(t *testing.T, cfg models.BackupConfig) *backupFixture {
	t.Helper()
	st := newTestStore(t)
	gh := &fakeGitHub{}
	srv := httptest.NewServer(gh.handler())
	t.Cleanup(srv.Close)

	settings := repositories.NewSettingsRepository(st, "hungerscol/CRM")
	require.NoError(t, settings.SaveBackupConfig(cfg))

	deals := NewDealService(repositories.NewDealRepository(st), nil, nil)
	backup := NewBackupService(deals, settings, nil, srv.URL, "")
	return &backupFixture{github: gh, deals: deals, settings: settings, backup: backup}
}

func TestCleanRepo(t *testing.T) {
	assert.Equal(t, "hungerscol/CRM", CleanRepo("https://github.com/hungerscol/CRM.git"))
	assert.Equal(t, "hungerscol/CRM", CleanRepo("  hungerscol/CRM "))
	assert.Equal(t, "hungerscol/CRM", CleanRepo("hungerscol/CRM"))
}

func TestPushWritesCollection(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})

	res, err := fx.backup.Push()
	require.NoError(t, err)
	assert.Equal(t, models.SyncSuccess, res.Status)
	assert.NotEmpty(t, res.LastSync)

	assert.Equal(t, "token ghp_test", fx.github.lastAuth)
	assert.Contains(t, fx.github.lastPut.Message, "🔄 Hungers Sync: ")
	assert.Empty(t, fx.github.lastPut.SHA, "first push carries no version token")

	raw, err := base64.StdEncoding.DecodeString(fx.github.lastPut.Content)
	require.NoError(t, err)
	var remote []models.Deal
	require.NoError(t, json.Unmarshal(raw, &remote))
	assert.Len(t, remote, 2, "seed collection pushed in full")

	state := fx.backup.State()
	assert.False(t, state.IsSyncing)
	assert.Equal(t, models.SyncSuccess, state.Status)
	assert.Equal(t, res.LastSync, state.LastSync)
}

func TestPushSuppliesShaOnSecondWrite(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})

	_, err := fx.backup.Push()
	require.NoError(t, err)
	firstSHA := fx.github.sha

	_, err = fx.backup.Push()
	require.NoError(t, err)
	assert.Equal(t, firstSHA, fx.github.lastPut.SHA)
}

func TestPushConflictSurfacesRemoteMessage(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
	fx.github.seed(t, nil)

	// GET hands out a version token the remote no longer has, so the
	// PUT is a stale compare-and-swap.
	fx.github.mu.Lock()
	fx.github.staleGetSHA = "sha-stale"
	fx.github.mu.Unlock()

	_, err := fx.backup.Push()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "does not match")

	state := fx.backup.State()
	assert.False(t, state.IsSyncing)
	assert.Equal(t, models.SyncError, state.Status)
}

func TestSyncRejectedWhenUnconfigured(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "", Repo: "hungerscol/CRM"})

	_, err := fx.backup.Push()
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = fx.backup.RequestPull()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Zero(t, fx.github.requests, "configuration errors must not reach the network")

	require.NoError(t, fx.settings.SaveBackupConfig(models.BackupConfig{Token: "t", Repo: "sin-barra"}))
	_, err = fx.backup.Push()
	assert.ErrorIs(t, err, ErrBadRepo)
	_, err = fx.backup.RequestPull()
	assert.ErrorIs(t, err, ErrBadRepo)
	assert.Zero(t, fx.github.requests)

	state := fx.backup.State()
	assert.False(t, state.IsSyncing, "rejected sync leaves the flag clear")
}

func TestPullRoundTrip(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})

	// Mutate local state, push it, wipe local, pull it back.
	deal := models.Deal{ID: "d-utf8", Title: "Café añejo", Organization: "Señoría S.A.", Value: 7000}
	require.NoError(t, fx.deals.Create(&deal))
	_, err := fx.backup.Push()
	require.NoError(t, err)

	require.NoError(t, fx.deals.Replace([]models.Deal{}))

	pending, err := fx.backup.RequestPull()
	require.NoError(t, err)
	assert.Equal(t, 3, pending.DealCount)
	assert.True(t, fx.backup.State().IsSyncing, "pull stays open until confirmed or cancelled")

	res, err := fx.backup.ConfirmPull(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncSuccess, res.Status)

	deals, err := fx.deals.List()
	require.NoError(t, err)
	require.Len(t, deals, 3)
	var restored *models.Deal
	for i := range deals {
		if deals[i].ID == "d-utf8" {
			restored = &deals[i]
		}
	}
	require.NotNil(t, restored)
	assert.Equal(t, "Café añejo", restored.Title)
	assert.Equal(t, "Señoría S.A.", restored.Organization)
	assert.False(t, fx.backup.State().IsSyncing)
}

func TestPullDecodesWrappedBase64(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
	fx.github.seed(t, models.SeedDeals())

	// The contents API wraps base64 at 60 columns.
	fx.github.mu.Lock()
	wrapped := ""
	for i, c := range fx.github.content {
		if i > 0 && i%60 == 0 {
			wrapped += "\n"
		}
		wrapped += string(c)
	}
	fx.github.content = wrapped
	fx.github.mu.Unlock()

	pending, err := fx.backup.RequestPull()
	require.NoError(t, err)
	assert.Equal(t, 2, pending.DealCount)
	require.NoError(t, fx.backup.CancelPull(pending.ID))
}

func TestPullMissingBackup(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})

	_, err := fx.backup.RequestPull()
	assert.ErrorIs(t, err, ErrNoBackup)
	assert.False(t, fx.backup.State().IsSyncing)
}

func TestPullRejectsNonArrayPayload(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
	fx.github.mu.Lock()
	fx.github.content = base64.StdEncoding.EncodeToString([]byte(`{"not":"an array"}`))
	fx.github.sha = "sha-bad"
	fx.github.mu.Unlock()

	before, err := fx.deals.List()
	require.NoError(t, err)
	require.NoError(t, fx.deals.Replace(before)) // pin seed timestamps

	_, err = fx.backup.RequestPull()
	assert.ErrorIs(t, err, ErrInvalidBackup)

	after, err := fx.deals.List()
	require.NoError(t, err)
	assert.Equal(t, before, after, "local collection untouched on decode failure")
}

// A remote `null` decodes into a nil slice without an unmarshal
// error; it must still be rejected so a confirm can never wipe the
// local collection.
func TestPullRejectsNullPayload(t *testing.T) {
	for _, payload := range []string{"null", "  null\n", `"texto"`, "true", "42"} {
		fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
		fx.github.mu.Lock()
		fx.github.content = base64.StdEncoding.EncodeToString([]byte(payload))
		fx.github.sha = "sha-bad"
		fx.github.mu.Unlock()

		before, err := fx.deals.List()
		require.NoError(t, err)
		require.NoError(t, fx.deals.Replace(before)) // pin seed timestamps

		_, err = fx.backup.RequestPull()
		assert.ErrorIs(t, err, ErrInvalidBackup, "payload %q", payload)
		assert.False(t, fx.backup.State().IsSyncing, "payload %q", payload)

		after, err := fx.deals.List()
		require.NoError(t, err)
		assert.Equal(t, before, after, "payload %q", payload)
	}
}

func TestCancelPullLeavesLocalUntouched(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
	fx.github.seed(t, []models.Deal{{ID: "remote-1", Title: "Remoto"}})

	before, err := fx.deals.List()
	require.NoError(t, err)
	require.NoError(t, fx.deals.Replace(before)) // pin seed timestamps

	pending, err := fx.backup.RequestPull()
	require.NoError(t, err)
	require.NoError(t, fx.backup.CancelPull(pending.ID))

	after, err := fx.deals.List()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.False(t, fx.backup.State().IsSyncing)

	assert.ErrorIs(t, fx.backup.CancelPull(pending.ID), ErrNoPendingPull)
	assert.ErrorIs(t, fx.backup.CancelPull("nunca-existió"), ErrNoPendingPull)
}

func TestConfirmPullUnknownID(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
	_, err := fx.backup.ConfirmPull("desconocido")
	assert.ErrorIs(t, err, ErrNoPendingPull)
}

func TestSingleFlight(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "ghp_test", Repo: "hungerscol/CRM"})
	fx.github.seed(t, models.SeedDeals())

	pending, err := fx.backup.RequestPull()
	require.NoError(t, err)

	_, err = fx.backup.Push()
	assert.ErrorIs(t, err, ErrSyncInProgress)
	_, err = fx.backup.RequestPull()
	assert.ErrorIs(t, err, ErrSyncInProgress)

	_, err = fx.backup.ConfirmPull(pending.ID)
	require.NoError(t, err)

	_, err = fx.backup.Push()
	assert.NoError(t, err, "flight reopens once the pull resolves")
}

func TestConfigRoundTrip(t *testing.T) {
	fx := newBackupFixture(t, models.BackupConfig{Token: "a", Repo: "x/y"})

	require.NoError(t, fx.backup.UpdateConfig(models.BackupConfig{Token: "b", Repo: "https://github.com/otro/repo.git"}))
	cfg, err := fx.backup.Config()
	require.NoError(t, err)
	assert.Equal(t, "b", cfg.Token)
	assert.Equal(t, "https://github.com/otro/repo.git", cfg.Repo, "stored as entered, normalized on use")
}
