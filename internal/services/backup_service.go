package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"hungerscrm/internal/models"
	"hungerscrm/internal/repositories"
	"hungerscrm/internal/utils"
)

var (
	// ErrNoToken and ErrBadRepo are configuration errors: they fire
	// before any network call and route the user to configuration.
	ErrNoToken = errors.New("falta el token de GitHub")
	ErrBadRepo = errors.New("formato de repositorio inválido, usa 'usuario/repositorio'")

	ErrSyncInProgress = errors.New("sync already in progress")
	ErrNoBackup       = errors.New("no se encontró el archivo de respaldo en el repositorio")
	ErrInvalidBackup  = errors.New("el respaldo remoto no es una colección válida")
	ErrNoPendingPull  = errors.New("no pending pull with that id")
)

// BackupService pushes and pulls the deal collection against a single
// deals.json document in a GitHub repository. Writes are full
// replacements guarded by the contents API sha token; a second push or
// pull while one is in flight is rejected (single-flight).
type BackupService struct {
	Deals    *DealService
	Settings *repositories.SettingsRepository
	Telegram *TelegramService // optional

	baseURL    string
	backupPath string

	mu        sync.Mutex
	isSyncing bool
	status    models.SyncStatus
	pending   map[string][]models.Deal
}

func NewBackupService(deals *DealService, settings *repositories.SettingsRepository, telegram *TelegramService, baseURL, backupPath string) *BackupService {
	if backupPath == "" {
		backupPath = "deals.json"
	}
	return &BackupService{
		Deals:      deals,
		Settings:   settings,
		Telegram:   telegram,
		baseURL:    baseURL,
		backupPath: backupPath,
		status:     models.SyncIdle,
		pending:    map[string][]models.Deal{},
	}
}

// CleanRepo normalizes a repository identifier: full GitHub URLs and a
// trailing .git are tolerated, the result must be owner/name.
func CleanRepo(repo string) string {
	repo = strings.TrimSpace(repo)
	repo = strings.TrimPrefix(repo, "https://github.com/")
	repo = strings.TrimSuffix(repo, ".git")
	return repo
}

// validateConfig loads the backup configuration and rejects a missing
// token or malformed repo before anything touches the network.
func (s *BackupService) validateConfig() (models.BackupConfig, string, error) {
	cfg, err := s.Settings.LoadBackupConfig()
	if err != nil {
		return models.BackupConfig{}, "", err
	}
	if cfg.Token == "" {
		return cfg, "", ErrNoToken
	}
	repo := CleanRepo(cfg.Repo)
	if !strings.Contains(repo, "/") {
		return cfg, "", ErrBadRepo
	}
	return cfg, repo, nil
}

func (s *BackupService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isSyncing {
		return ErrSyncInProgress
	}
	s.isSyncing = true
	return nil
}

func (s *BackupService) finish(status models.SyncStatus) {
	s.mu.Lock()
	s.isSyncing = false
	s.status = status
	s.mu.Unlock()
}

// State reports the current sync status for the UI.
func (s *BackupService) State() models.SyncState {
	s.mu.Lock()
	syncing, status := s.isSyncing, s.status
	s.mu.Unlock()
	last, err := s.Settings.LastSync()
	if err != nil {
		log.Printf("[backup][state] read last sync: %v", err)
	}
	return models.SyncState{IsSyncing: syncing, LastSync: last, Status: status}
}

// Push serializes the whole local collection and overwrites the
// remote document, supplying the previously read sha so a concurrent
// remote write surfaces as a conflict instead of being clobbered.
func (s *BackupService) Push() (*models.SyncResult, error) {
	cfg, repo, err := s.validateConfig()
	if err != nil {
		return nil, err
	}
	if err := s.begin(); err != nil {
		return nil, err
	}

	client := utils.NewGitHubClient(cfg.Token, s.baseURL)

	// Read the current version token; a missing file just means this
	// is the first push.
	var sha string
	if existing, err := client.GetFile(repo, s.backupPath); err == nil {
		sha = existing.SHA
	} else if !errors.Is(err, utils.ErrFileNotFound) {
		s.finish(models.SyncError)
		s.notify(fmt.Sprintf("❌ Push fallido: %v", err))
		return nil, err
	}

	deals, err := s.Deals.List()
	if err != nil {
		s.finish(models.SyncError)
		return nil, err
	}
	payload, err := json.MarshalIndent(deals, "", "  ")
	if err != nil {
		s.finish(models.SyncError)
		return nil, fmt.Errorf("encode deals: %w", err)
	}
	content := base64.StdEncoding.EncodeToString(payload)
	message := "🔄 Hungers Sync: " + time.Now().UTC().Format(time.RFC3339)

	if err := client.PutFile(repo, s.backupPath, message, content, sha); err != nil {
		s.finish(models.SyncError)
		s.notify(fmt.Sprintf("❌ Push fallido: %v", err))
		return nil, err
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	if err := s.Settings.SaveLastSync(now); err != nil {
		log.Printf("[backup][push] persist last sync: %v", err)
	}
	s.finish(models.SyncSuccess)
	s.notify(fmt.Sprintf("✅ Respaldo subido a %s (%d tratos)", repo, len(deals)))
	log.Printf("[backup][push] ok repo=%s deals=%d", repo, len(deals))
	return &models.SyncResult{Status: models.SyncSuccess, LastSync: now}, nil
}

// RequestPull fetches and decodes the remote collection but does not
// apply it: pulling is destructive, so the caller gets a pending
// confirmation descriptor to resolve with ConfirmPull or CancelPull.
func (s *BackupService) RequestPull() (*models.PendingPull, error) {
	cfg, repo, err := s.validateConfig()
	if err != nil {
		return nil, err
	}
	if err := s.begin(); err != nil {
		return nil, err
	}

	client := utils.NewGitHubClient(cfg.Token, s.baseURL)
	file, err := client.GetFile(repo, s.backupPath)
	if err != nil {
		s.finish(models.SyncError)
		if errors.Is(err, utils.ErrFileNotFound) {
			return nil, ErrNoBackup
		}
		return nil, err
	}

	// The contents API returns base64 with embedded newlines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		s.finish(models.SyncError)
		return nil, ErrInvalidBackup
	}

	// Only a JSON array is a valid backup. Unmarshal alone is not
	// enough: `null` decodes into a nil slice without error.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		s.finish(models.SyncError)
		return nil, ErrInvalidBackup
	}
	var deals []models.Deal
	if err := json.Unmarshal(raw, &deals); err != nil {
		s.finish(models.SyncError)
		return nil, ErrInvalidBackup
	}

	id, err := utils.NewOpaqueID(16)
	if err != nil {
		s.finish(models.SyncError)
		return nil, err
	}

	s.mu.Lock()
	s.pending[id] = deals
	s.mu.Unlock()
	log.Printf("[backup][pull] fetched repo=%s deals=%d pending=%s", repo, len(deals), id)
	return &models.PendingPull{ID: id, DealCount: len(deals)}, nil
}

// ConfirmPull replaces the local collection with the parked remote
// one. The whole new state is adopted atomically or not at all.
func (s *BackupService) ConfirmPull(id string) (*models.SyncResult, error) {
	s.mu.Lock()
	deals, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoPendingPull
	}

	if err := s.Deals.Replace(deals); err != nil {
		s.finish(models.SyncError)
		return nil, err
	}
	now := time.Now().Format("2006-01-02 15:04:05")
	if err := s.Settings.SaveLastSync(now); err != nil {
		log.Printf("[backup][pull] persist last sync: %v", err)
	}
	s.finish(models.SyncSuccess)
	s.notify(fmt.Sprintf("✅ Datos restaurados desde GitHub (%d tratos)", len(deals)))
	return &models.SyncResult{Status: models.SyncSuccess, LastSync: now}, nil
}

// CancelPull discards the parked collection. Local state is untouched
// and the status indicator goes back to non-syncing.
func (s *BackupService) CancelPull(id string) error {
	s.mu.Lock()
	_, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
		if len(s.pending) == 0 {
			s.isSyncing = false
		}
	}
	s.mu.Unlock()
	if !ok {
		return ErrNoPendingPull
	}
	return nil
}

// Config and UpdateConfig expose the persisted backup target. The
// repo string is stored as entered; normalization happens on use.
func (s *BackupService) Config() (models.BackupConfig, error) {
	return s.Settings.LoadBackupConfig()
}

func (s *BackupService) UpdateConfig(cfg models.BackupConfig) error {
	return s.Settings.SaveBackupConfig(cfg)
}

func (s *BackupService) notify(text string) {
	if s.Telegram == nil {
		return
	}
	if err := s.Telegram.SendMessage(text); err != nil {
		log.Printf("[backup][notify] telegram failed: %v", err)
	}
}
