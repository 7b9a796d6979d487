package repositories

import (
	"encoding/json"
	"fmt"

	"hungerscrm/internal/models"
	"hungerscrm/internal/store"
)

// SettingsRepository holds the backup configuration, the last-sync
// stamp and the admin credential hash, each under its own key.
type SettingsRepository struct {
	store       *store.Store
	defaultRepo string
}

func NewSettingsRepository(s *store.Store, defaultRepo string) *SettingsRepository {
	return &SettingsRepository{store: s, defaultRepo: defaultRepo}
}

// LoadBackupConfig returns the stored backup configuration, seeding
// the default (empty token) when none has been saved yet.
func (r *SettingsRepository) LoadBackupConfig() (models.BackupConfig, error) {
	raw, ok, err := r.store.Get(store.KeyGithubConfig)
	if err != nil {
		return models.BackupConfig{}, err
	}
	if !ok || raw == "" {
		cfg := models.DefaultBackupConfig()
		if r.defaultRepo != "" {
			cfg.Repo = r.defaultRepo
		}
		return cfg, nil
	}
	var cfg models.BackupConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.BackupConfig{}, fmt.Errorf("decode backup config: %w", err)
	}
	return cfg, nil
}

func (r *SettingsRepository) SaveBackupConfig(cfg models.BackupConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode backup config: %w", err)
	}
	return r.store.Put(store.KeyGithubConfig, string(raw))
}

// LastSync is a plain string under its own key; empty means no sync
// has ever succeeded.
func (r *SettingsRepository) LastSync() (string, error) {
	raw, _, err := r.store.Get(store.KeyLastSync)
	return raw, err
}

func (r *SettingsRepository) SaveLastSync(ts string) error {
	return r.store.Put(store.KeyLastSync, ts)
}

// PasswordHash returns the stored admin bcrypt hash; empty when the
// account has not been initialized yet.
func (r *SettingsRepository) PasswordHash() (string, error) {
	raw, _, err := r.store.Get(store.KeyAuth)
	return raw, err
}

func (r *SettingsRepository) SavePasswordHash(hash string) error {
	return r.store.Put(store.KeyAuth, hash)
}
