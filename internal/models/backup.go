package models

// BackupConfig is the user-supplied remote backup target: a GitHub
// personal access token and a repository in owner/name form.
type BackupConfig struct {
	Token string `json:"token"`
	Repo  string `json:"repo"`
}

// DefaultBackupConfig ships with an empty credential so no network
// call can happen until the user configures one.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Token: "", Repo: "hungerscol/CRM"}
}

type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// SyncState is the process-wide backup status shown in the UI.
type SyncState struct {
	IsSyncing bool       `json:"isSyncing"`
	LastSync  string     `json:"lastSync"`
	Status    SyncStatus `json:"status"`
}

// SyncResult reports the outcome of a single push or pull.
type SyncResult struct {
	Status   SyncStatus `json:"status"`
	LastSync string     `json:"lastSync,omitempty"`
	Message  string     `json:"message,omitempty"`
}

// PendingPull is the confirmation descriptor a pull request returns.
// Applying a pull is destructive, so the fetched collection is parked
// here until the user confirms or cancels.
type PendingPull struct {
	ID        string `json:"id"`
	DealCount int    `json:"dealCount"`
}
