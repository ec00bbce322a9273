package version

import "time"

// Status is the review state of a script version.
type Status string

const (
	StatusUnseen     Status = "Non Vu"
	StatusInProgress Status = "En cours"
	StatusValidated  Status = "Validé"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUnseen, StatusInProgress, StatusValidated:
		return true
	}
	return false
}

// ScriptVersion is one numbered draft of a project's script.
type ScriptVersion struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Number    int       `json:"version_number"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// VersionRef is a version without its content, used for history listings.
type VersionRef struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Number    int       `json:"version_number"`
	Status    Status    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
