package project

import "time"

// Project is a documentary project created from an imported scouting dossier.
type Project struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Region        string    `json:"region"`
	ShareToken    string    `json:"share_token"`
	FormData      Document  `json:"form_data"`
	ScriptContent *string   `json:"script_content,omitempty"`
	ReportContent *string   `json:"report_content,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
}

// DateLayout is the day-first display format used in API responses.
const DateLayout = "02/01/2006 15:04"

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
