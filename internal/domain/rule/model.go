package rule

import "time"

// GlobalRule is a memorized writing rule shared by every project.
type GlobalRule struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
