package rating

import "time"

type Rating struct {
	ID            string    `db:"id" json:"id"`
	JobID         string    `db:"job_id" json:"job_id"`
	InstallerID   string    `db:"installer_id" json:"-"`
	CustomerEmail string    `db:"customer_email" json:"customer_email"`
	Rating        int       `db:"rating" json:"rating"`
	ReviewText    string    `db:"review_text" json:"review_text,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Joined from the jobs table for the dashboard listing.
	CustomerName string `db:"customer_name" json:"customer_name,omitempty"`
	SystemType   string `db:"system_type" json:"system_type,omitempty"`
}
