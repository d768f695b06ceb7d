package profile

import "time"

type Profile struct {
	ID                 string    `db:"id" json:"id"`
	UserID             string    `db:"user_id" json:"-"`
	FullName           string    `db:"full_name" json:"full_name"`
	Phone              string    `db:"phone" json:"phone,omitempty"`
	Role               string    `db:"role" json:"role"`
	CertificationLevel string    `db:"certification_level" json:"certification_level,omitempty"`
	Skills             []string  `db:"skills" json:"skills"`
	Location           string    `db:"location" json:"location,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
