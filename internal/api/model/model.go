package model

import "time"

type JobListing struct {
	ListingID     string    `db:"listing_id"`
	Title         string    `db:"title"`
	Salary        int64     `db:"salary"`
	Location      string    `db:"location"`
	Description   string    `db:"description"`
	CompanyName   string    `db:"company_name"`
	EmployerEmail string    `db:"employer_email"`
	PostedAt      time.Time `db:"posted_at"`
	Applied       int       `db:"applied"`
	JobStatus     string    `db:"job_status"`
}

type User struct {
	UserID      string    `db:"user_id"`
	Email       string    `db:"email"`
	Role        string    `db:"role"`
	Name        string    `db:"name"`
	CompanyName string    `db:"company_name"`
	CreatedAt   time.Time `db:"created_at"`
}

type Application struct {
	ApplicationID  string    `db:"application_id"`
	JobID          string    `db:"job_id"`
	JobSeekerEmail string    `db:"job_seeker_email"`
	Status         string    `db:"status"`
	AppliedAt      time.Time `db:"applied_at"`
	// Details carries the applicant-supplied fields verbatim as JSON.
	Details []byte `db:"details"`
}

type EmployerNotification struct {
	NotificationID string    `db:"notification_id"`
	ApplicationID  string    `db:"application_id"`
	JobID          string    `db:"job_id"`
	EmployerEmail  string    `db:"employer_email"`
	JobTitle       string    `db:"job_title"`
	JobSeekerEmail string    `db:"job_seeker_email"`
	CreatedAt      time.Time `db:"created_at"`
}
