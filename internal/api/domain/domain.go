package domain

import (
	"errors"
)

const (
	ListingStatusOpen   = "Open"
	ListingStatusClosed = "Closed"

	ApplicationStatusApplied = "Applied"

	RoleEmployer  = "employer"
	RoleJobSeeker = "job seeker"

	LocationRemote = "Remote"
	LocationOnSite = "On-Site"
)

var (
	ErrListingNotFound     = errors.New("job listing not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
)
