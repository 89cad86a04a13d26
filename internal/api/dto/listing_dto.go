package dto

type EmployerProfileDTO struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
}

type CreateListingRequest struct {
	Title       string             `json:"title" binding:"required"`
	Salary      Salary             `json:"salary"`
	Location    string             `json:"location"`
	Description string             `json:"description"`
	Profile     EmployerProfileDTO `json:"profile"`
}

// UpdateListingRequest is a partial update: only the fields present in the
// request body are merged over the stored listing. Server-assigned fields
// (postedAt, applied) are not client-writable.
type UpdateListingRequest struct {
	Title       *string             `json:"title"`
	Salary      *Salary             `json:"salary"`
	Location    *string             `json:"location"`
	Description *string             `json:"description"`
	JobStatus   *string             `json:"jobStatus"`
	Profile     *EmployerProfileDTO `json:"profile"`
}

type ListListingsRequest struct {
	Search      string `form:"search"`
	SalaryRange string `form:"salaryRange"`
	Company     string `form:"company"`
	Sort        string `form:"sort"`
	Page        int    `form:"page"`
	Size        int    `form:"size"`
}

type ListingDTO struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Salary      Salary             `json:"salary"`
	Location    string             `json:"location"`
	Description string             `json:"description,omitempty"`
	Profile     EmployerProfileDTO `json:"profile"`
	PostedAt    string             `json:"postedAt"`
	Applied     int                `json:"applied"`
	JobStatus   string             `json:"jobStatus"`
}

type ListListingsResponse struct {
	Jobs         []ListingDTO `json:"jobs"`
	TotalCount   int64        `json:"totalCount"`
	CompanyNames []string     `json:"companyNames"`
}

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
