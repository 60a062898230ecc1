package domain

import "time"

type Opportunity struct {
	OpportunityID string      `json:"id" dynamodbav:"opportunity_id"`
	OwnerID       string      `json:"userId" dynamodbav:"owner_id"`
	Title         string      `json:"title" dynamodbav:"title"`
	Company       string      `json:"company,omitempty" dynamodbav:"company"`
	Location      string      `json:"location" dynamodbav:"location"`
	Description   string      `json:"description" dynamodbav:"description"`
	Requirements  string      `json:"requirements" dynamodbav:"requirements"`
	Type          string      `json:"type" dynamodbav:"type"`
	SalaryRange   string      `json:"salaryRange" dynamodbav:"salary_range"`
	Email         string      `json:"email" dynamodbav:"email"`
	IsFilled      bool        `json:"isFilled" dynamodbav:"is_filled"`
	Applicants    []Applicant `json:"applicants" dynamodbav:"applicants,omitempty"`
	PostedDate    time.Time   `json:"postedDate" dynamodbav:"posted_date"`
}

// Applicant is one application embedded in an opportunity.
type Applicant struct {
	ApplicantID     string `json:"id" dynamodbav:"applicant_id"`
	UserID          string `json:"userId" dynamodbav:"user_id"`
	Name            string `json:"name" dynamodbav:"name"`
	Email           string `json:"email" dynamodbav:"email"`
	ResumeURL       string `json:"resumeUrl" dynamodbav:"resume_url"`
	ApplicationDate string `json:"applicationDate" dynamodbav:"application_date"` // YYYY-MM-DD
}

type CreateOpportunityRequest struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	Type         string `json:"type"`
	SalaryRange  string `json:"salaryRange"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type ApplyRequest struct {
	UserID          string `json:"userId"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ResumeURL       string `json:"resumeUrl" validate:"omitempty,url"`
	ApplicationDate string `json:"applicationDate"`
}

// MyApplication is an applicant record joined with its parent opportunity.
type MyApplication struct {
	Opportunity     *Opportunity `json:"opportunity"`
	ApplicantID     string       `json:"_id"`
	ApplicationDate string       `json:"applicationDate"`
	ResumeURL       string       `json:"resumeUrl"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
}
