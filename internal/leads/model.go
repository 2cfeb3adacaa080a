package leads

import "time"

// Leads are append-only: every submission inserts one row and nothing ever
// updates it. Email and phone are stored as opaque strings.

type StudyLead struct {
	ID             int64     `json:"id"`
	Country        string    `json:"country"`
	Qualification  string    `json:"qualification"`
	Age            string    `json:"age"`
	EducationTopic string    `json:"education_topic"`
	CGPA           string    `json:"cgpa"`
	Budget         string    `json:"budget"`
	NeedsLoan      bool      `json:"needs_loan"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
}

type WorkLead struct {
	ID         int64     `json:"id"`
	Occupation string    `json:"occupation"`
	Education  string    `json:"education"`
	Experience string    `json:"experience"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

type InvestLead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// Request field names follow the submission forms on the public site.

type StudyRequest struct {
	SelectedCountry        string `json:"selectedCountry"`
	SelectedQualification  string `json:"selectedQualification"`
	SelectedAge            string `json:"selectedAge"`
	SelectedEducationTopic string `json:"selectedEducationTopic"`
	CurrentCGPA            string `json:"currentCgpa"`
	SelectedBudget         string `json:"selectedBudget"`
	NeedsLoan              bool   `json:"needsLoan"`
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
}

type WorkRequest struct {
	Occupation string `json:"occupation"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type InvestRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Country string `json:"country" validate:"required"`
}
