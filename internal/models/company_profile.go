package models

type CompanyProfile struct {
	BaseModel
	UserID      string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CompanyName string `gorm:"not null" json:"company_name"`
	Industry    string `json:"industry"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Description string `json:"description"`
	CompanySize string `json:"company_size"`
	FoundedYear string `json:"founded_year"`

	// Storage key of the uploaded logo.
	Logo string `json:"logo"`

	Verified      bool `gorm:"default:false" json:"verified"`
	TermsAccepted bool `gorm:"default:false" json:"terms_accepted"`
}
