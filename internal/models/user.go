package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relations
	CandidateProfile *CandidateProfile `gorm:"foreignKey:UserID" json:"candidate_profile,omitempty"`
	CompanyProfile   *CompanyProfile   `gorm:"foreignKey:UserID" json:"company_profile,omitempty"`
}

// DisplayName returns the human-readable name for the admin user table,
// depending on which profile the user carries.
func (u *User) DisplayName() string {
	switch u.Role {
	case UserRoleCandidate:
		if u.CandidateProfile != nil {
			return u.CandidateProfile.FullName()
		}
	case UserRoleCompany:
		if u.CompanyProfile != nil {
			return u.CompanyProfile.CompanyName
		}
	}
	return u.Email
}
