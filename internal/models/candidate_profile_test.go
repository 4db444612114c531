package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestCompletionPercentEmptyProfile(t *testing.T) {
	t.Parallel()

	p := &CandidateProfile{}
	assert.Equal(t, 0, p.CompletionPercent(""))
}

func TestCompletionPercentCountsEachSection(t *testing.T) {
	t.Parallel()

	p := &CandidateProfile{
		FirstName: "Marie",
		LastName:  "Dupont",
	}
	// first_name + last_name + email
	assert.Equal(t, 30, p.CompletionPercent("marie@exemple.fr"))

	p.Phone = "0601020304"
	p.Location = "Lyon"
	p.Bio = "Développeuse backend"
	assert.Equal(t, 60, p.CompletionPercent("marie@exemple.fr"))

	p.Skills = []string{"go"}
	p.Avatar = "avatars/m.jpg"
	assert.Equal(t, 80, p.CompletionPercent("marie@exemple.fr"))
}

func TestCompletionPercentIgnoresEmptyJSONSections(t *testing.T) {
	t.Parallel()

	p := &CandidateProfile{
		Education:  datatypes.JSON([]byte("[]")),
		Experience: datatypes.JSON([]byte("null")),
	}
	assert.Equal(t, 0, p.CompletionPercent(""))

	p.Education = datatypes.JSON([]byte(`[{"school":"INSA"}]`))
	p.Experience = datatypes.JSON([]byte(`[{"company":"Acme"}]`))
	assert.Equal(t, 20, p.CompletionPercent(""))
}

func TestDisplayNameFollowsRole(t *testing.T) {
	t.Parallel()

	candidate := &User{
		Role:             UserRoleCandidate,
		Email:            "marie@exemple.fr",
		CandidateProfile: &CandidateProfile{FirstName: "Marie", LastName: "Dupont"},
	}
	assert.Equal(t, "Marie Dupont", candidate.DisplayName())

	company := &User{
		Role:           UserRoleCompany,
		Email:          "rh@acme.fr",
		CompanyProfile: &CompanyProfile{CompanyName: "Acme"},
	}
	assert.Equal(t, "Acme", company.DisplayName())

	// Without a profile loaded the email is the fallback.
	bare := &User{Role: UserRoleCandidate, Email: "marie@exemple.fr"}
	assert.Equal(t, "marie@exemple.fr", bare.DisplayName())
}
