package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cvgen/internal/types"
)

func fields(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Field)
	}
	return out
}

func TestDiff(t *testing.T) {
	prev := &types.CVData{
		PersonalInfo: types.PersonalInfo{Name: types.Name{Full: "Jane Doe"}, Title: "Engineer"},
		Experience: []types.Experience{
			{Employer: "Acme", Title: "Engineer", StartDate: "2020"},
			{Employer: "Globex", Title: "Intern"},
		},
		Education: []types.Education{{Institution: "State", Degree: "B.S."}},
		Skills:    []types.Skill{{Name: "Go"}, {Name: "Perl"}},
	}
	next := &types.CVData{
		PersonalInfo: types.PersonalInfo{Name: types.Name{Full: "Jane Doe"}, Title: "Staff Engineer"},
		Experience: []types.Experience{
			{Employer: "Acme", Title: "Engineer", StartDate: "2019"},
			{Employer: "Initech", Title: "Lead"},
		},
		Education: []types.Education{{Institution: "State", Degree: "B.S."}},
		Skills:    []types.Skill{{Name: "go"}, {Name: "Rust"}},
	}

	changes := Diff(prev, next)
	assert.Equal(t, []string{
		"personal_info.title",
		"experience.start_date",
		"experience.add",
		"experience.remove",
		"skills.add",
		"skills.remove",
	}, fields(changes))
	assert.Equal(t, "Engineer", changes[0].Old)
	assert.Equal(t, "Staff Engineer", changes[0].New)
	assert.Equal(t, "Added new experience: Lead at Initech", changes[2].Note)
	assert.Equal(t, "Rust", changes[4].New)
	assert.Equal(t, "Perl", changes[5].Old)
}

func TestDiff_Identical(t *testing.T) {
	cv := &types.CVData{Skills: []types.Skill{{Name: "Go"}}}
	assert.Empty(t, Diff(cv, cv))
	assert.Empty(t, Diff(nil, nil))
}
