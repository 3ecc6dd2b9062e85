package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/internal/domain/profile"
)

func validPatch() profile.Patch {
	return profile.Patch{
		Handle: "jdoe",
		Status: "Developer",
		Skills: "Go,SQL",
	}
}

func TestProfileValidation(t *testing.T) {
	testCases := []struct {
		name       string
		mutate     func(*profile.Patch)
		wantValid  bool
		wantField  string
		wantErrMsg string
	}{
		{
			name:      "valid payload passes",
			mutate:    func(p *profile.Patch) {},
			wantValid: true,
		},
		{
			name:       "missing handle",
			mutate:     func(p *profile.Patch) { p.Handle = "" },
			wantValid:  false,
			wantField:  "handle",
			wantErrMsg: "Profile handle is required.",
		},
		{
			name:       "whitespace-only handle",
			mutate:     func(p *profile.Patch) { p.Handle = "   " },
			wantValid:  false,
			wantField:  "handle",
			wantErrMsg: "Profile handle is required.",
		},
		{
			name:       "handle too short",
			mutate:     func(p *profile.Patch) { p.Handle = "j" },
			wantValid:  false,
			wantField:  "handle",
			wantErrMsg: "Handle needs to be between 2 and 40 characters.",
		},
		{
			name:       "missing status",
			mutate:     func(p *profile.Patch) { p.Status = "" },
			wantValid:  false,
			wantField:  "status",
			wantErrMsg: "Status field is required.",
		},
		{
			name:       "missing skills",
			mutate:     func(p *profile.Patch) { p.Skills = "" },
			wantValid:  false,
			wantField:  "skills",
			wantErrMsg: "Skills field is required.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			patch := validPatch()
			tc.mutate(&patch)

			res := Profile(patch)

			assert.Equal(t, tc.wantValid, res.IsValid)
			if tc.wantValid {
				assert.Empty(t, res.Errors)
				return
			}
			assert.Equal(t, tc.wantErrMsg, res.Errors[tc.wantField])
		})
	}
}

func TestProfileValidation_ReportsAllInvalidFields(t *testing.T) {
	res := Profile(profile.Patch{})

	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors, "handle")
	assert.Contains(t, res.Errors, "status")
	assert.Contains(t, res.Errors, "skills")
}

func TestExperienceValidation(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	res := Experience(profile.ExperienceInput{Title: "Engineer", Company: "Acme", From: from})
	assert.True(t, res.IsValid)

	res = Experience(profile.ExperienceInput{Company: "Acme", From: from})
	assert.False(t, res.IsValid)
	assert.Equal(t, "Job title field is required.", res.Errors["title"])

	res = Experience(profile.ExperienceInput{Title: "Engineer", From: from})
	assert.False(t, res.IsValid)
	assert.Equal(t, "Company field is required.", res.Errors["company"])

	res = Experience(profile.ExperienceInput{Title: "Engineer", Company: "Acme"})
	assert.False(t, res.IsValid)
	assert.Equal(t, "From date field is required.", res.Errors["from"])
}

func TestEducationValidation(t *testing.T) {
	from := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)

	res := Education(profile.EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from})
	assert.True(t, res.IsValid)

	res = Education(profile.EducationInput{Degree: "BSc", FieldOfStudy: "CS", From: from})
	assert.False(t, res.IsValid)
	assert.Equal(t, "School field is required.", res.Errors["school"])

	res = Education(profile.EducationInput{School: "MIT", FieldOfStudy: "CS", From: from})
	assert.False(t, res.IsValid)
	assert.Equal(t, "Degree field is required.", res.Errors["degree"])

	res = Education(profile.EducationInput{School: "MIT", Degree: "BSc", From: from})
	assert.False(t, res.IsValid)
	assert.Equal(t, "Field of study field is required.", res.Errors["fieldofstudy"])
}

func TestPostValidation(t *testing.T) {
	testCases := []struct {
		name       string
		input      post.Input
		wantValid  bool
		wantField  string
		wantErrMsg string
	}{
		{
			name:      "valid payload passes",
			input:     post.Input{Text: "This is a long enough post.", Name: "John Doe", Avatar: "https://gravatar.example/jd"},
			wantValid: true,
		},
		{
			name:       "text too short",
			input:      post.Input{Text: "too short", Name: "John Doe", Avatar: "https://gravatar.example/jd"},
			wantValid:  false,
			wantField:  "text",
			wantErrMsg: "Post must be between 10 and 300 characters.",
		},
		{
			name:       "missing text",
			input:      post.Input{Name: "John Doe", Avatar: "https://gravatar.example/jd"},
			wantValid:  false,
			wantField:  "text",
			wantErrMsg: "Text field is required.",
		},
		{
			name:       "missing name",
			input:      post.Input{Text: "This is a long enough post.", Avatar: "https://gravatar.example/jd"},
			wantValid:  false,
			wantField:  "name",
			wantErrMsg: "Name field is required.",
		},
		{
			name:       "missing avatar",
			input:      post.Input{Text: "This is a long enough post.", Name: "John Doe"},
			wantValid:  false,
			wantField:  "avatar",
			wantErrMsg: "Avatar field is required.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Post(tc.input)

			assert.Equal(t, tc.wantValid, res.IsValid)
			if !tc.wantValid {
				assert.Equal(t, tc.wantErrMsg, res.Errors[tc.wantField])
			}
		})
	}
}
