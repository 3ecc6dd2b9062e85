// Package validation checks inbound payloads against their field contracts.
// It is pure: no I/O, no store access, total over any input. Managers must
// treat a failed Result as an atomic no-op and surface Errors verbatim.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/internal/domain/profile"
)

type Result struct {
	IsValid bool
	Errors  map[string]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// required-after-trimming, the contract every required text field uses
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// messages are keyed by "<StructField>.<tag>"; anything unlisted falls back
// to a generic per-field message.
var messages = map[string]string{
	"Handle.notblank": "Profile handle is required.",
	"Handle.min":      "Handle needs to be between 2 and 40 characters.",
	"Handle.max":      "Handle needs to be between 2 and 40 characters.",
	"Status.notblank": "Status field is required.",
	"Skills.notblank": "Skills field is required.",

	"Title.notblank":   "Job title field is required.",
	"Company.notblank": "Company field is required.",
	"From.required":    "From date field is required.",

	"School.notblank":       "School field is required.",
	"Degree.notblank":       "Degree field is required.",
	"FieldOfStudy.notblank": "Field of study field is required.",

	"Text.notblank":   "Text field is required.",
	"Text.min":        "Post must be between 10 and 300 characters.",
	"Text.max":        "Post must be between 10 and 300 characters.",
	"Name.notblank":   "Name field is required.",
	"Avatar.notblank": "Avatar field is required.",
}

func check(payload any) Result {
	err := validate.Struct(payload)
	if err == nil {
		return Result{IsValid: true, Errors: map[string]string{}}
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{IsValid: false, Errors: map[string]string{"payload": "Payload is invalid."}}
	}

	errs := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strings.ToLower(fe.Field())
		if _, seen := errs[key]; seen {
			continue
		}
		if msg, found := messages[fe.Field()+"."+fe.Tag()]; found {
			errs[key] = msg
		} else {
			errs[key] = fe.Field() + " field is invalid."
		}
	}
	return Result{IsValid: false, Errors: errs}
}

// Typed entry points, one per payload kind.

func Profile(p profile.Patch) Result { return check(p) }

func Experience(in profile.ExperienceInput) Result { return check(in) }

func Education(in profile.EducationInput) Result { return check(in) }

func Post(in post.Input) Result { return check(in) }
