package allocator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so problems match the upload payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStudents checks every record of a batch against the Student field rules
// and rejects register numbers listed twice in one session. A single malformed
// record rejects the whole batch.
func ValidateStudents(students []models.Student) error {
	problems := make([]Problem, 0)
	seen := make(map[string]int)
	for i, student := range students {
		add := func(reason string) {
			problems = append(problems, Problem{Index: i, RegisterNumber: student.RegisterNumber, Reason: reason})
		}
		if err := recordValidator.Struct(student); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				add(err.Error())
				continue
			}
			for _, fe := range fieldErrs {
				add(fieldReason(fe))
			}
			continue
		}

		key := student.SessionKey() + "|" + student.RegisterNumber
		if first, dup := seen[key]; dup {
			add(fmt.Sprintf("register number already listed in record %d for session %s", first+1, student.SessionKey()))
			continue
		}
		seen[key] = i
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func fieldReason(fe validator.FieldError) string {
	switch {
	case fe.Field() == "registerNumber" && fe.Tag() != "required":
		return "registerNumber must be exactly 12 digits"
	case fe.Tag() == "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case fe.Tag() == "oneof":
		return fmt.Sprintf("%s %q must be one of %s", fe.Field(), fmt.Sprint(fe.Value()), fe.Param())
	case fe.Tag() == "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
