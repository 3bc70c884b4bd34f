// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

// Row schemas. Fields hold the raw cell text; the json tag is the column
// name and the name used in validation messages.

type StudentRow struct {
	Email      string `json:"email" validate:"required"`
	Name       string `json:"name" validate:"required"`
	GradeLevel string `json:"grade_level" validate:"required,numeric"`
}

type ActivityRow struct {
	ActivityName    string `json:"activity_name" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Schedule        string `json:"schedule" validate:"required"`
	MaxParticipants string `json:"max_participants" validate:"required,numeric"`
}

type SignupRow struct {
	StudentEmail string `json:"student_email" validate:"required"`
	ActivityName string `json:"activity_name" validate:"required"`
	SignupDate   string `json:"signup_date" validate:"required"`
}

func studentRowFrom(r Row) StudentRow {
	return StudentRow{
		Email:      r.Get("email"),
		Name:       r.Get("name"),
		GradeLevel: r.Get("grade_level"),
	}
}

func activityRowFrom(r Row) ActivityRow {
	return ActivityRow{
		ActivityName:    r.Get("activity_name"),
		Description:     r.Get("description"),
		Schedule:        r.Get("schedule"),
		MaxParticipants: r.Get("max_participants"),
	}
}

func signupRowFrom(r Row) SignupRow {
	return SignupRow{
		StudentEmail: r.Get("student_email"),
		ActivityName: r.Get("activity_name"),
		SignupDate:   r.Get("signup_date"),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRow checks a row schema and returns one message covering every
// failed field
func validateRow(row any) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "numeric":
			msgs = append(msgs, fmt.Sprintf("%s must be a number, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// parseInt accepts integers, including spreadsheet numbers such as "12.0"
func parseInt(field, s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, &star.ValidationError{Field: field, Message: fmt.Sprintf("%q is not an integer", s)}
	}
	if f < math.MinInt || f >= -math.MinInt {
		return 0, &star.ValidationError{Field: field, Message: fmt.Sprintf("%q is out of range", s)}
	}
	return int(f), nil
}

var dateLayouts = []string{
	models.DateLayout,
	"20060102",
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseSignupDate returns the calendar date of a signup_date value and,
// when the value carries a time of day, the full timestamp. Bare numbers
// are not dates here; workbook serials are converted by Workbook.Table.
func ParseSignupDate(s string) (date string, ts time.Time, err error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout), time.Time{}, nil
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout), t, nil
		}
	}
	return "", time.Time{}, &star.ValidationError{
		Field:   "signup_date",
		Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", s),
	}
}
