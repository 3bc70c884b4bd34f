package models

import "time"

// DateLayout is the calendar-date format of the date dimension's natural key
const DateLayout = "2006-01-02"

// Source table names
const (
	TableStudents   = "Students"
	TableActivities = "Activities"
	TableSignups    = "Signups"
)

// Dimension types

type DimStudent struct {
	StudentID  int    `json:"student_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GradeLevel int    `json:"grade_level"`
}

type DimActivity struct {
	ActivityID      int    `json:"activity_id"`
	ActivityName    string `json:"activity_name"`
	Description     string `json:"description"`
	Schedule        string `json:"schedule"`
	MaxParticipants int    `json:"max_participants"`
}

// DimDate fields other than Date are derived from it on insert
type DimDate struct {
	DateID  int    `json:"date_id"`
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Weekday string `json:"weekday"`
}

// Fact types

type FactSignup struct {
	FactSignupID    int       `json:"fact_signup_id"`
	StudentID       int       `json:"student_id"`
	ActivityID      int       `json:"activity_id"`
	DateID          int       `json:"date_id"`
	SignupTimestamp time.Time `json:"signup_timestamp"`
}

// Analytics types

type ActivityAnalytics struct {
	ActivityID      int    `json:"activity_id"`
	ActivityName    string `json:"activity_name"`
	Description     string `json:"description"`
	Schedule        string `json:"schedule"`
	MaxParticipants int    `json:"max_participants"`
	CurrentSignups  int    `json:"current_signups"`
	SpotsLeft       int    `json:"spots_left"` // negative when oversubscribed
}

type StudentAnalytics struct {
	StudentID       int      `json:"student_id"`
	StudentName     string   `json:"student_name"`
	Email           string   `json:"email"`
	GradeLevel      int      `json:"grade_level"`
	ActivitiesCount int      `json:"activities_count"`
	Activities      []string `json:"activities"`
}

type GradeParticipation struct {
	GradeLevel           int     `json:"grade_level"`
	UniqueStudents       int     `json:"unique_students"`
	TotalSignups         int     `json:"total_signups"`
	AvgSignupsPerStudent float64 `json:"avg_signups_per_student"`
}

// StudentSignup is one signup seen from the student side
type StudentSignup struct {
	FactSignupID    int       `json:"fact_signup_id"`
	ActivityName    string    `json:"activity_name"`
	SignupDate      string    `json:"signup_date"`
	SignupTimestamp time.Time `json:"signup_timestamp"`
}

// ActivitySignup is one signup seen from the activity side
type ActivitySignup struct {
	FactSignupID    int       `json:"fact_signup_id"`
	StudentName     string    `json:"student_name"`
	StudentEmail    string    `json:"student_email"`
	GradeLevel      int       `json:"grade_level"`
	SignupDate      string    `json:"signup_date"`
	SignupTimestamp time.Time `json:"signup_timestamp"`
}

type ModelCounts struct {
	Students   int `json:"students"`
	Activities int `json:"activities"`
	Dates      int `json:"dates"`
	Signups    int `json:"signups"`
}

// Load types

type RowError struct {
	Table   string `json:"table"`
	Row     int    `json:"row"` // 1-based source line, header included
	Message string `json:"message"`
}

type LoadReport struct {
	LoadID           string     `json:"load_id"`
	Source           string     `json:"source"`
	Replaced         bool       `json:"replaced"`
	StudentsLoaded   int        `json:"students_loaded"`
	ActivitiesLoaded int        `json:"activities_loaded"`
	SignupsLoaded    int        `json:"signups_loaded"`
	Errors           []RowError `json:"errors"`
}

// Request types

// SignupRequest records a signup by natural keys. SignupDate is optional
// and accepts the same formats as the Signups table.
type SignupRequest struct {
	StudentEmail string `json:"student_email"`
	ActivityName string `json:"activity_name"`
	SignupDate   string `json:"signup_date,omitempty"`
}

// Response types

type ActivityListing struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type SignupResponse struct {
	Message      string `json:"message"`
	FactSignupID int    `json:"fact_signup_id"`
}

type StudentDetailResponse struct {
	Student DimStudent      `json:"student"`
	Signups []StudentSignup `json:"signups"`
}

type ActivityDetailResponse struct {
	Activity     DimActivity      `json:"activity"`
	Signups      []ActivitySignup `json:"signups"`
	TotalSignups int              `json:"total_signups"`
	SpotsLeft    int              `json:"spots_left"`
}

type LoadResponse struct {
	Message string     `json:"message"`
	Results LoadReport `json:"results"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string      `json:"status"`
	Counts ModelCounts `json:"counts"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
