// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type testJob struct {
	Title  string `json:"title" validate:"min=3"`
	City   string `json:"city" validate:"min=2"`
	Slug   string `json:"slug" validate:"omitempty,jobslug"`
	Email  string `json:"contactEmail" validate:"omitempty,email"`
	Site   string `json:"website" validate:"omitempty,url"`
	Salary string `json:"salaryValue" validate:"omitempty,numeric"`
	Name   string `form:"name" validate:"notblank"`
	Status string `json:"status" validate:"omitempty,oneof=new reviewed shortlisted rejected hired"`
}

func validJob() testJob {
	return testJob{Title: "Imam", City: "Dhaka", Name: "Karim"}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*testJob)
	}{
		{"minimal", func(*testJob) {}},
		{"bangla title counts runes", func(j *testJob) { j.Title = "ইমাম" }},
		{"all optionals", func(j *testJob) {
			j.Slug = "imam-dhaka-k3f9"
			j.Email = "a@example.com"
			j.Site = "https://example.com"
			j.Salary = "15000"
			j.Status = "reviewed"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(&j)
			if err := ValidateStruct(&j); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*testJob)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"short title", func(j *testJob) { j.Title = "ab" }, "title", "min", "title must be at least 3 characters"},
		{"blank name", func(j *testJob) { j.Name = "   " }, "name", "notblank", "name is required"},
		{"slug with slash", func(j *testJob) { j.Slug = "a/b" }, "slug", "jobslug", "slug is not a valid job slug"},
		{"slug traversal", func(j *testJob) { j.Slug = "..x" }, "slug", "jobslug", ""},
		{"bad email", func(j *testJob) { j.Email = "nope" }, "contactEmail", "email", "contactEmail must be a valid email address"},
		{"bad url", func(j *testJob) { j.Site = "not a url" }, "website", "url", ""},
		{"salary not numeric", func(j *testJob) { j.Salary = "lots" }, "salaryValue", "numeric", "salaryValue must be a number"},
		{"unknown status", func(j *testJob) { j.Status = "archived" }, "status", "oneof", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(&j)
			err := ValidateStruct(&j)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}
			if !err.HasField(tt.wantField) || !err.HasTag(tt.wantTag) {
				t.Errorf("expected %s/%s, got %v", tt.wantField, tt.wantTag, err.Errors())
			}
			if tt.wantMsg != "" && err.First().Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.First().Error(), tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_Combined(t *testing.T) {
	j := testJob{}
	err := ValidateStruct(&j)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Errors()) < 3 {
		t.Errorf("errors = %d, want at least 3", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined message = %q", err.Error())
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty error message")
	}
	if (&RequestValidationError{}).First() != nil {
		t.Error("First() on empty should be nil")
	}
}

func TestValidateVar(t *testing.T) {
	if err := ValidateVar("karim@example.com", "email"); err != nil {
		t.Errorf("valid email: %v", err)
	}
	if err := ValidateVar("karim", "email"); err == nil {
		t.Error("invalid email accepted")
	}
}
