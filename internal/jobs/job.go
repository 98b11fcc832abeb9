// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package jobs writes employer job postings to the object store and reads
// published postings back for the public listing.
//
// Layout:
//
//	jobs/<slug>/job.json       the posting (schema.org JobPosting shaped)
//	jobs/<slug>/logo<ext>      optional organisation logo
//	jobs/<slug>/jd<ext>        optional job description document
package jobs

import (
	"errors"
	"strings"
)

// Prefix is the storage prefix of all job objects.
const Prefix = "jobs/"

const recordName = "job.json"

// Defaults applied when the form leaves a field empty.
const (
	DefaultCountry        = "BD"
	DefaultSalaryCurrency = "BDT"
	DefaultSalaryUnit     = "MONTH"
)

// ErrNotFound is returned for missing or unpublished jobs.
var ErrNotFound = errors.New("job not found")

// Organization is the hiring organisation.
type Organization struct {
	Name   string `json:"name"`
	SameAs string `json:"sameAs,omitempty"`
	Logo   string `json:"logo,omitempty"`
}

// Location is where the job is.
type Location struct {
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

// Salary is the advertised base salary.
type Salary struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
	UnitText string  `json:"unitText"`
}

// Contact holds optional application contacts.
type Contact struct {
	Email          string `json:"email,omitempty"`
	ApplicationURL string `json:"applicationUrl,omitempty"`
}

// Attachments holds storage keys of uploaded documents.
type Attachments struct {
	JD string `json:"jd,omitempty"`
}

// Job is one stored posting.
type Job struct {
	Slug               string       `json:"slug"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	EmploymentType     string       `json:"employmentType,omitempty"`
	DatePosted         string       `json:"datePosted"`
	ValidThrough       string       `json:"validThrough,omitempty"`
	HiringOrganization Organization `json:"hiringOrganization"`
	JobLocation        Location     `json:"jobLocation"`
	BaseSalary         *Salary      `json:"baseSalary,omitempty"`
	Contact            *Contact     `json:"contact,omitempty"`
	Attachments        *Attachments `json:"attachments,omitempty"`
	Published          *bool        `json:"published,omitempty"`
}

// IsPublished reports whether the job is publicly visible. Only an explicit
// false hides a job.
func (j *Job) IsPublished() bool {
	return j.Published == nil || *j.Published
}

// RecordKey returns jobs/<slug>/job.json.
func RecordKey(slug string) string {
	return Prefix + slug + "/" + recordName
}

func isRecordKey(key string) bool {
	return strings.HasPrefix(key, Prefix) && strings.HasSuffix(key, "/"+recordName)
}

// ValidationError is a caller-correctable input problem. Message is shown
// to the employer as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
