// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package submissions

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Storage prefixes.
const (
	SubmissionsPrefix = "submissions/"
	ResumesPrefix     = "resumes/"
)

// StatusNew is the status given to every new submission. Any other string
// may be written by Patch.
const StatusNew = "new"

// Known statuses, listed for clients. Patch does not enforce them.
var Statuses = []string{StatusNew, "reviewing", "shortlisted", "rejected", "hired"}

// SubmittedAtLayout is the ISO-8601 form of submittedAt (UTC, milliseconds).
const SubmittedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Submission is one stored application record. Fields the service does not
// know about are kept in Extra and written back unchanged.
type Submission struct {
	ID          string `json:"id"`
	JobSlug     string `json:"jobSlug"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CoverLetter string `json:"coverLetter"`
	ResumeKey   string `json:"resumeKey,omitempty"`
	Status      string `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
	SubmittedAt string `json:"submittedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// submissionFields is Submission without its JSON methods.
type submissionFields Submission

var knownFields = []string{"id", "jobSlug", "name", "email", "coverLetter", "resumeKey", "status", "notes", "submittedAt"}

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var fields submissionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(raw, k)
	}
	*s = Submission(fields)
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// MarshalJSON writes the known fields merged with Extra.
func (s Submission) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(submissionFields(s))
	if err != nil || len(s.Extra) == 0 {
		return base, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// EffectiveStatus returns Status, or StatusNew when it is empty.
func (s *Submission) EffectiveStatus() string {
	if s.Status == "" {
		return StatusNew
	}
	return s.Status
}

// SubmittedTime parses SubmittedAt. Unparseable values return the zero time.
func (s *Submission) SubmittedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.SubmittedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Key returns the record's storage key.
func (s *Submission) Key() string {
	return RecordKey(s.JobSlug, s.ID)
}

// RecordKey returns submissions/<jobSlug>/<id>.json.
func RecordKey(jobSlug, id string) string {
	return SubmissionsPrefix + jobSlug + "/" + id + ".json"
}

// ResumeKey returns resumes/<jobSlug>/<id>-<sanitizedName>.
func ResumeKey(jobSlug, id, sanitizedName string) string {
	return ResumesPrefix + jobSlug + "/" + id + "-" + sanitizedName
}

func isRecordKey(key string) bool {
	return strings.HasPrefix(key, SubmissionsPrefix) && strings.HasSuffix(key, ".json")
}
