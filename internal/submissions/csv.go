// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package submissions

import (
	"context"
	"strings"
)

// CSVColumns is the fixed export column set.
var CSVColumns = []string{"id", "jobSlug", "name", "email", "status", "submittedAt", "resumeKey", "coverLetter"}

// ExportCSV renders every readable submission as CSV, in listing order.
// The whole export is built in memory.
func (r *Review) ExportCSV(ctx context.Context) ([]byte, error) {
	subs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return EncodeCSV(subs), nil
}

// EncodeCSV renders subs with the CSVColumns header. Rows are joined by
// "\n" with no trailing newline.
func EncodeCSV(subs []*Submission) []byte {
	lines := make([]string, 0, len(subs)+1)
	lines = append(lines, strings.Join(CSVColumns, ","))
	for _, s := range subs {
		fields := []string{s.ID, s.JobSlug, s.Name, s.Email, s.Status, s.SubmittedAt, s.ResumeKey, s.CoverLetter}
		for i, f := range fields {
			fields[i] = escapeCSV(f)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return []byte(strings.Join(lines, "\n"))
}

// escapeCSV quotes a field that contains a quote, comma, CR or LF, doubling
// embedded quotes.
func escapeCSV(s string) string {
	if strings.ContainsAny(s, "\",\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
