// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package jobs

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	maxSlugBase  = 60
	slugFallback = "job"
	suffixLength = 4
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugDashes     = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases s, drops everything outside [a-z0-9], whitespace and
// "-", turns whitespace runs into "-", collapses dashes and clamps to 60
// bytes. Titles with no Latin letters or digits slugify to "job".
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugBase {
		s = strings.TrimRight(s[:maxSlugBase], "-")
	}
	if s == "" {
		return slugFallback
	}
	return s
}

// NewSlug returns Slugify(title + "-" + city) plus a dash and the last four
// base36 digits of the current Unix millisecond time.
func NewSlug(title, city string, now time.Time) string {
	return Slugify(title+"-"+city) + "-" + timeSuffix(now)
}

func timeSuffix(now time.Time) string {
	s := strconv.FormatInt(now.UnixMilli(), 36)
	if len(s) > suffixLength {
		s = s[len(s)-suffixLength:]
	}
	return s
}
