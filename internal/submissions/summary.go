// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package submissions

import (
	"context"
	"sort"
	"strings"
	"time"
)

const (
	jobsPrefix     = "jobs/"
	jobRecordName  = "/job.json"
	recentJobLimit = 20
)

// RecentJob is the dashboard projection of a job posting.
type RecentJob struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	DatePosted string `json:"datePosted,omitempty"`
	OrgName    string `json:"orgName,omitempty"`
}

// Summary is the admin dashboard overview.
type Summary struct {
	TotalApplications int            `json:"totalApps"`
	TodayApplications int            `json:"todayApps"`
	StatusCounts      map[string]int `json:"statusCounts"`
	TotalJobs         int            `json:"totalJobs"`
	RecentJobs        []RecentJob    `json:"recentJobs"`
}

type jobHeader struct {
	Slug               string `json:"slug"`
	Title              string `json:"title"`
	DatePosted         string `json:"datePosted"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
}

// Summary counts applications (total, submitted on now's UTC date, per
// status with a missing status counted as new) and jobs, and returns the
// 20 most recently written job postings.
func (r *Review) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	entries, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		TotalApplications: len(entries),
		StatusCounts:      make(map[string]int),
		RecentJobs:        []RecentJob{},
	}
	today := now.UTC().Format("2006-01-02")
	for _, e := range entries {
		if strings.HasPrefix(e.sub.SubmittedAt, today) {
			out.TodayApplications++
		}
		out.StatusCounts[e.sub.EffectiveStatus()]++
	}

	infos, err := r.store.ListPrefix(ctx, jobsPrefix)
	if err != nil {
		return nil, err
	}
	jobInfos := infos[:0]
	for _, info := range infos {
		if strings.HasSuffix(info.Key, jobRecordName) {
			jobInfos = append(jobInfos, info)
		}
	}
	out.TotalJobs = len(jobInfos)

	sort.SliceStable(jobInfos, func(i, j int) bool {
		return jobInfos[i].LastModified.After(jobInfos[j].LastModified)
	})
	for _, info := range jobInfos {
		if len(out.RecentJobs) == recentJobLimit {
			break
		}
		var h jobHeader
		if err := r.store.GetJSON(ctx, info.Key, &h); err != nil {
			continue
		}
		out.RecentJobs = append(out.RecentJobs, RecentJob{
			Slug:       h.Slug,
			Title:      h.Title,
			DatePosted: h.DatePosted,
			OrgName:    h.HiringOrganization.Name,
		})
	}
	return out, nil
}
