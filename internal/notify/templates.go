// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package notify

import (
	"fmt"
	"html"
	"strings"
)

// ApplicationAlert carries the fields of a committed application that the
// admin and applicant emails show.
type ApplicationAlert struct {
	ID          string
	JobSlug     string
	Name        string
	Email       string
	CoverLetter string
	ResumeKey   string
}

// JobAlert carries the fields of a newly posted job.
type JobAlert struct {
	Slug    string
	Title   string
	OrgName string
	City    string
	URL     string
}

// AdminApplicationAlert tells the site admin about a new application.
func AdminApplicationAlert(to []string, a ApplicationAlert) *Message {
	var b strings.Builder
	b.WriteString("<h2>নতুন আবেদন</h2>")
	field(&b, "খেদমত", a.JobSlug)
	field(&b, "নাম", a.Name)
	field(&b, "ইমেইল", a.Email)
	field(&b, "আবেদন আইডি", a.ID)
	field(&b, "রিজিউম কী", a.ResumeKey)
	b.WriteString("<hr/>")
	pre(&b, a.CoverLetter)

	text := fmt.Sprintf("New application for %s\nName: %s\nEmail: %s\nID: %s\nResume key: %s\n\n%s",
		a.JobSlug, a.Name, a.Email, a.ID, a.ResumeKey, a.CoverLetter)

	return &Message{
		To:      to,
		Subject: fmt.Sprintf("নতুন আবেদন (%s) — %s", a.JobSlug, a.Name),
		HTML:    b.String(),
		Text:    text,
	}
}

// ApplicantAcknowledgement confirms receipt to the applicant.
func ApplicantAcknowledgement(a ApplicationAlert) *Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>প্রিয় %s,</p>", html.EscapeString(a.Name))
	fmt.Fprintf(&b, "<p>আপনার আবেদন (<b>%s</b>) আমরা পেয়েছি। শীঘ্রই যোগাযোগ করা হবে।</p>", html.EscapeString(a.JobSlug))
	fmt.Fprintf(&b, "<p>আবেদন আইডি: %s</p>", html.EscapeString(a.ID))

	return &Message{
		To:      []string{a.Email},
		Subject: fmt.Sprintf("আবেদন গৃহীত (%s)", a.JobSlug),
		HTML:    b.String(),
		Text:    fmt.Sprintf("Dear %s,\nWe received your application for %s.\nApplication ID: %s\n", a.Name, a.JobSlug, a.ID),
	}
}

// ContactMessage relays a contact form submission to the admin.
func ContactMessage(to []string, name, email, message string) *Message {
	var b strings.Builder
	field(&b, "নাম", name)
	field(&b, "ইমেইল", email)
	b.WriteString("<hr/>")
	pre(&b, message)

	return &Message{
		To:      to,
		Subject: "যোগাযোগ ফর্ম — " + name,
		HTML:    b.String(),
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", name, email, message),
	}
}

// AdminJobPosted tells the admin a job was published.
func AdminJobPosted(to []string, j JobAlert) *Message {
	var b strings.Builder
	b.WriteString("<h2>নতুন খেদমত প্রকাশিত</h2>")
	field(&b, "শিরোনাম", j.Title)
	field(&b, "প্রতিষ্ঠান", j.OrgName)
	field(&b, "শহর", j.City)
	field(&b, "স্লাগ", j.Slug)
	if j.URL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, html.EscapeString(j.URL), html.EscapeString(j.URL))
	}

	return &Message{
		To:      to,
		Subject: fmt.Sprintf("নতুন খেদমত (%s) — %s", j.Slug, j.Title),
		HTML:    b.String(),
		Text:    fmt.Sprintf("New job posted: %s\nOrganisation: %s\nCity: %s\nSlug: %s\n%s", j.Title, j.OrgName, j.City, j.Slug, j.URL),
	}
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<p><b>%s:</b> %s</p>", label, html.EscapeString(value))
}

func pre(b *strings.Builder, value string) {
	fmt.Fprintf(b, `<pre style="white-space:pre-wrap">%s</pre>`, html.EscapeString(value))
}
