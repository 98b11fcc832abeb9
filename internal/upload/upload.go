// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package upload reads files out of multipart forms and decides their media
// type from the declared Content-Type or, failing that, the filename
// extension. File contents are never sniffed.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

// Media types accepted for uploads.
const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypePNG  = "image/png"
	TypeJPEG = "image/jpeg"
	TypeWEBP = "image/webp"
)

// DefaultMaxBytes is the per-file ceiling.
const DefaultMaxBytes int64 = 5 << 20

// ResumeTypes are the media types accepted for a resume.
var ResumeTypes = []string{TypePDF, TypeDOC, TypeDOCX}

// extensions maps media types to the file extension used in storage keys.
var extensions = map[string]string{
	TypePDF:  ".pdf",
	TypePNG:  ".png",
	TypeJPEG: ".jpg",
	TypeWEBP: ".webp",
	TypeDOC:  ".doc",
	TypeDOCX: ".docx",
}

// byExtension is the reverse lookup used when no usable type was declared.
var byExtension = map[string]string{
	".pdf":  TypePDF,
	".doc":  TypeDOC,
	".docx": TypeDOCX,
	".png":  TypePNG,
	".jpg":  TypeJPEG,
	".jpeg": TypeJPEG,
	".webp": TypeWEBP,
}

// ErrTooLarge is returned when a file exceeds its ceiling.
var ErrTooLarge = errors.New("file too large")

// File is an uploaded file held in memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the file length in bytes.
func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// FromForm reads the named file field. A missing or empty field returns
// (nil, nil). Files larger than maxBytes return ErrTooLarge without reading
// the remainder.
func FromForm(r *http.Request, field string, maxBytes int64) (*File, error) {
	fh, err := formFile(r, field)
	if err != nil || fh == nil {
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}
	if fh.Size > maxBytes {
		return nil, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}

	return &File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func formFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}

// ResolveType returns the media type of f if it is in allowed. A declared
// type this package knows is authoritative; the filename extension is only
// consulted when the declared type is absent, application/octet-stream, or
// unknown. It returns "" when the resolved type is not allowed.
func ResolveType(f *File, allowed []string) string {
	resolved := normalizeType(f.ContentType)
	if _, known := extensions[resolved]; !known {
		resolved = byExtension[strings.ToLower(filepath.Ext(f.Filename))]
	}
	if resolved == "" || !contains(allowed, resolved) {
		return ""
	}
	return resolved
}

// Extension returns the storage extension for a media type, or "".
func Extension(mediaType string) string {
	return extensions[normalizeType(mediaType)]
}

func normalizeType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// maxSanitizedLength clamps sanitized filenames.
const maxSanitizedLength = 60

// SanitizeFilename replaces each run of characters outside [A-Za-z0-9._-]
// with "_" and clamps the result to 60 bytes. An empty result becomes
// "resume".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}
	out := unsafeRun.ReplaceAllString(name, "_")
	if len(out) > maxSanitizedLength {
		out = out[:maxSanitizedLength]
	}
	if strings.Trim(out, "_.") == "" {
		return "resume"
	}
	return out
}
