// Package report implements the PDF report generation and delivery pipeline.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies one of the supported business report categories.
type Type string

const (
	TypeExpense     Type = "expense"
	TypeAttendance  Type = "attendance"
	TypeTask        Type = "task"
	TypeTravel      Type = "travel"
	TypePerformance Type = "performance"
	TypeLeave       Type = "leave"
)

// Types lists every supported report type in display order.
var Types = []Type{TypeExpense, TypeAttendance, TypeTask, TypeTravel, TypePerformance, TypeLeave}

// Sentinel errors raised by the pipeline.
var (
	// ErrUnsupportedType indicates a report type with no registered renderer.
	ErrUnsupportedType = errors.New("report: unsupported report type")
	// ErrFileNotFound indicates the referenced PDF is missing on disk.
	ErrFileNotFound = errors.New("report: file not found")
	// ErrShareUnavailable indicates no sharing mechanism is configured.
	ErrShareUnavailable = errors.New("report: sharing unavailable")
)

// ParseType validates a raw type tag.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedType, raw)
}

// Theme selects one of the two document palettes.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Section describes one report card shown to the user. It is immutable for
// the lifetime of the card.
type Section struct {
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CompanyInfo is rendered verbatim into the document header and footer.
type CompanyInfo struct {
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// DefaultCompanyInfo returns the placeholder company used when the caller
// supplies nothing.
func DefaultCompanyInfo() CompanyInfo {
	return CompanyInfo{
		Name:    "Your Company",
		Address: "Company Address",
		Contact: "contact@company.com",
	}
}

// DefaultAdminName is used when no requesting admin is identified.
const DefaultAdminName = "Group Admin"

// Options is threaded through every renderer and the composer. It governs
// cosmetic output and header metadata only.
type Options struct {
	Theme     Theme
	Company   *CompanyInfo
	AdminName string
	Filters   map[string]string
}

// Dark reports whether the dark palette applies.
func (o Options) Dark() bool { return o.Theme == ThemeDark }

// CompanyOrDefault resolves the effective company metadata.
func (o Options) CompanyOrDefault() CompanyInfo {
	if o.Company != nil {
		return *o.Company
	}
	return DefaultCompanyInfo()
}

// AdminOrDefault resolves the effective admin display name.
func (o Options) AdminOrDefault() string {
	if strings.TrimSpace(o.AdminName) != "" {
		return o.AdminName
	}
	return DefaultAdminName
}

// GeneratedReport points at a PDF persisted inside the durable reports
// directory.
type GeneratedReport struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}
