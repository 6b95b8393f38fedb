package reporthttp

import (
	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// ExportRequest is the body of POST /reports/{type}/export.
type ExportRequest struct {
	Theme     string            `json:"theme" validate:"required,oneof=light dark"`
	Title     string            `json:"title" validate:"omitempty,max=200"`
	AdminName string            `json:"adminName" validate:"omitempty,max=120"`
	Company   *CompanyDTO       `json:"company"`
	Filters   map[string]string `json:"filters"`
}

// CompanyDTO carries caller-supplied company metadata.
type CompanyDTO struct {
	Name    string `json:"name" validate:"required,max=200"`
	Logo    string `json:"logo" validate:"omitempty,url"`
	Address string `json:"address" validate:"omitempty,max=400"`
	Contact string `json:"contact" validate:"omitempty,max=200"`
}

// options converts the request into renderer options.
func (req ExportRequest) options() report.Options {
	opts := report.Options{
		Theme:     report.Theme(req.Theme),
		AdminName: req.AdminName,
		Filters:   req.Filters,
	}
	if req.Company != nil {
		opts.Company = &report.CompanyInfo{
			Name:    req.Company.Name,
			Logo:    req.Company.Logo,
			Address: req.Company.Address,
			Contact: req.Company.Contact,
		}
	}
	return opts
}

// ExportResponse returns the stored file coordinates.
type ExportResponse struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}
