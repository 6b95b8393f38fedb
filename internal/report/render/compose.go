package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// docPalette holds the color values injected into the document style block.
type docPalette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Border     string
	Accent     string
	TableHead  string
}

var lightPalette = docPalette{
	Background: "#FFFFFF",
	Surface:    "#F9FAFB",
	Text:       "#111827",
	Muted:      "#6B7280",
	Border:     "#E5E7EB",
	Accent:     "#4F46E5",
	TableHead:  "#EEF2FF",
}

var darkPalette = docPalette{
	Background: "#111827",
	Surface:    "#1F2937",
	Text:       "#F9FAFB",
	Muted:      "#9CA3AF",
	Border:     "#374151",
	Accent:     "#818CF8",
	TableHead:  "#312E81",
}

// isCompleteDocument reports whether the fragment is already a full HTML
// document and must bypass the wrapper.
func isCompleteDocument(fragment string) bool {
	head := strings.ToLower(strings.TrimSpace(fragment))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// Compose wraps a report fragment into a complete printable HTML document.
// Fragments that already form a full document are returned unchanged. The
// function is pure string templating and performs no I/O.
func Compose(title, dateLabel, fragment string, opts report.Options) string {
	if isCompleteDocument(fragment) {
		return fragment
	}

	pal := lightPalette
	if opts.Dark() {
		pal = darkPalette
	}
	company := opts.CompanyOrDefault()

	var b strings.Builder
	b.Grow(len(fragment) + 4096)

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString("<title>")
	b.WriteString(escape(title))
	b.WriteString("</title>\n<style>\n")
	writeStyle(&b, pal)
	b.WriteString("</style>\n</head>\n<body>\n")

	b.WriteString(`<div class="report-header">`)
	if company.Logo != "" {
		b.WriteString(`<img class="company-logo" src="`)
		b.WriteString(escape(company.Logo))
		// A broken logo URL must never break the document.
		b.WriteString(`" alt="" onerror="this.style.display='none'">`)
	}
	b.WriteString(`<div class="company-meta"><div class="company-name">`)
	b.WriteString(escape(company.Name))
	b.WriteString(`</div>`)
	if company.Address != "" {
		b.WriteString(`<div class="company-line">`)
		b.WriteString(escape(company.Address))
		b.WriteString(`</div>`)
	}
	if company.Contact != "" {
		b.WriteString(`<div class="company-line">`)
		b.WriteString(escape(company.Contact))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></div>`)

	b.WriteString(`<h1 class="report-title">`)
	b.WriteString(escape(title))
	b.WriteString(`</h1>`)
	b.WriteString(`<div class="report-meta"><span>`)
	b.WriteString(escape(dateLabel))
	b.WriteString(`</span><span>Prepared by `)
	b.WriteString(escape(opts.AdminOrDefault()))
	b.WriteString(`</span></div>`)

	b.WriteString("\n")
	b.WriteString(fragment)
	b.WriteString("\n")

	b.WriteString(`<div class="report-footer">This is a computer-generated report and does not require a signature. `)
	b.WriteString(escape(company.Name))
	b.WriteString(` &copy; all rights reserved.</div>`)
	b.WriteString("\n</body>\n</html>\n")

	return b.String()
}

func writeStyle(b *strings.Builder, pal docPalette) {
	rules := []struct{ selector, body string }{
		{"body", "font-family:'Helvetica Neue',Arial,sans-serif;margin:24px;background:" + pal.Background + ";color:" + pal.Text + ";font-size:12px"},
		{".report-header", "display:flex;align-items:center;gap:16px;border-bottom:2px solid " + pal.Accent + ";padding-bottom:12px"},
		{".company-logo", "max-height:56px;max-width:120px"},
		{".company-name", "font-size:16px;font-weight:700"},
		{".company-line", "color:" + pal.Muted + ";font-size:11px"},
		{".report-title", "font-size:20px;margin:18px 0 4px;color:" + pal.Accent},
		{".report-meta", "display:flex;justify-content:space-between;color:" + pal.Muted + ";margin-bottom:16px"},
		{".section-title", "font-size:14px;margin:20px 0 8px;border-left:4px solid " + pal.Accent + ";padding-left:8px"},
		{".stat-row", "display:flex;gap:12px;flex-wrap:wrap"},
		{".stat-box", "flex:1;min-width:120px;background:" + pal.Surface + ";border:1px solid " + pal.Border + ";border-radius:6px;padding:12px;text-align:center"},
		{".stat-value", "font-size:18px;font-weight:700;color:" + pal.Accent},
		{".stat-label", "color:" + pal.Muted + ";font-size:10px;text-transform:uppercase;letter-spacing:0.05em"},
		{".report-table", "width:100%;border-collapse:collapse;margin:8px 0 16px"},
		{".report-table th", "background:" + pal.TableHead + ";text-align:left;padding:6px 8px;border:1px solid " + pal.Border},
		{".report-table td", "padding:6px 8px;border:1px solid " + pal.Border},
		{".no-data", "text-align:center;color:" + pal.Muted + ";font-style:italic"},
		{".badge", "color:#FFFFFF;border-radius:10px;padding:2px 8px;font-size:10px"},
		{".dot", "display:inline-block;width:8px;height:8px;border-radius:50%;margin-right:6px"},
		{".range-note", "color:" + pal.Muted + ";font-size:11px"},
		{".report-footer", "margin-top:28px;border-top:1px solid " + pal.Border + ";padding-top:8px;color:" + pal.Muted + ";font-size:10px;text-align:center"},
	}
	for _, r := range rules {
		b.WriteString(r.selector)
		b.WriteString("{")
		b.WriteString(r.body)
		b.WriteString("}\n")
	}
}
