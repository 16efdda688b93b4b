package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/globalwealth/wealthdash/report"
	"github.com/globalwealth/wealthdash/web"
)

const (
	stylesheetHref = `href="/static/css/dashboard.css"`
	stylesheetName = "dashboard.css"
)

// PageRenderer writes the dashboard page.
type PageRenderer interface {
	Render(w io.Writer) error
}

// Converter turns an HTML document into a PDF.
type Converter interface {
	RenderHTML(ctx context.Context, html []byte, assets ...report.Asset) ([]byte, error)
}

// PDFExporter renders the dashboard and converts it through Gotenberg.
type PDFExporter struct {
	Pages     PageRenderer
	Converter Converter
}

// RenderDashboard returns the dashboard as PDF bytes. Conversion failures
// wrap report.ErrUnavailable.
func (p *PDFExporter) RenderDashboard(ctx context.Context) ([]byte, error) {
	if p == nil || p.Pages == nil || p.Converter == nil {
		return nil, fmt.Errorf("export: pdf exporter not initialised")
	}
	html, err := PrintableHTML(p.Pages)
	if err != nil {
		return nil, err
	}
	css, err := web.Stylesheet()
	if err != nil {
		return nil, fmt.Errorf("export: read stylesheet: %w", err)
	}
	return p.Converter.RenderHTML(ctx, html, report.Asset{Name: stylesheetName, Data: css})
}

// PrintableHTML renders the page with the stylesheet linked by bare file name,
// the way Gotenberg resolves uploaded assets.
func PrintableHTML(pages PageRenderer) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.Render(&buf); err != nil {
		return nil, fmt.Errorf("export: render page: %w", err)
	}
	return bytes.Replace(buf.Bytes(), []byte(stylesheetHref), []byte(`href="`+stylesheetName+`"`), 1), nil
}
