// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	company  config.CompanyConfig
	tmpl     *template.Template
	renderer func(html []byte) ([]byte, error)
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		company:  cfg.Company,
		tmpl:     template.Must(template.New("receipt").Parse(receiptTemplate)),
		renderer: wkhtmlRender,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	OrderDate     string
	Order         *order.Order
	Lines         []ReceiptLine
	Total         string
	Company       config.CompanyConfig
}

// ReceiptLine is one row of the receipt table
type ReceiptLine struct {
	Name      string
	Detail    string
	Quantity  int
	UnitPrice string
	Total     string
}

// GenerateReceipt renders a paid order as a PDF receipt
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfBytes, err := s.renderer(htmlContent)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(pdfBytes), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(o *order.Order) ([]byte, error) {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCPT-%s", o.OrderNumber),
		OrderDate:     o.CreatedAt.Format("January 2, 2006"),
		Order:         o,
		Total:         o.Total.StringFixed(2),
		Company:       s.company,
	}
	for _, item := range o.Items {
		line := ReceiptLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Total:     item.LineTotal.StringFixed(2),
		}
		switch item.Kind {
		case cart.KindRental:
			line.Detail = fmt.Sprintf("Rental %s, %d day(s)", item.DateRange, item.Days)
		case cart.KindStandard:
			if item.Variant != "" && item.Variant != cart.DefaultVariant {
				line.Detail = "Size " + item.Variant
			}
		}
		data.Lines = append(data.Lines, line)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func wkhtmlRender(htmlContent []byte) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeLetter)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return pdfg.Bytes(), nil
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .receipt-title { font-size: 28px; font-weight: bold; color: #0f3b57; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; width: 80px; }
        .total-row { font-size: 18px; font-weight: bold; text-align: right; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            <p>Email: {{.Company.Email}}</p>
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div style="text-align: right;">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Order #:</strong> {{.Order.OrderNumber}}</p>
            <p><strong>Date:</strong> {{.OrderDate}}</p>
            <p><strong>Status:</strong> {{.Order.Status}}</p>
        </div>
    </div>

    <div>
        <div class="section-title">Customer:</div>
        <p><strong>{{.Order.Customer.Name}}</strong></p>
        {{if .Order.Customer.Address}}<p>{{.Order.Customer.Address}}</p>{{end}}
        {{if .Order.Customer.City}}<p>{{.Order.Customer.City}} {{.Order.Customer.Zip}}</p>{{end}}
        <p>Email: {{.Order.Customer.Email}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td><strong>{{.Name}}</strong>{{if .Detail}}<br><small>{{.Detail}}</small>{{end}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.UnitPrice}}</td>
                <td class="num">${{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total-row">Total paid: ${{.Total}}</p>

    <div class="footer">
        <p>Mahalo for shopping with us!</p>
        <p>Questions about this order? Contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
