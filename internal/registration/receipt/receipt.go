// Package receipt renders the registrant-facing receipt as HTML, a QR code
// PNG, and a single-page PDF.
package receipt

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"ekathra/internal/registration/models"
	"ekathra/pkg/domain"
)

//go:embed templates/receipt.html
var templates embed.FS

// DejaVu Sans covers Latin, Greek, Cyrillic and a few more scripts. Events
// whose attendees write names in other scripts pass a covering face to
// WithFont.
var (
	//go:embed fonts/DejaVuSans.ttf
	defaultFont []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	defaultBoldFont []byte
)

const (
	PDFContentType = "application/pdf"
	QRContentType  = "image/png"

	defaultQRSize = 256
	fontFamily    = "receipt"
)

var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// FromAttendee builds the receipt view. The store key is deliberately absent.
func FromAttendee(a *models.Attendee, event models.Event) *models.Receipt {
	return &models.Receipt{
		Name:  a.Name,
		Phone: a.Phone,
		ID:    a.ID,
		Event: event,
	}
}

// PDFFilename is the download name for a registrant's receipt.
// Path separators in the name are replaced so the result stays a bare
// filename when saved.
func PDFFilename(name string) string {
	return "EKATHRA_Receipt_" + filenameReplacer.Replace(name) + ".pdf"
}

// Renderer turns receipts into bytes. The zero value is not usable; call New.
type Renderer struct {
	qrSize   int
	page     *template.Template
	font     []byte
	boldFont []byte
	compress bool
}

type Option func(*Renderer)

// WithQRSize sets the QR image edge length in pixels.
func WithQRSize(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.qrSize = px
		}
	}
}

// WithFont replaces the embedded PDF typeface with TrueType font data. A nil
// bold face reuses regular for labels and headings.
func WithFont(regular, bold []byte) Option {
	return func(r *Renderer) {
		if len(regular) == 0 {
			return
		}
		r.font = regular
		r.boldFont = bold
		if len(bold) == 0 {
			r.boldFont = regular
		}
	}
}

func New(opts ...Option) (*Renderer, error) {
	page, err := template.ParseFS(templates, "templates/receipt.html")
	if err != nil {
		return nil, fmt.Errorf("parse receipt template: %w", err)
	}
	r := &Renderer{
		qrSize:   defaultQRSize,
		page:     page,
		font:     defaultFont,
		boldFont: defaultBoldFont,
		compress: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := r.newDocument(); err != nil {
		return nil, err
	}
	return r, nil
}

// QRCode encodes the receipt ID string as a PNG QR code.
func (r *Renderer) QRCode(id domain.ReceiptID) ([]byte, error) {
	if id.IsNil() {
		return nil, fmt.Errorf("qr code: receipt id is required")
	}
	png, err := qrcode.Encode(id.String(), qrcode.Medium, r.qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

type htmlView struct {
	*models.Receipt
	QR template.URL
}

// HTML writes the on-screen receipt with the QR code inlined as a data URI.
func (r *Renderer) HTML(w io.Writer, rc *models.Receipt) error {
	png, err := r.QRCode(rc.ID)
	if err != nil {
		return err
	}
	view := htmlView{
		Receipt: rc,
		QR:      template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}
	if err := r.page.Execute(w, view); err != nil {
		return fmt.Errorf("render receipt html: %w", err)
	}
	return nil
}

// PDF renders a single A4 page: event header, attendee fields, QR image.
// Text is set in a UTF-8 TrueType face so names outside Latin-1 survive.
func (r *Renderer) PDF(rc *models.Receipt) ([]byte, error) {
	png, err := r.QRCode(rc.ID)
	if err != nil {
		return nil, err
	}

	pdf, err := r.newDocument()
	if err != nil {
		return nil, err
	}
	pdf.SetTitle("Registration Receipt", true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, rc.Event.Name, "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 8, "Registration Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	fields := []struct{ label, value string }{
		{"Name", rc.Name},
		{"Phone", rc.Phone},
		{"Receipt ID", rc.ID.String()},
		{"Date", rc.Event.Date},
		{"Venue", rc.Event.Venue},
	}
	for _, f := range fields {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(40, 9, f.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 12)
		pdf.CellFormat(0, 9, f.value, "", 1, "L", false, 0, "")
	}

	const qrMM = 60.0
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("qr", (pageW-qrMM)/2, pdf.GetY()+10, qrMM, qrMM, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// newDocument starts an A4 document with both receipt faces loaded.
// fpdf only reports an unparsable font once it is selected, so both
// styles are selected here.
func (r *Renderer) newDocument() (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.AddUTF8FontFromBytes(fontFamily, "", r.font)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", r.boldFont)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetFont(fontFamily, "", 12)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load receipt font: %w", err)
	}
	return pdf, nil
}
