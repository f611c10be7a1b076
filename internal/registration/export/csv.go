// Package export renders the roster as a CSV download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"ekathra/internal/registration/models"
)

const (
	// Filename is the suggested download name for an export.
	Filename    = "ekathra_registrations.csv"
	ContentType = "text/csv"
)

var header = []string{"Name", "Phone", "Receipt ID"}

// WriteCSV writes the header and one row per attendee in the given order.
// Fields containing commas, quotes, or newlines are quoted per RFC 4180.
func WriteCSV(w io.Writer, records []*models.Attendee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Name, r.Phone, r.ID.String()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSV is WriteCSV into a byte slice.
func CSV(records []*models.Attendee) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
