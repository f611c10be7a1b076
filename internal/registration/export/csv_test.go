package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekathra/internal/registration/models"
	"ekathra/pkg/domain"
)

func TestCSV(t *testing.T) {
	t.Run("empty roster yields header only", func(t *testing.T) {
		out, err := CSV(nil)
		require.NoError(t, err)
		assert.Equal(t, "Name,Phone,Receipt ID\n", string(out))
	})

	t.Run("rows follow roster order", func(t *testing.T) {
		a := &models.Attendee{Name: "Alice", Phone: "555-0100", ID: domain.ReceiptID(uuid.MustParse("11111111-1111-4111-8111-111111111111"))}
		b := &models.Attendee{Name: "Bob", Phone: "555-0101", ID: domain.ReceiptID(uuid.MustParse("22222222-2222-4222-8222-222222222222"))}

		out, err := CSV([]*models.Attendee{a, b})
		require.NoError(t, err)
		assert.Equal(t,
			"Name,Phone,Receipt ID\n"+
				"Alice,555-0100,11111111-1111-4111-8111-111111111111\n"+
				"Bob,555-0101,22222222-2222-4222-8222-222222222222\n",
			string(out))
	})

	t.Run("quotes fields with commas and quotes", func(t *testing.T) {
		id := domain.ReceiptID(uuid.MustParse("33333333-3333-4333-8333-333333333333"))
		out, err := CSV([]*models.Attendee{
			{Name: "A,B", Phone: "1", ID: id},
			{Name: `Say "hi"`, Phone: "2", ID: id},
		})
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, `"A,B",1,`+id.String(), lines[1])
		assert.Equal(t, `"Say ""hi""",2,`+id.String(), lines[2])

		rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "A,B", rows[1][0])
		assert.Equal(t, `Say "hi"`, rows[2][0])
	})
}
