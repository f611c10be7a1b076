package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekathra/internal/registration/models"
	"ekathra/pkg/testutil"
)

const passphrase = "ekathra25"

func TestRegistrationFlow(t *testing.T) {
	testutil.Given(t, "a freshly started server", func(t *testing.T) {
		app, err := testutil.NewApp(passphrase)
		require.NoError(t, err)

		var rc *models.Receipt
		testutil.When(t, "Alice registers", func(t *testing.T) {
			rr := testutil.DoRequest(app, testutil.NewJSONRequest(t, http.MethodPost, "/registrations",
				models.RegisterRequest{Name: "Alice", Phone: "555-0100"}))
			require.Equal(t, http.StatusCreated, rr.Code)
			rc = testutil.UnmarshalResponse[models.Receipt](t, rr)

			testutil.Then(t, "the receipt carries the event date and venue", func(t *testing.T) {
				assert.Equal(t, "4 Nov 2025", rc.Event.Date)
				assert.Equal(t, "Hyatt Regency", rc.Event.Venue)
				assert.False(t, rc.ID.IsNil())
			})
		})

		testutil.When(t, "alice registers again with different case", func(t *testing.T) {
			rr := testutil.DoRequest(app, testutil.NewJSONRequest(t, http.MethodPost, "/registrations",
				models.RegisterRequest{Name: "alice", Phone: "555-0199"}))

			testutil.Then(t, "it is rejected as a duplicate", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
			})
		})

		testutil.When(t, "the admin lists and deletes the registration", func(t *testing.T) {
			req := testutil.WithAdminPassphrase(testutil.NewJSONRequest(t, http.MethodGet, "/admin/registrations", nil), passphrase)
			roster := testutil.UnmarshalResponse[models.RosterResponse](t, testutil.DoRequest(app, req))
			require.Equal(t, 1, roster.Count)
			entry := roster.Registrations[0]
			require.NotNil(t, rc)
			assert.Equal(t, rc.ID, entry.ID)

			del := testutil.WithAdminPassphrase(testutil.NewJSONRequest(t, http.MethodDelete,
				"/admin/registrations/"+entry.ID.String()+"?store_key="+string(entry.StoreKey), nil), passphrase)
			require.Equal(t, http.StatusNoContent, testutil.DoRequest(app, del).Code)

			testutil.Then(t, "the export contains only the header", func(t *testing.T) {
				req := testutil.WithAdminPassphrase(testutil.NewJSONRequest(t, http.MethodGet, "/admin/registrations/export.csv", nil), passphrase)
				rr := testutil.DoRequest(app, req)
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.Equal(t, "Name,Phone,Receipt ID\n", rr.Body.String())
			})
		})
	})
}

func TestAdminRequiresPassphrase(t *testing.T) {
	testutil.Given(t, "a running server", func(t *testing.T) {
		app, err := testutil.NewApp(passphrase)
		require.NoError(t, err)

		testutil.When(t, "the roster is requested with a wrong passphrase", func(t *testing.T) {
			req := testutil.WithAdminPassphrase(testutil.NewJSONRequest(t, http.MethodGet, "/admin/registrations", nil), "wrong")
			rr := testutil.DoRequest(app, req)

			testutil.Then(t, "it is unauthorized", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
			})
		})
	})
}
