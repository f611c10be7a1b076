package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"ekathra/internal/registration/models"
	"ekathra/pkg/platform/middleware/admin"
	"ekathra/pkg/testutil"
)

// TestContext carries per-scenario state between steps.
type TestContext struct {
	app        http.Handler
	passphrase string
	response   *httptest.ResponseRecorder
	receipt    *models.Receipt
	roster     *models.RosterResponse
}

// Reset starts a fresh in-process server.
func (tc *TestContext) Reset(passphrase string) error {
	app, err := testutil.NewApp(passphrase)
	if err != nil {
		return err
	}
	*tc = TestContext{app: app, passphrase: passphrase}
	return nil
}

func (tc *TestContext) do(method, path string, body any, asAdmin bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asAdmin {
		req.Header.Set(admin.Header, tc.passphrase)
	}
	tc.response = httptest.NewRecorder()
	tc.app.ServeHTTP(tc.response, req)
	return nil
}

func (tc *TestContext) decode(v any) error {
	if err := json.Unmarshal(tc.response.Body.Bytes(), v); err != nil {
		return fmt.Errorf("decode response %q: %w", tc.response.Body.String(), err)
	}
	return nil
}
