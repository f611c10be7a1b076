package e2e

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"ekathra/internal/registration/models"
)

const defaultPassphrase = "ekathra25"

// RegisterSteps binds every step definition to tc.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the registration server is running$`, func() error {
		return tc.Reset(defaultPassphrase)
	})

	ctx.Step(`^"([^"]*)" registers with phone "([^"]*)"$`, tc.register)
	ctx.Step(`^the response status should be (\d+)$`, tc.statusShouldBe)
	ctx.Step(`^the error code should be "([^"]*)"$`, tc.errorCodeShouldBe)
	ctx.Step(`^the receipt should show date "([^"]*)" and venue "([^"]*)"$`, tc.receiptShouldShow)
	ctx.Step(`^the receipt PDF should download as "([^"]*)"$`, tc.pdfShouldDownloadAs)

	ctx.Step(`^the admin logs in with passphrase "([^"]*)"$`, tc.adminLogin)
	ctx.Step(`^the admin lists registrations$`, tc.adminList)
	ctx.Step(`^the roster should contain (\d+) registrations?$`, tc.rosterShouldContain)
	ctx.Step(`^the admin deletes the first registration$`, tc.adminDeleteFirst)
	ctx.Step(`^the admin exports registrations$`, tc.adminExport)
	ctx.Step(`^the export should equal the header only$`, tc.exportShouldBeHeaderOnly)
}

func (tc *TestContext) register(ctx context.Context, name, phone string) error {
	if err := tc.do(http.MethodPost, "/registrations", models.RegisterRequest{Name: name, Phone: phone}, false); err != nil {
		return err
	}
	if tc.response.Code == http.StatusCreated {
		tc.receipt = &models.Receipt{}
		return tc.decode(tc.receipt)
	}
	return nil
}

func (tc *TestContext) statusShouldBe(want int) error {
	if tc.response.Code != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, tc.response.Code, tc.response.Body.String())
	}
	return nil
}

func (tc *TestContext) errorCodeShouldBe(want string) error {
	var resp struct {
		Error string `json:"error"`
	}
	if err := tc.decode(&resp); err != nil {
		return err
	}
	if resp.Error != want {
		return fmt.Errorf("expected error %q, got %q", want, resp.Error)
	}
	return nil
}

func (tc *TestContext) receiptShouldShow(date, venue string) error {
	if tc.receipt == nil {
		return fmt.Errorf("no receipt issued")
	}
	if tc.receipt.Event.Date != date || tc.receipt.Event.Venue != venue {
		return fmt.Errorf("receipt shows %q at %q", tc.receipt.Event.Date, tc.receipt.Event.Venue)
	}
	return nil
}

func (tc *TestContext) pdfShouldDownloadAs(filename string) error {
	if tc.receipt == nil {
		return fmt.Errorf("no receipt issued")
	}
	if err := tc.do(http.MethodGet, "/receipts/"+tc.receipt.ID.String()+"/pdf", nil, false); err != nil {
		return err
	}
	if err := tc.statusShouldBe(http.StatusOK); err != nil {
		return err
	}
	want := "attachment; filename=" + filename
	if got := tc.response.Header().Get("Content-Disposition"); got != want {
		return fmt.Errorf("expected Content-Disposition %q, got %q", want, got)
	}
	return nil
}

func (tc *TestContext) adminLogin(passphrase string) error {
	return tc.do(http.MethodPost, "/admin/login", models.LoginRequest{Passphrase: passphrase}, false)
}

func (tc *TestContext) adminList() error {
	if err := tc.do(http.MethodGet, "/admin/registrations", nil, true); err != nil {
		return err
	}
	if err := tc.statusShouldBe(http.StatusOK); err != nil {
		return err
	}
	tc.roster = &models.RosterResponse{}
	return tc.decode(tc.roster)
}

func (tc *TestContext) rosterShouldContain(n int) error {
	if tc.roster == nil {
		return fmt.Errorf("roster not fetched")
	}
	if tc.roster.Count != n || len(tc.roster.Registrations) != n {
		return fmt.Errorf("expected %d registrations, got %d", n, tc.roster.Count)
	}
	return nil
}

func (tc *TestContext) adminDeleteFirst() error {
	if tc.roster == nil || len(tc.roster.Registrations) == 0 {
		return fmt.Errorf("nothing to delete")
	}
	first := tc.roster.Registrations[0]
	path := "/admin/registrations/" + first.ID.String() + "?store_key=" + string(first.StoreKey)
	return tc.do(http.MethodDelete, path, nil, true)
}

func (tc *TestContext) adminExport() error {
	return tc.do(http.MethodGet, "/admin/registrations/export.csv", nil, true)
}

func (tc *TestContext) exportShouldBeHeaderOnly() error {
	if err := tc.statusShouldBe(http.StatusOK); err != nil {
		return err
	}
	if got := tc.response.Body.String(); got != "Name,Phone,Receipt ID\n" {
		return fmt.Errorf("unexpected export %q", got)
	}
	return nil
}
