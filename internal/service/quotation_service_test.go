package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/quotation-service/internal/locale"
	"github.com/nurpe/quotation-service/internal/model"
	"github.com/nurpe/quotation-service/internal/session"
	"github.com/nurpe/quotation-service/internal/submission"
	"github.com/nurpe/quotation-service/internal/wizard"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	forms   []model.FormState
	variant model.Variant
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, form model.FormState, variant model.Variant) error {
	f.mu.Lock()
	f.calls++
	f.forms = append(f.forms, form)
	f.variant = variant
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

type fakeGenerator struct {
	got model.Summary
	err error
}

func (f *fakeGenerator) Generate(summary model.Summary) ([]byte, error) {
	f.got = summary
	if f.err != nil {
		return nil, f.err
	}
	return []byte("document"), nil
}

func testReference() model.ReferenceData {
	return model.ReferenceData{
		TransportModes: []string{"Sea", "Air"},
		Incoterms:      []string{"EXW", "FOB"},
		Scopes:         []string{"Port to port"},
		QuotationTypes: []string{"FCL", "LCL"},
		Countries:      []model.Country{{Code: "FR", Name: "France"}, {Code: "KE", Name: "Kenya"}},
		Cities: []model.City{
			{Name: "Paris", CountryCode: "FR"},
			{Name: "Nairobi", CountryCode: "KE"},
		},
	}
}

type fixture struct {
	svc       *QuotationService
	store     *session.MemoryStore
	submitter *fakeSubmitter
	pdf       *fakeGenerator
	excel     *fakeGenerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	registry, err := locale.NewRegistry("fr",
		locale.French(locale.DefaultFrenchVariant()),
		locale.English(locale.DefaultEnglishVariant()),
	)
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		store:     session.NewMemoryStore(time.Hour),
		submitter: &fakeSubmitter{},
		pdf:       &fakeGenerator{},
		excel:     &fakeGenerator{},
	}
	f.svc = NewQuotationService(f.store, registry, testReference(), f.submitter, f.pdf, f.excel, zerolog.Nop())
	f.svc.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }
	return f
}

// fillToReview walks a French session to the review step.
func (f *fixture) fillToReview(t *testing.T, id uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	steps := [][][2]string{
		{
			{"transportMode", "Sea"}, {"incoterm", "FOB"}, {"scope", "Port to port"},
			{"originCountry", "FR"}, {"originCity", "Paris"}, {"originDate", "2026-11-02"},
			{"destinationCountry", "KE"}, {"destinationCity", "Nairobi"}, {"destinationDate", "2026-12-01"},
		},
		{{"QuotationType", "LCL"}, {"volume", "12"}, {"weight", "800"}},
		{
			{"firstName", "Ada"}, {"lastName", "Martin"}, {"phoneNumber", "612345678"},
			{"email", "ada@example.com"}, {"jobTitle", "Buyer"},
		},
		{
			{"companyName", "Acme Logistics"}, {"companyAddress", "1 rue du Port"},
			{"postalCode", "75001"}, {"companyCity", "Paris"}, {"companyCountry", "France"},
		},
	}
	for _, fields := range steps {
		for _, kv := range fields {
			if _, err := f.svc.ChangeField(ctx, id, kv[0], kv[1]); err != nil {
				t.Fatalf("change %s: %v", kv[0], err)
			}
		}
		if _, err := f.svc.Next(ctx, id); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	if _, err := f.svc.ToggleField(ctx, id, "declarationCertified", true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
}

func TestStartResolvesLocale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		code   string
		header string
		want   string
		phone  string
	}{
		{name: "explicit code", code: "en", header: "fr-FR", want: "en", phone: "+44"},
		{name: "header", header: "en-GB,en;q=0.9", want: "en", phone: "+44"},
		{name: "fallback", header: "de-DE", want: "fr", phone: "+33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := f.svc.Start(ctx, tt.code, tt.header)
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			if sess.View.Locale != tt.want || sess.View.Step != model.StepRouting {
				t.Errorf("unexpected view: locale=%q step=%d", sess.View.Locale, sess.View.Step)
			}
			state, _ := f.store.Get(sess.ID)
			if state.Form.PhoneCode != tt.phone {
				t.Errorf("expected phone code %q, got %q", tt.phone, state.Form.PhoneCode)
			}
		})
	}

	if _, err := f.svc.Start(ctx, "xx", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown locale, got %v", err)
	}
}

func TestErrorMapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Start(ctx, "fr", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.ChangeField(ctx, sess.ID, "nope", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown field, got %v", err)
	}
	if _, err := f.svc.ChangeField(ctx, sess.ID, "incoterm", "XYZ"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad option, got %v", err)
	}
	if _, err := f.svc.RemoveFile(ctx, sess.ID, 3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad index, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, sess.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition submitting from step 1, got %v", err)
	}

	_, err = f.svc.Next(ctx, sess.ID)
	var validationErr *wizard.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Step != model.StepRouting {
		t.Fatalf("expected a validation error for step 1, got %v", err)
	}
}

func TestSubmitSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Start(ctx, "fr", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.AddFiles(ctx, sess.ID, []model.Attachment{
		{Name: "invoice.pdf", ContentType: "application/pdf", Size: 3, Source: model.MemoryFile("abc")},
	}); err != nil {
		t.Fatal(err)
	}
	f.fillToReview(t, sess.ID)

	result, err := f.svc.Submit(ctx, sess.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.View.Step != model.StepConfirmation || result.View.Confirmation == nil {
		t.Fatalf("expected confirmation view, got step %d", result.View.Step)
	}
	if f.submitter.calls != 1 || !f.submitter.variant.Consent {
		t.Errorf("unexpected submitter calls=%d variant=%+v", f.submitter.calls, f.submitter.variant)
	}
	if got := f.submitter.forms[0]; got.CompanyName != "Acme Logistics" || len(got.Files) != 1 {
		t.Errorf("unexpected submitted form %+v", got)
	}

	state, _ := f.store.Get(sess.ID)
	if state.Form.CompanyName != "Acme Logistics" {
		t.Error("form must be kept until an explicit reset")
	}

	reset, err := f.svc.Reset(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reset.View.Step != model.StepRouting || reset.View.Locale != "fr" {
		t.Errorf("unexpected view after reset: %+v", reset.View)
	}
}

func TestSubmitRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Start(ctx, "fr", "")
	if err != nil {
		t.Fatal(err)
	}
	f.fillToReview(t, sess.ID)
	f.submitter.err = &submission.RejectedError{StatusCode: 500, Body: "workflow offline"}

	result, err := f.svc.Submit(ctx, sess.ID)
	var rejected *submission.RejectedError
	if !errors.As(err, &rejected) || rejected.Body != "workflow offline" {
		t.Fatalf("expected the rejection to reach the caller, got %v", err)
	}
	if result == nil || result.View.Step != model.StepReview || result.View.Error != "workflow offline" {
		t.Fatalf("expected review step with the raw body, got %+v", result)
	}

	f.submitter.err = nil
	if _, err := f.svc.Submit(ctx, sess.ID); err != nil {
		t.Fatalf("resubmission should be possible: %v", err)
	}
	if f.submitter.calls != 2 {
		t.Errorf("expected two attempts, got %d", f.submitter.calls)
	}
}

func TestSubmitRefusesConcurrentSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Start(ctx, "fr", "")
	if err != nil {
		t.Fatal(err)
	}
	f.fillToReview(t, sess.ID)

	f.submitter.block = make(chan struct{})
	f.submitter.entered = make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, sess.ID)
		done <- err
	}()
	<-f.submitter.entered

	if _, err := f.svc.Submit(ctx, sess.ID); !errors.Is(err, ErrSubmissionInProgress) {
		t.Errorf("expected ErrSubmissionInProgress, got %v", err)
	}
	if _, err := f.svc.Reset(ctx, sess.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected reset to be refused while submitting, got %v", err)
	}
	view, err := f.svc.Get(ctx, sess.ID)
	if err != nil || !view.View.Submitting {
		t.Errorf("expected submitting view, got %+v, %v", view, err)
	}

	close(f.submitter.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if f.submitter.calls != 1 {
		t.Errorf("expected one webhook call, got %d", f.submitter.calls)
	}
}

func TestSubmitOutlivesCallerCancellation(t *testing.T) {
	f := newFixture(t)
	received := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := submission.NewWebhookClient(submission.WebhookConfig{URL: server.URL, Secret: "s3cret", Timeout: 5 * time.Second})
	pipeline := submission.NewPipeline(submission.NewEncoder(2), client, zerolog.Nop())
	f.svc.submitter = pipeline

	sess, err := f.svc.Start(context.Background(), "fr", "")
	if err != nil {
		t.Fatal(err)
	}
	f.fillToReview(t, sess.ID)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, sess.ID)
		done <- err
	}()
	<-received
	cancel()
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}
	view, err := f.svc.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.View.Step != model.StepConfirmation || view.View.Status != wizard.StatusCompleted {
		t.Errorf("expected completed confirmation, got step %d status %s", view.View.Step, view.View.Status)
	}
}

func TestDownloadFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Start(ctx, "fr", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.AddFiles(ctx, sess.ID, []model.Attachment{
		{Name: "a.txt", ContentType: "text/plain", Size: 1, Source: model.MemoryFile("a")},
		{Name: "b.bin", Size: 2, Source: model.MemoryFile("bb")},
	}); err != nil {
		t.Fatal(err)
	}

	download, err := f.svc.DownloadFile(ctx, sess.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if download.FileName != "b.bin" || string(download.Content) != "bb" || download.ContentType != "application/octet-stream" {
		t.Errorf("unexpected download %+v", download)
	}
	if _, err := f.svc.DownloadFile(ctx, sess.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.AddFiles(ctx, sess.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an empty upload, got %v", err)
	}
}

func TestSummaryExports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Start(ctx, "fr", "")
	if err != nil {
		t.Fatal(err)
	}
	f.fillToReview(t, sess.ID)

	pdfDoc, err := f.svc.SummaryPDF(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if pdfDoc.FileName != "quotation-Acme-Logistics-20261016.pdf" || pdfDoc.ContentType != "application/pdf" {
		t.Errorf("unexpected pdf download %+v", pdfDoc)
	}
	if len(f.pdf.got.Sections) == 0 {
		t.Error("expected the summary to reach the pdf generator")
	}

	xlsx, err := f.svc.SummaryXLSX(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(xlsx.FileName, ".xlsx") {
		t.Errorf("unexpected xlsx name %q", xlsx.FileName)
	}

	f.excel.err = errors.New("disk full")
	if _, err := f.svc.SummaryXLSX(ctx, sess.ID); err == nil {
		t.Error("expected generator errors to propagate")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Acme Logistics": "Acme-Logistics",
		"  ":             "",
		"a/b_c-d":        "a-b_c-d",
		"Société":        "Soci-t",
	}
	for in, want := range tests {
		if got := sanitizeFileName(in); got != want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
