package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/quotation-service/internal/locale"
	"github.com/nurpe/quotation-service/internal/model"
	"github.com/nurpe/quotation-service/internal/session"
	"github.com/nurpe/quotation-service/internal/submission"
	"github.com/nurpe/quotation-service/internal/wizard"
)

type Store interface {
	Create(state wizard.State) uuid.UUID
	Get(id uuid.UUID) (wizard.State, error)
	Update(id uuid.UUID, fn func(wizard.State) (wizard.State, error)) (wizard.State, error)
	Delete(id uuid.UUID)
}

type Submitter interface {
	Submit(ctx context.Context, form model.FormState, variant model.Variant) error
}

type SummaryGenerator interface {
	Generate(summary model.Summary) ([]byte, error)
}

// Session is a wizard session as seen by a client.
type Session struct {
	ID   uuid.UUID
	View wizard.View
}

type Download struct {
	FileName    string
	ContentType string
	Content     []byte
}

type QuotationService struct {
	store     Store
	locales   *locale.Registry
	machines  map[string]*wizard.Machine
	submitter Submitter
	pdf       SummaryGenerator
	excel     SummaryGenerator
	log       zerolog.Logger
	now       func() time.Time
}

func NewQuotationService(
	store Store,
	locales *locale.Registry,
	reference model.ReferenceData,
	submitter Submitter,
	pdf SummaryGenerator,
	excel SummaryGenerator,
	log zerolog.Logger,
) *QuotationService {
	machines := make(map[string]*wizard.Machine)
	for _, code := range locales.Codes() {
		loc, _ := locales.Lookup(code)
		machines[code] = wizard.NewMachine(loc.Variant, reference)
	}
	return &QuotationService{
		store:     store,
		locales:   locales,
		machines:  machines,
		submitter: submitter,
		pdf:       pdf,
		excel:     excel,
		log:       log,
		now:       time.Now,
	}
}

// Start opens a new session. An explicit locale code wins over the
// Accept-Language header.
func (s *QuotationService) Start(ctx context.Context, localeCode, acceptLanguage string) (*Session, error) {
	loc, err := s.locales.Resolve(localeCode, acceptLanguage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	machine := s.machines[loc.Code]
	state := machine.NewState()
	id := s.store.Create(state)

	s.log.Info().Str("session_id", id.String()).Str("locale", loc.Code).Msg("quotation session started")
	return &Session{ID: id, View: machine.Render(state, loc.Labels)}, nil
}

func (s *QuotationService) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	state, err := s.store.Get(id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return s.session(id, state), nil
}

func (s *QuotationService) ChangeField(ctx context.Context, id uuid.UUID, name, value string) (*Session, error) {
	return s.apply(id, wizard.ChangeField{Name: name, Value: value})
}

func (s *QuotationService) ToggleField(ctx context.Context, id uuid.UUID, name string, checked bool) (*Session, error) {
	return s.apply(id, wizard.ToggleField{Name: name, Checked: checked})
}

func (s *QuotationService) AddFiles(ctx context.Context, id uuid.UUID, files []model.Attachment) (*Session, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files", ErrInvalidInput)
	}
	return s.apply(id, wizard.AddFiles{Files: files})
}

func (s *QuotationService) RemoveFile(ctx context.Context, id uuid.UUID, index int) (*Session, error) {
	return s.apply(id, wizard.RemoveFile{Index: index})
}

func (s *QuotationService) Next(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.apply(id, wizard.Next{})
}

func (s *QuotationService) Back(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.apply(id, wizard.Back{})
}

func (s *QuotationService) Reset(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.apply(id, wizard.Reset{})
}

// DownloadFile returns the bytes of an attached file as they were uploaded.
func (s *QuotationService) DownloadFile(ctx context.Context, id uuid.UUID, index int) (*Download, error) {
	state, err := s.store.Get(id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if index < 0 || index >= len(state.Form.Files) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, wizard.ErrFileIndex)
	}

	file := state.Form.Files[index]
	if file.Source == nil {
		return nil, fmt.Errorf("file %q has no content", file.Name)
	}
	reader, err := file.Source.Open()
	if err != nil {
		return nil, fmt.Errorf("open file %q: %w", file.Name, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", file.Name, err)
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{FileName: file.Name, ContentType: contentType, Content: content}, nil
}

// Submit sends the session's form to the webhook. The session is marked as
// submitting before the network call so a concurrent submit is refused.
func (s *QuotationService) Submit(ctx context.Context, id uuid.UUID) (*Session, error) {
	var machine *wizard.Machine
	state, err := s.store.Update(id, func(current wizard.State) (wizard.State, error) {
		if current.Status == wizard.StatusSubmitting {
			return current, ErrSubmissionInProgress
		}
		machine = s.machine(current)
		return machine.Apply(current, wizard.BeginSubmit{})
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	log := s.log.With().Str("session_id", id.String()).Logger()
	started := s.now()
	submitErr := s.submitter.Submit(context.WithoutCancel(ctx), state.Form, machine.Variant())

	var outcome wizard.Action = wizard.SubmitSucceeded{}
	if submitErr != nil {
		outcome = wizard.SubmitFailed{Message: failureMessage(submitErr)}
	}
	final, err := s.store.Update(id, func(current wizard.State) (wizard.State, error) {
		return machine.Apply(current, outcome)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	if submitErr != nil {
		log.Warn().Err(submitErr).Dur("elapsed", s.now().Sub(started)).Msg("quotation submission failed")
		return s.session(id, final), fmt.Errorf("submit quotation: %w", submitErr)
	}
	log.Info().Int("files", len(final.Form.Files)).Dur("elapsed", s.now().Sub(started)).Msg("quotation submitted")
	return s.session(id, final), nil
}

func (s *QuotationService) SummaryPDF(ctx context.Context, id uuid.UUID) (*Download, error) {
	return s.summary(id, s.pdf, "pdf", "application/pdf")
}

func (s *QuotationService) SummaryXLSX(ctx context.Context, id uuid.UUID) (*Download, error) {
	return s.summary(id, s.excel, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (s *QuotationService) summary(id uuid.UUID, generator SummaryGenerator, ext, contentType string) (*Download, error) {
	state, err := s.store.Get(id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	summary := s.machine(state).Summarize(state.Form, s.locale(state).Labels)

	content, err := generator.Generate(summary)
	if err != nil {
		return nil, fmt.Errorf("generate %s summary: %w", ext, err)
	}
	return &Download{
		FileName:    s.buildFileName(state.Form, ext),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *QuotationService) apply(id uuid.UUID, action wizard.Action) (*Session, error) {
	state, err := s.store.Update(id, func(current wizard.State) (wizard.State, error) {
		return s.machine(current).Apply(current, action)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.session(id, state), nil
}

func (s *QuotationService) session(id uuid.UUID, state wizard.State) *Session {
	return &Session{ID: id, View: s.machine(state).Render(state, s.locale(state).Labels)}
}

func (s *QuotationService) locale(state wizard.State) locale.Locale {
	if loc, ok := s.locales.Lookup(state.Locale); ok {
		return loc
	}
	return s.locales.Default()
}

func (s *QuotationService) machine(state wizard.State) *wizard.Machine {
	return s.machines[s.locale(state).Code]
}

func (s *QuotationService) mapError(err error) error {
	var validationErr *wizard.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return err
	case errors.Is(err, ErrSubmissionInProgress):
		return err
	case errors.Is(err, session.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, wizard.ErrInvalidTransition):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrInvalidOption),
		errors.Is(err, wizard.ErrFileIndex):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}

func mapStoreError(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// failureMessage is what the review step shows after a failed submit: the
// endpoint's raw answer when there is one.
func failureMessage(err error) string {
	var rejected *submission.RejectedError
	if errors.As(err, &rejected) && rejected.Body != "" {
		return rejected.Body
	}
	return err.Error()
}

func (s *QuotationService) buildFileName(form model.FormState, ext string) string {
	company := sanitizeFileName(form.CompanyName)
	if company == "" {
		company = "request"
	}
	return fmt.Sprintf("quotation-%s-%s.%s", company, s.now().Format("20060102"), ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
