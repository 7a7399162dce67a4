package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/locvowork/erp_office_note/internal/checklist"
	"github.com/locvowork/erp_office_note/internal/docx"
	"github.com/locvowork/erp_office_note/internal/domain"
	"github.com/locvowork/erp_office_note/internal/logger"
	"github.com/locvowork/erp_office_note/internal/metrics"
	"github.com/locvowork/erp_office_note/internal/rules"
	"github.com/locvowork/erp_office_note/internal/workbook"
)

// ReadError marks a failure to read the uploaded workbook or its deficiency list.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// RenderError marks a failure to generate the office note.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// IsReadError reports whether err belongs to the workbook-read failure domain.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

type OfficeNoteService interface {
	// Review reads the deficiency list and then tries to generate the office note. A
	// returned error is always a *ReadError; generation failures are reported in
	// Review.RenderError so the deficiency list survives them.
	Review(ctx context.Context, upload io.Reader) (*domain.Review, error)
	Deficiencies(ctx context.Context, upload io.Reader) ([]string, error)
	// Generate returns the rendered office note or the first failure of either domain.
	Generate(ctx context.Context, upload io.Reader) ([]byte, error)
}

type Options struct {
	TemplatePath string
	Filename     string
	Layout       *checklist.Layout
	Engine       *rules.Engine
	Style        *docx.Style
	Metrics      *metrics.Metrics
}

type officeNoteService struct {
	templatePath string
	filename     string
	layout       *checklist.Layout
	engine       *rules.Engine
	style        docx.Style
	metrics      *metrics.Metrics
}

func NewOfficeNoteService(opts Options) OfficeNoteService {
	s := &officeNoteService{
		templatePath: opts.TemplatePath,
		filename:     opts.Filename,
		layout:       opts.Layout,
		engine:       opts.Engine,
		style:        docx.DefaultStyle(),
		metrics:      opts.Metrics,
	}
	if s.layout == nil {
		s.layout = checklist.DefaultLayout()
	}
	if s.engine == nil {
		s.engine = rules.NewEngine()
	}
	if opts.Style != nil {
		s.style = *opts.Style
	}
	if s.filename == "" {
		s.filename = "OfficeNote.docx"
	}
	return s
}

func (s *officeNoteService) open(ctx context.Context, upload io.Reader) (*workbook.Workbook, []string, error) {
	wb, err := workbook.Open(upload)
	if err == nil {
		var deficiencies []string
		deficiencies, err = checklist.ReadDeficiencies(wb, s.layout)
		if err == nil {
			s.metrics.ObserveWorkbook(len(deficiencies), nil)
			logger.InfoLog(ctx, "workbook read: %d deficiencies", len(deficiencies))
			return wb, deficiencies, nil
		}
		wb.Close()
	}
	s.metrics.ObserveWorkbook(0, err)
	logger.WarnLog(ctx, "failed to read workbook: %v", err)
	return nil, nil, &ReadError{Err: err}
}

func (s *officeNoteService) Deficiencies(ctx context.Context, upload io.Reader) ([]string, error) {
	wb, deficiencies, err := s.open(ctx, upload)
	if err != nil {
		return nil, err
	}
	wb.Close()
	return deficiencies, nil
}

func (s *officeNoteService) Review(ctx context.Context, upload io.Reader) (*domain.Review, error) {
	wb, deficiencies, err := s.open(ctx, upload)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	review := &domain.Review{Deficiencies: deficiencies, Filename: s.filename}
	doc, err := s.render(ctx, wb)
	if err != nil {
		review.RenderError = &RenderError{Err: err}
		return review, nil
	}
	review.Document = doc
	return review, nil
}

func (s *officeNoteService) Generate(ctx context.Context, upload io.Reader) ([]byte, error) {
	review, err := s.Review(ctx, upload)
	if err != nil {
		return nil, err
	}
	if review.RenderError != nil {
		return nil, review.RenderError
	}
	return review.Document, nil
}

// render runs extraction, rules and the template pass; every step belongs to the
// generation failure domain.
func (s *officeNoteService) render(ctx context.Context, wb *workbook.Workbook) (out []byte, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveRender(time.Since(start), err)
		if err != nil {
			logger.ErrorLog(ctx, "failed to generate office note: %v", err)
			return
		}
		logger.InfoLog(ctx, "office note generated: %d bytes in %s", len(out), time.Since(start))
	}()

	tables, err := checklist.ExtractTables(wb, s.layout)
	if err != nil {
		return nil, fmt.Errorf("extract tables: %w", err)
	}
	named, err := checklist.MergeNamed(wb, s.layout)
	if err != nil {
		return nil, fmt.Errorf("extract named values: %w", err)
	}
	vars := s.engine.Apply(named)
	logger.DebugLog(ctx, "rendering with %d variables", len(vars))

	doc, err := docx.Load(s.templatePath)
	if err != nil {
		return nil, err
	}
	doc.Style = s.style
	if err := doc.Render(vars, tables); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return data, nil
}
