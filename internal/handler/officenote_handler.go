package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/erp_office_note/internal/domain"
	"github.com/locvowork/erp_office_note/internal/logger"
	"github.com/locvowork/erp_office_note/internal/service"
	"github.com/locvowork/erp_office_note/internal/service/serviceutils"
)

const (
	msgNoUpload    = "Please upload the Excel file."
	msgNotXLSX     = "Please upload an .xlsx file."
	formFileField  = "file"
	indexTemplate  = "index.html"
	workbookSuffix = ".xlsx"
)

var errNotXLSX = errors.New(msgNotXLSX)

type pageData struct {
	Authenticated  bool
	PasswordFields []string
	LoginError     string
	UploadError    string
	Checked        bool
	Deficiencies   []string
	ReadError      string
	RenderError    string
	Download       template.URL
	Filename       string
}

type OfficeNoteHandler struct {
	svc  service.OfficeNoteService
	gate *GateHandler
}

func NewOfficeNoteHandler(svc service.OfficeNoteService, gate *GateHandler) *OfficeNoteHandler {
	return &OfficeNoteHandler{svc: svc, gate: gate}
}

func (h *OfficeNoteHandler) render(c echo.Context, code int, data pageData) error {
	data.Authenticated = h.gate.Authenticated(c)
	data.PasswordFields = passwordFields
	return c.Render(code, indexTemplate, data)
}

// PageHandler shows the gate or the upload form.
func (h *OfficeNoteHandler) PageHandler(c echo.Context) error {
	return h.render(c, http.StatusOK, pageData{})
}

// openUpload returns the uploaded workbook, or an error message fit for the page.
func openUpload(c echo.Context) (multipart.File, error) {
	fh, err := c.FormFile(formFileField)
	if err != nil {
		return nil, errors.New(msgNoUpload)
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), workbookSuffix) {
		return nil, errNotXLSX
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}

// CheckHandler lists the deficiencies of the uploaded workbook and offers the office note.
// A generation failure is shown next to the deficiency list, never instead of it.
func (h *OfficeNoteHandler) CheckHandler(c echo.Context) error {
	ctx := c.Request().Context()

	f, err := openUpload(c)
	if err != nil {
		return h.render(c, http.StatusBadRequest, pageData{UploadError: err.Error()})
	}
	defer f.Close()

	review, err := h.svc.Review(ctx, f)
	if err != nil {
		return h.render(c, http.StatusOK, pageData{ReadError: err.Error()})
	}

	data := pageData{Checked: true, Deficiencies: review.Deficiencies}
	if review.Rendered() {
		data.Download = dataURI(review)
		data.Filename = review.Filename
	} else {
		data.RenderError = review.RenderError.Error()
	}
	logger.InfoLog(ctx, "check: %d deficiencies, rendered=%t", len(review.Deficiencies), review.Rendered())
	return h.render(c, http.StatusOK, data)
}

// dataURI embeds the document in the download link so nothing is kept server-side.
func dataURI(r *domain.Review) template.URL {
	return template.URL("data:" + serviceutils.DocxMIME + ";base64," + base64.StdEncoding.EncodeToString(r.Document))
}

type deficiencyList struct {
	Count        int      `json:"count"`
	Deficiencies []string `json:"deficiencies"`
}

// DeficienciesHandler returns the deficiency list of the uploaded workbook as JSON.
func (h *OfficeNoteHandler) DeficienciesHandler(c echo.Context) error {
	f, err := openUpload(c)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid upload", err)
	}
	defer f.Close()

	list, err := h.svc.Deficiencies(c.Request().Context(), f)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusUnprocessableEntity, "Error reading Excel file", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Deficiencies listed", deficiencyList{Count: len(list), Deficiencies: list})
}

// GenerateHandler returns the office note of the uploaded workbook as a download.
func (h *OfficeNoteHandler) GenerateHandler(c echo.Context) error {
	f, err := openUpload(c)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid upload", err)
	}
	defer f.Close()

	review, err := h.svc.Review(c.Request().Context(), f)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusUnprocessableEntity, "Error reading Excel file", err)
	}
	if !review.Rendered() {
		return serviceutils.ResponseError(c, http.StatusUnprocessableEntity, "Error generating Office Note", review.RenderError)
	}
	return serviceutils.ResponseAttachment(c, serviceutils.DocxMIME, review.Filename, review.Document)
}

// HealthHandler reports liveness.
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
