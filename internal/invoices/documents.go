package invoices

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
	"github.com/inventory-pro/dashboard/report"
)

const printTemplate = "pages/invoice_print.html"

// PDFRenderer converts an HTML document to PDF bytes.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// PrintView is the data behind the printable invoice.
type PrintView struct {
	Invoice   Invoice
	Number    string
	Customer  string
	Status    string
	AutoPrint bool
}

// DocumentHandler serves the printable and PDF forms of an invoice.
type DocumentHandler struct {
	logger    *slog.Logger
	responder *view.Responder
	templates *view.Engine
	api       *apiclient.Client
	pdf       PDFRenderer
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(logger *slog.Logger, responder *view.Responder, templates *view.Engine, api *apiclient.Client, pdf PDFRenderer) *DocumentHandler {
	return &DocumentHandler{logger: logger, responder: responder, templates: templates, api: api, pdf: pdf}
}

// MountRoutes registers the document routes next to the invoice list.
func (h *DocumentHandler) MountRoutes(r chi.Router) {
	r.Get("/{id}/print", h.Print)
	r.Get("/{id}/pdf", h.PDF)
}

func (h *DocumentHandler) Print(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	data := h.printView(inv)
	data.AutoPrint = r.URL.Query().Get("autoprint") == "1"
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Execute(w, printTemplate, view.TemplateData{Title: "Invoice " + data.Number, Data: data}); err != nil {
		h.logger.Error("render invoice print", slog.Any("error", err))
	}
}

func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	data := h.printView(inv)
	var buf bytes.Buffer
	if err := h.templates.Execute(&buf, printTemplate, view.TemplateData{Title: "Invoice " + data.Number, Data: data}); err != nil {
		h.logger.Error("render invoice document", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), buf.String())
	if errors.Is(err, report.ErrDisabled) {
		h.responder.RedirectWithFlash(w, r, "/invoices/"+chi.URLParam(r, "id")+"/print", "info", "PDF export is not configured. Use your browser's print dialog instead.")
		return
	}
	if err != nil {
		h.logger.Error("render invoice pdf", slog.Any("error", err))
		h.responder.RedirectWithFlash(w, r, "/invoices", "error", "Could not generate the PDF. Try again later.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName(data.Number)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *DocumentHandler) load(w http.ResponseWriter, r *http.Request) (Invoice, bool) {
	inv, err := NewGateway(h.api.WithToken(shared.TokenFromContext(r.Context()))).Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		return inv, true
	case errors.Is(err, apiclient.ErrUnauthorized):
		h.responder.SignInAgain(w, r)
	case errors.Is(err, apiclient.ErrNotFound):
		h.responder.NotFound(w, r)
	default:
		h.logger.Warn("load invoice", slog.Any("error", err))
		h.responder.RedirectWithFlash(w, r, "/invoices", "error", listeditor.Message(err))
	}
	return Invoice{}, false
}

func (h *DocumentHandler) printView(inv Invoice) PrintView {
	return PrintView{
		Invoice:  inv,
		Number:   inv.DisplayNumber(),
		Customer: inv.CustomerLabel(),
		Status:   strings.ToUpper(string(inv.StatusOrDefault())),
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func fileName(number string) string {
	cleaned := strings.Trim(unsafeFileChars.ReplaceAllString(number, "-"), "-")
	if cleaned == "" {
		cleaned = "document"
	}
	return "invoice-" + cleaned + ".pdf"
}
