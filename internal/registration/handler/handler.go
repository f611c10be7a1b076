package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"ekathra/internal/platform/blob"
	"ekathra/internal/registration/export"
	"ekathra/internal/registration/models"
	"ekathra/internal/registration/receipt"
	"ekathra/pkg/domain"
	dErrors "ekathra/pkg/domain-errors"
	"ekathra/pkg/platform/httputil"
	"ekathra/pkg/platform/middleware/admin"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock_service.go -package=mocks Service

// Service defines the registration and admin operations the routes need.
type Service interface {
	Event() models.Event
	Register(ctx context.Context, name, phone string) (*models.Receipt, error)
	Receipt(ctx context.Context, id domain.ReceiptID) (*models.Receipt, error)
	List(ctx context.Context) ([]*models.Attendee, error)
	Delete(ctx context.Context, id domain.ReceiptID, key models.StoreKey) error
	ExportCSV(ctx context.Context) ([]byte, error)
	ArchiveReceiptPDF(ctx context.Context, id domain.ReceiptID, pdf []byte)
	ArchivedFiles(ctx context.Context, prefix string) ([]blob.Info, error)
	OpenArchived(ctx context.Context, key string) (blob.Info, io.ReadCloser, error)
}

// Handler serves the attendee and admin endpoints.
type Handler struct {
	svc      Service
	renderer *receipt.Renderer
	gate     *admin.Gate
	logger   *slog.Logger
}

// New creates a registration Handler.
func New(svc Service, renderer *receipt.Renderer, gate *admin.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, renderer: renderer, gate: gate, logger: logger}
}

// Register mounts public routes on r and admin routes behind the passphrase gate.
func (h *Handler) Register(r chi.Router) {
	r.Get("/event", h.handleEvent)
	r.Post("/registrations", h.handleRegister)
	r.Route("/receipts/{id}", func(r chi.Router) {
		r.Get("/", h.handleReceipt)
		r.Get("/view", h.handleReceiptView)
		r.Get("/qr.png", h.handleReceiptQR)
		r.Get("/pdf", h.handleReceiptPDF)
	})

	r.Post("/admin/login", h.handleAdminLogin)
	r.Group(func(r chi.Router) {
		r.Use(admin.RequirePassphrase(h.gate, h.logger))
		r.Get("/admin/registrations", h.handleList)
		r.Get("/admin/registrations/export.csv", h.handleExport)
		r.Delete("/admin/registrations/{id}", h.handleDelete)
		r.Get("/admin/archive", h.handleArchiveList)
		r.Get("/admin/archive/*", h.handleArchiveGet)
	})
}

func (h *Handler) handleEvent(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.svc.Event())
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rc, err := h.svc.Register(ctx, req.Name, req.Phone)
	if err != nil {
		h.writeServiceError(ctx, w, "registration failed", err)
		return
	}
	w.Header().Set("Location", "/receipts/"+rc.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, rc)
}

// loadReceipt resolves the {id} path parameter and writes any error itself.
func (h *Handler) loadReceipt(w http.ResponseWriter, r *http.Request) (*models.Receipt, bool) {
	id, err := domain.ParseReceiptID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	rc, err := h.svc.Receipt(r.Context(), id)
	if err != nil {
		h.writeServiceError(r.Context(), w, "receipt lookup failed", err)
		return nil, false
	}
	return rc, true
}

func (h *Handler) handleReceipt(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.loadReceipt(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rc)
}

func (h *Handler) handleReceiptView(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.loadReceipt(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.HTML(w, rc); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render receipt view",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
	}
}

func (h *Handler) handleReceiptQR(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.loadReceipt(w, r)
	if !ok {
		return
	}
	png, err := h.renderer.QRCode(rc.ID)
	if err != nil {
		h.writeServiceError(r.Context(), w, "qr render failed", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render qr code"))
		return
	}
	writeFile(w, receipt.QRContentType, "", png)
}

func (h *Handler) handleReceiptPDF(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.loadReceipt(w, r)
	if !ok {
		return
	}
	pdf, err := h.renderer.PDF(rc)
	if err != nil {
		h.writeServiceError(r.Context(), w, "pdf render failed", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render pdf"))
		return
	}
	h.svc.ArchiveReceiptPDF(r.Context(), rc.ID, pdf)
	writeFile(w, receipt.PDFContentType, receipt.PDFFilename(rc.Name), pdf)
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.gate.Check(req.Passphrase); err != nil {
		h.logger.WarnContext(ctx, "admin login rejected", "request_id", chimw.GetReqID(ctx))
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, "list registrations failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.RosterResponse{Count: len(records), Registrations: records})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseReceiptID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	key := r.URL.Query().Get("store_key")
	if key == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "store_key is required"))
		return
	}
	if err := h.svc.Delete(ctx, id, models.StoreKey(key)); err != nil {
		h.writeServiceError(ctx, w, "delete registration failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportCSV(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, "export failed", err)
		return
	}
	writeFile(w, export.ContentType+"; charset=utf-8", export.Filename, data)
}

func (h *Handler) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.ArchivedFiles(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		h.writeServiceError(r.Context(), w, "list archive failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ArchiveResponse{Count: len(files), Files: files})
}

func (h *Handler) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "*")
	if key == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "archive key is required"))
		return
	}
	info, body, err := h.svc.OpenArchived(ctx, key)
	if err != nil {
		h.writeServiceError(ctx, w, "read archive failed", err)
		return
	}
	defer body.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(key)}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.WarnContext(ctx, "archive download interrupted",
			"request_id", chimw.GetReqID(ctx),
			"key", key,
			"error", err,
		)
	}
}

// writeServiceError logs server-side failures at error level and client
// mistakes at warn before writing the envelope.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if httputil.StatusFor(codeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", chimw.GetReqID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

func codeOf(err error) dErrors.Code {
	if de, ok := dErrors.As(err); ok {
		return de.Code
	}
	return dErrors.CodeInternal
}

// writeFile writes data as a download when filename is set, inline otherwise.
func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
