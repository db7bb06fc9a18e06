package http

import (
	"errors"
	"log/slog"

	"portfolio-builder/internal/domain"
	"portfolio-builder/internal/model"
	"portfolio-builder/internal/usecase"
	"portfolio-builder/pkg/document"
	"portfolio-builder/pkg/pdf"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RendererStatus reports the configured PDF renderers and whether each can run.
type RendererStatus func() map[string]bool

type Handler struct {
	svc       *usecase.Service
	renderers RendererStatus
	log       *slog.Logger
}

func NewHandler(svc *usecase.Service, renderers RendererStatus, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if renderers == nil {
		renderers = func() map[string]bool { return map[string]bool{} }
	}
	return &Handler{svc: svc, renderers: renderers, log: log}
}

// Register mounts every route on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Get("/templates", h.ListTemplates)
	app.Get("/templates/:id/style.css", h.TemplateStyle)
	app.Post("/markdown/preview", h.MarkdownPreview)

	users := app.Group("/users/:id")
	users.Get("/portfolio", h.Portfolio)
	users.Put("/portfolio", h.ImportPortfolio)
	users.Get("/portfolio.pdf", h.PortfolioPDF)
	users.Post("/resume.pdf", h.ResumePDF)
	users.Get("/exports", h.Exports)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	renderers := h.renderers()
	available := false
	for _, ok := range renderers {
		available = available || ok
	}
	return c.JSON(fiber.Map{"status": "ok", "pdf_available": available, "renderers": renderers})
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": document.Templates(), "default": h.svc.Template("")})
}

func (h *Handler) TemplateStyle(c *fiber.Ctx) error {
	id, ok := document.ResolveTemplate(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown template"})
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.SendString(document.TemplateCSS(id))
}

type previewReq struct {
	Markdown string `json:"markdown"`
}

func (h *Handler) MarkdownPreview(c *fiber.Ctx) error {
	var req previewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	html, err := document.MarkdownToHTML(req.Markdown)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"html": html})
}

func (h *Handler) Portfolio(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return badUserID(c)
	}
	html, err := h.svc.RenderPortfolio(c.UserContext(), uid, c.Query("template"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *Handler) ImportPortfolio(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return badUserID(c)
	}
	p, err := h.svc.ImportPortfolio(c.UserContext(), uid, c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) PortfolioPDF(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return badUserID(c)
	}
	res, err := h.svc.ExportPortfolioPDF(c.UserContext(), uid, c.Query("template"))
	if err != nil {
		return h.fail(c, err)
	}
	return sendPDF(c, res)
}

func (h *Handler) ResumePDF(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return badUserID(c)
	}
	var req usecase.ResumeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}
	res, err := h.svc.ExportResumePDF(c.UserContext(), uid, req)
	if err != nil {
		return h.fail(c, err)
	}
	return sendPDF(c, res)
}

func (h *Handler) Exports(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return badUserID(c)
	}
	exports, err := h.svc.ListExports(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"exports": exports})
}

func userID(c *fiber.Ctx) (uuid.UUID, bool) {
	uid, err := uuid.Parse(c.Params("id"))
	return uid, err == nil
}

func badUserID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
}

func sendPDF(c *fiber.Ctx, res *pdf.Result) error {
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, res.ContentDisposition())
	return c.Send(res.PDF)
}

// fail maps service errors to status codes.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pdf.ErrUnavailable):
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusServiceUnavailable).SendString(pdf.UnavailableMessage)
	case errors.Is(err, model.ErrMalformedDocument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidDocument), domain.IsValidationError(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	h.log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
