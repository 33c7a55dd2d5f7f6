package api

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-sheet-importer/internal/fallback"
	"github.com/insightdelivered/statement-sheet-importer/internal/importer"
	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

const version = "1.0.0"

// ImportResponse is the JSON response from the /api/import endpoint.
type ImportResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	ImportID  string            `json:"importId,omitempty"`
	Fallback  bool              `json:"fallback,omitempty"` // true when the PDF fallback path produced the result
	Statement *models.Statement `json:"statement,omitempty"`
	Count     int               `json:"count"`
	TotalIn   float64           `json:"totalIn"`
	TotalOut  float64           `json:"totalOut"`
	Version   string            `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the import API.
type Handler struct {
	Log zerolog.Logger
}

// NewHandler returns a Handler logging through the given logger.
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{Log: log}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/import", h.HandleImport)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleImport accepts one uploaded statement file plus the owner-account
// context and returns the normalized statement envelope. Each request is an
// independent import; no state is shared across requests.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	importID := uuid.NewString()
	log := h.Log.With().Str("import_id", importID).Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "uploaded file could not be opened")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "uploaded file could not be read")
	}

	owners := models.NewOwnerAccounts(splitAccounts(c.FormValue("owner"))...)
	currency := c.FormValue("currency")
	if currency == "" {
		currency = models.SupportedCurrency
	}

	imp := importer.New(owners, currency, log)

	usedFallback := false
	stmt, err := imp.Import(data)
	if errors.Is(err, models.ErrUnrecognizedFormat) {
		stmt, err = fallback.Import(data, log)
		usedFallback = err == nil
	}
	if err != nil {
		log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("import failed")
		return writeError(c, statusFor(err), err.Error())
	}

	var totalIn, totalOut float64
	for _, tx := range stmt.Transactions {
		if tx.Amount >= 0 {
			totalIn += tx.Amount
		} else {
			totalOut += -tx.Amount
		}
	}

	return c.JSON(ImportResponse{
		Success:   true,
		ImportID:  importID,
		Fallback:  usedFallback,
		Statement: stmt,
		Count:     len(stmt.Transactions),
		TotalIn:   totalIn,
		TotalOut:  totalOut,
		Version:   version,
	})
}

// statusFor maps import failures onto HTTP statuses: anything wrong with the
// uploaded content is 422, everything else is a server error.
func statusFor(err error) int {
	var missingCols *models.MissingColumnsError
	var badLedger *models.UnsupportedCurrencyError
	var badRow *models.RowCurrencyError

	switch {
	case errors.Is(err, models.ErrUnrecognizedFormat),
		errors.Is(err, models.ErrMalformedDocument),
		errors.Is(err, models.ErrEmptyStatement),
		errors.As(err, &missingCols),
		errors.As(err, &badLedger),
		errors.As(err, &badRow):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrMissingDependency):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

// splitAccounts parses a comma- or whitespace-separated owner account list.
func splitAccounts(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ImportResponse{
		Success: false,
		Error:   msg,
	})
}
