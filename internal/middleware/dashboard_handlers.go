package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/repository"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/services"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const missingTokenMessage = "No token specified. Please navigate back and choose a token."

// PersonaReader es el registro de tokens lanzados
type PersonaReader interface {
	GetTokenCards(ctx context.Context) ([]models.TokenCard, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Persona, error)
}

// Pinger verifica la conexión con la base
type Pinger func(ctx context.Context) error

// DashboardHandler agrupa los handlers de las páginas del dashboard
type DashboardHandler struct {
	dashboard    *services.DashboardService
	personas     PersonaReader
	formatter    views.Formatter
	ping         Pinger
	cardColumns  int
	queryTimeout time.Duration
	log          *zap.SugaredLogger
}

func NewDashboardHandler(
	dashboard *services.DashboardService,
	personas PersonaReader,
	formatter views.Formatter,
	ping Pinger,
	cardColumns int,
	queryTimeout time.Duration,
	log *zap.SugaredLogger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		personas:     personas,
		formatter:    formatter,
		ping:         ping,
		cardColumns:  cardColumns,
		queryTimeout: queryTimeout,
		log:          log,
	}
}

// GetCards muestra la galería de tokens del registro
func (h *DashboardHandler) GetCards(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	tokenCards, err := h.personas.GetTokenCards(ctx)
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Could not load the token registry.", err)
		return
	}

	cards := make([]views.Card, 0, len(tokenCards))
	for _, tc := range tokenCards {
		cards = append(cards, views.Card{
			TokenCard: tc,
			Link:      "/transactions?token=" + url.QueryEscape(tc.Symbol),
		})
	}

	c.HTML(http.StatusOK, views.CardsTemplate, views.CardsPage{
		Title:   "SUCCESSFULLY LAUNCHED GENESIS TOKENS",
		Columns: h.cardColumns,
		Rows:    views.ChunkCards(cards, h.cardColumns),
	})
}

// GetTransactions muestra la tabla de transacciones de un token
func (h *DashboardHandler) GetTransactions(c *gin.Context) {
	h.renderTokenPage(c, services.VariantTable)
}

// GetTokenDetail muestra la variante de detalle con el valor en USD y el popover del registro
func (h *DashboardHandler) GetTokenDetail(c *gin.Context) {
	h.renderTokenPage(c, services.VariantDetail)
}

func (h *DashboardHandler) renderTokenPage(c *gin.Context, v services.Variant) {
	report, state, status, err := h.buildReport(c, v)
	if err != nil {
		h.renderError(c, status, userMessage(status, err), err)
		return
	}

	page := views.TokenPage{
		Token:    report.Fields.Symbol,
		Path:     c.Request.URL.Path,
		Variant:  v.Name,
		Filter:   views.NewFilterForm(state),
		Options:  report.Options,
		Warnings: report.Warnings,
		Table:    h.formatter.BuildTable(report.Rows, report.Columns),
		Count:    len(report.Rows),
		Total:    report.Total,
	}

	if v == services.VariantDetail {
		page.Title = "TOKEN " + report.Fields.Upper()
		page.Persona = h.lookupPersona(c, report.Fields.Symbol)
	} else {
		page.Title = "TRANSACTION TABLE FOR " + report.Fields.Upper()
	}

	c.HTML(http.StatusOK, views.TokenTemplate, page)
}

// lookupPersona busca el token en el registro; si falla la página se muestra sin popover
func (h *DashboardHandler) lookupPersona(c *gin.Context, symbol string) *views.PersonaInfo {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	persona, err := h.personas.GetBySymbol(ctx, symbol)
	if err != nil {
		h.log.Warnw("no se pudo leer el registro del token", "token", symbol, "error", err)
		return nil
	}
	return views.NewPersonaInfo(persona)
}

// GetTransactionsJSON devuelve las filas del pipeline en JSON
func (h *DashboardHandler) GetTransactionsJSON(c *gin.Context) {
	v, err := services.ParseVariant(c.Query("variant"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, state, status, err := h.buildReport(c, v)
	if err != nil {
		if status == http.StatusInternalServerError {
			h.log.Errorw("error al armar el reporte", "error", err)
		}
		c.JSON(status, gin.H{"error": userMessage(status, err)})
		return
	}

	c.JSON(http.StatusOK, report.Response(state))
}

// Health responde 200 si Mongo contesta el ping
func (h *DashboardHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.log.Warnw("health check fallido", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// buildReport resuelve token y filtros de la query y ejecuta el pipeline.
// Devuelve el status HTTP que corresponde al error.
func (h *DashboardHandler) buildReport(c *gin.Context, v services.Variant) (*services.Report, models.FilterState, int, error) {
	token, err := repository.NormalizeToken(c.Query("token"))
	if err != nil {
		return nil, models.FilterState{}, http.StatusBadRequest, err
	}

	state, err := services.ParseFilterState(c.Request.URL.Query())
	if err != nil {
		return nil, state, http.StatusBadRequest, err
	}

	report, err := h.dashboard.Build(c.Request.Context(), token, state, v)
	if err != nil {
		return nil, state, statusFor(err), err
	}
	return report, state, http.StatusOK, nil
}

func statusFor(err error) int {
	var unknownField *repository.UnknownFieldError
	switch {
	case errors.Is(err, repository.ErrMissingToken), errors.Is(err, repository.ErrInvalidToken):
		return http.StatusBadRequest
	case errors.As(err, &unknownField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// userMessage traduce el error al texto que ve el usuario
func userMessage(status int, err error) string {
	var unknownField *repository.UnknownFieldError
	switch {
	case errors.Is(err, repository.ErrMissingToken):
		return missingTokenMessage
	case errors.Is(err, repository.ErrInvalidToken):
		return "Invalid token. Please navigate back and choose a token."
	case errors.As(err, &unknownField):
		return fmt.Sprintf("The swap collection has no field %q.", unknownField.Field)
	case status == http.StatusGatewayTimeout:
		return "The database took too long to answer. Please try again."
	case status == http.StatusBadRequest:
		return err.Error()
	}
	return "Could not load transactions."
}

func (h *DashboardHandler) renderError(c *gin.Context, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		h.log.Errorw(message, "path", c.Request.URL.Path, "error", err)
	}
	_ = c.Error(err)
	c.HTML(status, views.ErrorTemplate, views.ErrorPage{Title: http.StatusText(status), Message: message})
}

func (h *DashboardHandler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.queryTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.queryTimeout)
}
