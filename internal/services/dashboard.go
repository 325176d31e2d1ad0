package services

import (
	"context"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/metrics"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/repository"
	"go.uber.org/zap"
)

// SwapLoader es la fuente de swaps de un token (SwapRepository en producción)
type SwapLoader interface {
	LoadSwaps(ctx context.Context, token string) ([]models.SwapRecord, repository.FieldMap, error)
}

// Report es el resultado completo de una página de transacciones
type Report struct {
	Fields  repository.FieldMap
	Variant Variant
	Columns []Column
	Result
}

// DashboardService encadena carga, transformación y pipeline de filtros
type DashboardService struct {
	swaps   SwapLoader
	timeout time.Duration
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

// NewDashboardService crea el servicio; m puede ser nil (export por CLI)
func NewDashboardService(swaps SwapLoader, timeout time.Duration, m *metrics.Metrics, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{swaps: swaps, timeout: timeout, metrics: m, log: log}
}

// Build carga los swaps del token y aplica la variante y el estado de filtros.
// Cada llamada vuelve a leer la colección.
func (s *DashboardService) Build(ctx context.Context, token string, state models.FilterState, v Variant) (*Report, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	records, fields, err := s.swaps.LoadSwaps(ctx, token)
	if s.metrics != nil {
		s.metrics.ObserveQuery("swaps", start, err)
	}
	if err != nil {
		return nil, err
	}

	cols := Columns(v, fields.Upper())
	result := Run(Derive(records, v), state, v, cols)

	if s.metrics != nil {
		s.metrics.ObserveRows(v.Name, len(result.Rows))
		if result.RangeSkipped {
			s.metrics.RangeSkipped()
		}
	}
	if len(result.Warnings) > 0 {
		s.log.Infow("filtros omitidos", "token", fields.Symbol, "warnings", result.Warnings)
	}

	return &Report{Fields: fields, Variant: v, Columns: cols, Result: result}, nil
}

// Response arma el cuerpo JSON del reporte
func (r *Report) Response(state models.FilterState) models.TransactionsResponse {
	transactions := make([]models.TransactionDetails, 0, len(r.Rows))
	for _, row := range r.Rows {
		transactions = append(transactions, models.NewTransactionDetails(row, r.Variant.IncludeValue))
	}
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return models.TransactionsResponse{
		Token:        r.Fields.Symbol,
		Variant:      r.Variant.Name,
		Total:        r.Total,
		Count:        len(r.Rows),
		Warnings:     warnings,
		Filter:       state,
		Transactions: transactions,
	}
}
