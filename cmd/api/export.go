package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/config"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/database"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/logger"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/repository"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/services"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/views"
	"github.com/urfave/cli/v2"
)

// filterFlagNames son los flags de export que se traducen 1:1 a parámetros de filtro
var filterFlagNames = []string{"type", "label", "start", "end", "q", "range-col", "range-min", "range-max", "sort", "order"}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "Símbolo del token", Required: true},
		&cli.StringFlag{Name: "variant", Usage: "Variante de la página (table, detail)", Value: services.VariantTable.Name},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Formato de salida (html, json)", Value: "html"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Archivo de salida (por defecto stdout)"},
		&cli.StringFlag{Name: "type", Usage: "Tipo de transacción (all, buy, sell)"},
		&cli.StringFlag{Name: "label", Usage: "Categoría exacta"},
		&cli.StringFlag{Name: "start", Usage: "Fecha de inicio (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end", Usage: "Fecha de fin (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "q", Usage: "Búsqueda por bloque o maker"},
		&cli.StringFlag{Name: "range-col", Usage: "Columna numérica para el filtro por rango"},
		&cli.StringFlag{Name: "range-min", Usage: "Mínimo del filtro por rango"},
		&cli.StringFlag{Name: "range-max", Usage: "Máximo del filtro por rango"},
		&cli.StringFlag{Name: "sort", Usage: "Columna de orden"},
		&cli.StringFlag{Name: "order", Usage: "Dirección del orden (asc, desc)"},
	}
}

// filterValues arma los mismos parámetros que recibe la página
func filterValues(c *cli.Context) url.Values {
	q := url.Values{}
	for _, name := range filterFlagNames {
		if v := c.String(name); v != "" {
			q.Set(queryKey(name), v)
		}
	}
	return q
}

func queryKey(flag string) string {
	switch flag {
	case "range-col":
		return "range_col"
	case "range-min":
		return "range_min"
	case "range-max":
		return "range_max"
	}
	return flag
}

func export(c *cli.Context) error {
	format := c.String("format")
	if format != "html" && format != "json" {
		return fmt.Errorf("formato inválido: %q", format)
	}
	v, err := services.ParseVariant(c.String("variant"))
	if err != nil {
		return err
	}
	state, err := services.ParseFilterState(filterValues(c))
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Desugar().Sync() //nolint:errcheck

	ctx := c.Context
	client, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck

	swaps := repository.NewSwapRepository(client.Database(cfg.MongoDatabase), cfg.CounterAsset, log)
	report, err := services.NewDashboardService(swaps, cfg.MongoQueryTimeout, nil, log).
		Build(ctx, c.String("token"), state, v)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error al crear %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	for _, warning := range report.Warnings {
		log.Warn(warning)
	}
	log.Infow("export", "token", report.Fields.Symbol, "variant", v.Name, "rows", len(report.Rows), "total", report.Total)

	return writeReport(w, format, report, state, views.NewFormatter(cfg.ExplorerTxURL, cfg.MakerPrefixLen))
}

func writeReport(w io.Writer, format string, report *services.Report, state models.FilterState, f views.Formatter) error {
	if format == "html" {
		return views.RenderTable(w, f.BuildTable(report.Rows, report.Columns))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report.Response(state))
}
