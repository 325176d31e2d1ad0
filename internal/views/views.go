package views

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/services"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const dateLayout = "2006-01-02"

// Nombres de los templates que usan los handlers
const (
	CardsTemplate = "cards.tmpl"
	TokenTemplate = "token.tmpl"
	ErrorTemplate = "error.tmpl"
	tableTemplate = "table"
)

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(dateLayout)
	},
	"float": func(f *float64) string {
		if f == nil {
			return ""
		}
		return Number(models.Float(*f))
	},
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"))

// Templates devuelve los templates embebidos, parseados una sola vez
// (se registran en gin con SetHTMLTemplate)
func Templates() *template.Template {
	return templates
}

// RenderTable escribe solo el fragmento de la tabla con sus estilos
func RenderTable(w io.Writer, table TableView) error {
	return templates.ExecuteTemplate(w, tableTemplate, table)
}

// Card es un token del registro con el link a su página de transacciones
type Card struct {
	models.TokenCard
	Link string
}

// CardsPage es la galería de tokens lanzados
type CardsPage struct {
	Title   string
	Columns int
	Rows    [][]Card
}

// ChunkCards reparte los cards en filas de n columnas
func ChunkCards(cards []Card, n int) [][]Card {
	if n <= 0 {
		n = 5
	}
	rows := [][]Card{}
	for i := 0; i < len(cards); i += n {
		end := i + n
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, cards[i:end])
	}
	return rows
}

// PersonaInfo es el detalle del token que muestra el popover
type PersonaInfo struct {
	Name       string
	LaunchTime string
	Token      string
	DAO        string
	LP         string
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// NewPersonaInfo arma el popover; los campos vacíos se muestran como N/A
func NewPersonaInfo(p *models.Persona) *PersonaInfo {
	if p == nil {
		return nil
	}
	return &PersonaInfo{
		Name:       orNA(p.Name),
		LaunchTime: p.LaunchTime().Format("02-01-2006 15:04"),
		Token:      orNA(p.Token),
		DAO:        orNA(p.DAO),
		LP:         orNA(p.LP),
	}
}

// FilterForm refleja el FilterState actual para repintar los controles
type FilterForm struct {
	Type     string
	Label    string
	Start    string
	End      string
	Search   string
	RangeCol string
	RangeMin string
	RangeMax string
	SortCol  string
	SortDir  string
}

func NewFilterForm(state models.FilterState) FilterForm {
	form := FilterForm{
		Type:     state.Type,
		Label:    state.Label,
		Search:   state.Search,
		RangeCol: state.RangeCol,
		SortCol:  state.SortCol,
		SortDir:  string(state.SortDir),
	}
	if state.StartDate != nil {
		form.Start = state.StartDate.Format(dateLayout)
	}
	if state.EndDate != nil {
		form.End = state.EndDate.Format(dateLayout)
	}
	if state.RangeMin != nil {
		form.RangeMin = Number(models.Float(*state.RangeMin))
	}
	if state.RangeMax != nil {
		form.RangeMax = Number(models.Float(*state.RangeMax))
	}
	return form
}

// TokenPage es la página de transacciones de un token (ambas variantes)
type TokenPage struct {
	Title    string
	Token    string
	Path     string
	Variant  string
	Persona  *PersonaInfo
	Filter   FilterForm
	Options  services.Options
	Warnings []string
	Table    TableView
	Count    int
	Total    int
}

// ErrorPage se usa para los errores visibles al usuario
type ErrorPage struct {
	Title   string
	Message string
}
