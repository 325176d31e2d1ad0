package views

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/services"
)

// Formatter aplica el formato de presentación de cada celda
type Formatter struct {
	ExplorerTxURL  string
	MakerPrefixLen int
}

func NewFormatter(explorerTxURL string, makerPrefixLen int) Formatter {
	if makerPrefixLen <= 0 {
		makerPrefixLen = 10
	}
	return Formatter{ExplorerTxURL: explorerTxURL, MakerPrefixLen: makerPrefixLen}
}

// TxLink convierte el hash en un link al explorador de bloques
func (f Formatter) TxLink(hash string) template.HTML {
	if hash == "" {
		return ""
	}
	href := template.HTMLEscapeString(f.ExplorerTxURL + hash)
	return template.HTML(fmt.Sprintf("<a href='%s' target='_blank'>Link to txn</a>", href))
}

// TypeLabel colorea el tipo: verde para buy, rojo para cualquier otro valor
func (f Formatter) TypeLabel(t models.SwapType) template.HTML {
	color := "red"
	if t == models.SwapBuy {
		color = "green"
	}
	return template.HTML(fmt.Sprintf("<span style='color: %s; font-weight:bold'>%s</span>",
		color, template.HTMLEscapeString(string(t))))
}

// Maker trunca la dirección y deja la completa en el tooltip
func (f Formatter) Maker(addr string) template.HTML {
	if addr == "" {
		return ""
	}
	short := addr
	if len(short) > f.MakerPrefixLen {
		short = short[:f.MakerPrefixLen]
	}
	return template.HTML(fmt.Sprintf("<span title='%s'>%s...</span>",
		template.HTMLEscapeString(addr), template.HTMLEscapeString(short)))
}

// Number muestra un número sin ceros de relleno; un nulo queda vacío
func Number(n models.NullFloat) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Cell devuelve el contenido HTML de una celda
func (f Formatter) Cell(row models.DerivedRow, col services.Column) template.HTML {
	switch col.Key {
	case services.ColTxHash:
		return f.TxLink(row.Record.TxHash)
	case services.ColTxType:
		return f.TypeLabel(row.Record.SwapType)
	case services.ColMaker:
		return f.Maker(row.Record.Maker)
	case services.ColBlock:
		return template.HTML(strconv.FormatInt(row.Record.BlockNumber, 10))
	}
	if col.Kind == services.KindNumber {
		return template.HTML(Number(services.NumberValue(row, col.Key)))
	}
	return template.HTML(template.HTMLEscapeString(services.StringValue(row, col.Key)))
}

// TableView es la tabla lista para renderizar
type TableView struct {
	Headers []string
	Rows    [][]template.HTML
}

// BuildTable arma la tabla con los encabezados en mayúsculas y el orden de columnas dado
func (f Formatter) BuildTable(rows []models.DerivedRow, cols []services.Column) TableView {
	table := TableView{
		Headers: make([]string, len(cols)),
		Rows:    make([][]template.HTML, 0, len(rows)),
	}
	for i, col := range cols {
		table.Headers[i] = strings.ToUpper(col.Header)
	}
	for _, row := range rows {
		cells := make([]template.HTML, len(cols))
		for i, col := range cols {
			cells[i] = f.Cell(row, col)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
