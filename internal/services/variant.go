package services

import "fmt"

// Variant describe las diferencias entre las dos páginas de transacciones.
// No se unifican: el detalle incluye el día final completo y la tabla no.
type Variant struct {
	Name string
	// IncludeValue agrega la columna TRANSACTION VALUE ($)
	IncludeValue bool
	// InclusiveEndDay extiende el fin del rango de fechas en un día
	InclusiveEndDay bool
}

var (
	VariantTable  = Variant{Name: "table"}
	VariantDetail = Variant{Name: "detail", IncludeValue: true, InclusiveEndDay: true}
)

// ParseVariant resuelve el nombre de la variante; vacío equivale a "table"
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "", VariantTable.Name:
		return VariantTable, nil
	case VariantDetail.Name:
		return VariantDetail, nil
	default:
		return Variant{}, fmt.Errorf("variante desconocida: %q", name)
	}
}
