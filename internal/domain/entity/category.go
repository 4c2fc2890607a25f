package entity

// Nombres de tipo de ítem con semántica especial en el almacén.
// Los ítems "Material" no admiten stock negativo y son los únicos que
// entran en la tabla de distribución de materiales.
const (
	ItemTypeMaterial    = "Material"
	ItemTypeNonMaterial = "Non Materials"
)

// ItemCategory agrupa ítems de inventario (tubería, fertilizante, herramienta...).
type ItemCategory struct {
	ID          string
	Name        string
	Description string
}

// ItemType clasifica ítems por naturaleza contable (Material / Non Materials).
type ItemType struct {
	ID          string
	Name        string
	Description string
}
