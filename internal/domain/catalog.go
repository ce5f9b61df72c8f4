package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the same way the storefront sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

type Size struct {
	ID     uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Talla  string `json:"talla" gorm:"not null"`
	Nombre string `json:"nombre" gorm:"not null"`
}

func (Size) TableName() string { return "tallas" }

// Style is one printable design. Estilo is the collection number styles are
// grouped under; Imagen is the blob key of its picture and may be empty.
type Style struct {
	ID     uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Estilo int             `json:"estilo" gorm:"not null;index"`
	Nombre string          `json:"nombre" gorm:"not null"`
	Imagen string          `json:"imagen" gorm:"not null;default:''"`
	Precio decimal.Decimal `json:"precio" gorm:"type:decimal(10,2);not null"`
}

func (Style) TableName() string { return "estilos" }

type Collection struct {
	Estilo  int     `json:"estilo"`
	Estilos []Style `json:"estilos"`
}

// GroupByCollection groups styles by collection number, ascending, keeping
// the input order inside each collection.
func GroupByCollection(styles []Style) []Collection {
	idx := map[int]int{}
	var out []Collection
	for _, s := range styles {
		i, ok := idx[s.Estilo]
		if !ok {
			i = len(out)
			idx[s.Estilo] = i
			out = append(out, Collection{Estilo: s.Estilo})
		}
		out[i].Estilos = append(out[i].Estilos, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Estilo < out[j].Estilo })
	return out
}

// SumPrices is the server side total of a selection.
func SumPrices(styles []Style) decimal.Decimal {
	total := decimal.Zero
	for _, s := range styles {
		total = total.Add(s.Precio)
	}
	return total
}
