package dto

// ResumenGeneral cuerpo de GET /reportes/resumen-general.
type ResumenGeneral struct {
	StockPorBodega      []StockBodega       `json:"stockPorBodega"`
	ProductosMasMovidos []ProductoMovido    `json:"productosMasMovidos"`
	ProductosStockBajo  []ProductoStockBajo `json:"productosStockBajo"` // stock < 10
	TotalBodegas        int                 `json:"totalBodegas"`
	TotalProductos      int                 `json:"totalProductos"` // con stock mayor a cero
	TotalMovimientos    int                 `json:"totalMovimientos"`
	Error               string              `json:"error,omitempty"`
}

// StockBodega stock total de las bodegas con productos.
type StockBodega struct {
	NombreBodega string `json:"nombreBodega"`
	StockTotal   int    `json:"stockTotal"`
}

// ProductoMovido unidades movidas de un producto, sumando todos los detalles.
type ProductoMovido struct {
	Nombre      string `json:"nombre"`
	TotalMovido int    `json:"totalMovido"`
}

// ProductoStockBajo producto por debajo del umbral del resumen.
type ProductoStockBajo struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Stock  int    `json:"stock"`
}
