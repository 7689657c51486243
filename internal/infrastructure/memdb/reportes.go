package memdb

import (
	"sort"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
)

// ResumenStockBajo umbral fijo del resumen general.
const ResumenStockBajo = 10

// ResumenGeneral stock por bodega, productos más movidos (por nombre, mayor primero),
// productos con stock bajo y totales.
func (db *DB) ResumenGeneral() dto.ResumenGeneral {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := dto.ResumenGeneral{
		StockPorBodega:      []dto.StockBodega{},
		ProductosMasMovidos: []dto.ProductoMovido{},
		ProductosStockBajo:  []dto.ProductoStockBajo{},
		TotalBodegas:        len(db.bodegas),
		TotalMovimientos:    len(db.movimientos),
	}

	stock := map[string]int{}
	for _, id := range sortedIDs(db.productos) {
		row := db.productos[id]
		if b, ok := db.bodegas[row.bodegaID]; ok {
			stock[b.b.Nombre] += row.p.Stock
		}
		if row.p.Stock > 0 {
			out.TotalProductos++
		}
		if row.p.Stock < ResumenStockBajo {
			out.ProductosStockBajo = append(out.ProductosStockBajo,
				dto.ProductoStockBajo{ID: row.p.ID, Nombre: row.p.Nombre, Stock: row.p.Stock})
		}
	}
	for nombre, total := range stock {
		out.StockPorBodega = append(out.StockPorBodega, dto.StockBodega{NombreBodega: nombre, StockTotal: total})
	}
	sort.Slice(out.StockPorBodega, func(i, j int) bool {
		return out.StockPorBodega[i].NombreBodega < out.StockPorBodega[j].NombreBodega
	})

	movido := map[string]int{}
	for _, d := range db.detalles {
		if p, ok := db.productos[d.productoID]; ok {
			movido[p.p.Nombre] += d.d.Cantidad
		}
	}
	for nombre, total := range movido {
		out.ProductosMasMovidos = append(out.ProductosMasMovidos, dto.ProductoMovido{Nombre: nombre, TotalMovido: total})
	}
	sort.Slice(out.ProductosMasMovidos, func(i, j int) bool {
		a, b := out.ProductosMasMovidos[i], out.ProductosMasMovidos[j]
		if a.TotalMovido != b.TotalMovido {
			return a.TotalMovido > b.TotalMovido
		}
		return a.Nombre < b.Nombre
	})
	return out
}
