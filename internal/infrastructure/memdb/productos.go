package memdb

import (
	"fmt"
	"strings"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

const entidadProducto = "Producto"

func (db *DB) hydrateProducto(row *productoRow) entity.Producto {
	p := row.p
	if b, ok := db.bodegas[row.bodegaID]; ok {
		bodega := db.hydrateBodega(b)
		p.Bodega = &bodega
	}
	return p
}

func (db *DB) listProductos(keep func(entity.Producto) bool) []entity.Producto {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Producto, 0, len(db.productos))
	for _, id := range sortedIDs(db.productos) {
		if p := db.productos[id].p; keep(p) {
			out = append(out, db.hydrateProducto(db.productos[id]))
		}
	}
	return out
}

// Productos lista los productos disponibles (stock mayor a cero).
func (db *DB) Productos() []entity.Producto {
	return db.listProductos(func(p entity.Producto) bool { return p.Stock > 0 })
}

// StockBajo productos con stock estrictamente menor al umbral.
func (db *DB) StockBajo(umbral int) []entity.Producto {
	return db.listProductos(func(p entity.Producto) bool { return p.Stock < umbral })
}

// Producto busca por ID (incluye productos agotados).
func (db *DB) Producto(id int) (entity.Producto, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.productos[id]
	if !ok {
		return entity.Producto{}, notFound(entidadProducto)
	}
	return db.hydrateProducto(row), nil
}

// CreateProducto crea un producto validando la capacidad de la bodega.
func (db *DB) CreateProducto(actor string, in dto.ProductoRequest) (entity.Producto, error) {
	if err := validateProducto(in); err != nil {
		return entity.Producto{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := db.checkCapacidad(in.Bodega.ID, in.Stock, 0); err != nil {
		return entity.Producto{}, err
	}
	row := &productoRow{
		p: entity.Producto{
			ID:        db.nextID("productos"),
			Nombre:    in.Nombre,
			Categoria: in.Categoria,
			Stock:     in.Stock,
			Precio:    in.Precio,
		},
		bodegaID: in.Bodega.ID,
	}
	db.stamp(&row.p.Auditable, actor, true)
	db.productos[row.p.ID] = row
	out := db.hydrateProducto(row)
	db.audit(actor, entity.OperacionInsert, entidadProducto, nil, out)
	return out, nil
}

// UpdateProducto reemplaza los datos; el stock anterior no cuenta contra la capacidad.
func (db *DB) UpdateProducto(actor string, id int, in dto.ProductoRequest) (entity.Producto, error) {
	if err := validateProducto(in); err != nil {
		return entity.Producto{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.productos[id]
	if !ok {
		return entity.Producto{}, notFound(entidadProducto)
	}
	if err := db.checkCapacidad(in.Bodega.ID, in.Stock, id); err != nil {
		return entity.Producto{}, err
	}
	before := db.hydrateProducto(row)
	row.p.Nombre = in.Nombre
	row.p.Categoria = in.Categoria
	row.p.Stock = in.Stock
	row.p.Precio = in.Precio
	row.bodegaID = in.Bodega.ID
	db.stamp(&row.p.Auditable, actor, false)
	out := db.hydrateProducto(row)
	db.audit(actor, entity.OperacionUpdate, entidadProducto, before, out)
	return out, nil
}

// DeleteProducto elimina el producto.
func (db *DB) DeleteProducto(actor string, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.productos[id]
	if !ok {
		return notFound(entidadProducto)
	}
	before := db.hydrateProducto(row)
	delete(db.productos, id)
	db.audit(actor, entity.OperacionDelete, entidadProducto, before, nil)
	return nil
}

// checkCapacidad verifica que stock quepa en la bodega. excludeID descuenta el stock
// actual de ese producto (edición). Requiere db.mu tomado.
func (db *DB) checkCapacidad(bodegaID, stock, excludeID int) error {
	b, ok := db.bodegas[bodegaID]
	if !ok {
		return invalid("bodega", fmt.Sprintf("La bodega con ID %d no existe", bodegaID))
	}
	total := db.stockTotal(bodegaID)
	if p, ok := db.productos[excludeID]; ok && p.bodegaID == bodegaID {
		total -= p.p.Stock
	}
	if total+stock > b.b.Capacidad {
		return invalid("stock", fmt.Sprintf(
			"No se puede agregar el producto. La bodega '%s' tiene una capacidad de %d unidades. Stock actual: %d",
			b.b.Nombre, b.b.Capacidad, total))
	}
	return nil
}

func validateProducto(in dto.ProductoRequest) error {
	switch {
	case strings.TrimSpace(in.Nombre) == "":
		return invalid("nombre", "El nombre es obligatorio")
	case strings.TrimSpace(in.Categoria) == "":
		return invalid("categoria", "La categoría es obligatoria")
	case in.Stock < 0:
		return invalid("stock", "El stock no puede ser negativo")
	case in.Precio.IsNegative():
		return invalid("precio", "El precio no puede ser negativo")
	case in.Bodega.ID == 0:
		return invalid("bodega", "El producto debe estar asociado a una bodega válida")
	}
	return nil
}
