package memdb

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/inventory"
)

const (
	entidadMovimiento = "MovimientoInventario"
	entidadDetalle    = "DetalleMovimiento"
)

func (db *DB) hydrateMovimiento(row *movimientoRow) entity.Movimiento {
	m := row.m
	if u, ok := db.usuarios[row.usuarioID]; ok {
		usr := u.u
		m.Usuario = &usr
	}
	if b, ok := db.bodegas[row.origenID]; ok {
		origen := db.hydrateBodega(b)
		m.BodegaOrigen = &origen
	}
	if b, ok := db.bodegas[row.destinoID]; ok {
		destino := db.hydrateBodega(b)
		m.BodegaDestino = &destino
	}
	return m
}

func (db *DB) hydrateDetalle(row *detalleRow) entity.DetalleMovimiento {
	d := row.d
	if m, ok := db.movimientos[row.movimientoID]; ok {
		mov := db.hydrateMovimiento(m)
		d.Movimiento = &mov
	}
	if p, ok := db.productos[row.productoID]; ok {
		prod := db.hydrateProducto(p)
		d.Producto = &prod
	}
	return d
}

// Movimientos lista todos los movimientos por ID.
func (db *DB) Movimientos() []entity.Movimiento {
	return db.listMovimientos(func(*movimientoRow) bool { return true })
}

// MovimientosByUsuario movimientos registrados por el usuario.
func (db *DB) MovimientosByUsuario(usuarioID int) []entity.Movimiento {
	return db.listMovimientos(func(r *movimientoRow) bool { return r.usuarioID == usuarioID })
}

func (db *DB) listMovimientos(keep func(*movimientoRow) bool) []entity.Movimiento {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Movimiento, 0, len(db.movimientos))
	for _, id := range sortedIDs(db.movimientos) {
		if row := db.movimientos[id]; keep(row) {
			out = append(out, db.hydrateMovimiento(row))
		}
	}
	return out
}

// Movimiento busca por ID.
func (db *DB) Movimiento(id int) (entity.Movimiento, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.movimientos[id]
	if !ok {
		return entity.Movimiento{}, notFound(entidadMovimiento)
	}
	return db.hydrateMovimiento(row), nil
}

// CreateMovimiento registra la cabecera. Las bodegas exigidas dependen del tipo.
func (db *DB) CreateMovimiento(actor string, in dto.MovimientoRequest) (entity.Movimiento, error) {
	if !in.Tipo.Valid() {
		return entity.Movimiento{}, invalid("tipo", "Tipo de movimiento inválido")
	}
	origenID, destinoID := refID(in.BodegaOrigen), refID(in.BodegaDestino)
	switch in.Tipo {
	case entity.MovimientoEntrada:
		if destinoID == 0 {
			return entity.Movimiento{}, invalid("bodegaDestino", "ENTRADA necesita destino")
		}
	case entity.MovimientoSalida:
		if origenID == 0 {
			return entity.Movimiento{}, invalid("bodegaOrigen", "SALIDA necesita origen")
		}
	case entity.MovimientoTransferencia:
		if origenID == 0 || destinoID == 0 {
			return entity.Movimiento{}, invalid("bodegaOrigen", "TRANSFERENCIA necesita ambos")
		}
		if origenID == destinoID {
			return entity.Movimiento{}, invalid("bodegaDestino", "La bodega destino debe ser distinta a la de origen")
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.usuarios[in.Usuario.ID]; !ok {
		return entity.Movimiento{}, invalid("usuario", fmt.Sprintf("El usuario con ID %d no existe", in.Usuario.ID))
	}
	for _, id := range []int{origenID, destinoID} {
		if _, ok := db.bodegas[id]; id != 0 && !ok {
			return entity.Movimiento{}, invalid("bodega", fmt.Sprintf("La bodega con ID %d no existe", id))
		}
	}
	row := &movimientoRow{
		m: entity.Movimiento{
			ID:    db.nextID("movimientos"),
			Fecha: db.timestamp(),
			Tipo:  in.Tipo,
		},
		usuarioID: in.Usuario.ID,
		origenID:  origenID,
		destinoID: destinoID,
	}
	db.stamp(&row.m.Auditable, actor, true)
	db.movimientos[row.m.ID] = row
	out := db.hydrateMovimiento(row)
	db.audit(actor, entity.OperacionInsert, entidadMovimiento, nil, out)
	return out, nil
}

// Detalles lista todos los detalles por ID.
func (db *DB) Detalles() []entity.DetalleMovimiento {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.DetalleMovimiento, 0, len(db.detalles))
	for _, id := range sortedIDs(db.detalles) {
		out = append(out, db.hydrateDetalle(db.detalles[id]))
	}
	return out
}

// CreateDetalle registra la línea del movimiento y aplica su efecto sobre el stock.
// Todas las reglas se validan antes de modificar cualquier producto.
func (db *DB) CreateDetalle(actor string, in dto.DetalleMovimientoRequest) (entity.DetalleMovimiento, error) {
	if in.Cantidad <= 0 {
		return entity.DetalleMovimiento{}, invalid("cantidad", "Cantidad inválida")
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	mov, ok := db.movimientos[in.Movimiento.ID]
	if !ok {
		return entity.DetalleMovimiento{}, invalid("movimiento", fmt.Sprintf("El movimiento con ID %d no existe", in.Movimiento.ID))
	}
	prod, ok := db.productos[in.Producto.ID]
	if !ok {
		return entity.DetalleMovimiento{}, invalid("producto", fmt.Sprintf("El producto con ID %d no existe", in.Producto.ID))
	}
	if err := db.checkMovimiento(mov, prod, in.Cantidad); err != nil {
		return entity.DetalleMovimiento{}, err
	}

	switch mov.m.Tipo {
	case entity.MovimientoSalida:
		db.adjustStock(actor, prod, -in.Cantidad)
	case entity.MovimientoEntrada:
		db.addToBodega(actor, prod, mov.destinoID, in.Cantidad)
	case entity.MovimientoTransferencia:
		db.adjustStock(actor, prod, -in.Cantidad)
		db.addToBodega(actor, prod, mov.destinoID, in.Cantidad)
	}

	row := &detalleRow{
		d: entity.DetalleMovimiento{
			ID:       db.nextID("detalles"),
			Cantidad: in.Cantidad,
		},
		movimientoID: mov.m.ID,
		productoID:   prod.p.ID,
	}
	db.stamp(&row.d.Auditable, actor, true)
	db.detalles[row.d.ID] = row
	out := db.hydrateDetalle(row)
	db.audit(actor, entity.OperacionInsert, entidadDetalle, nil, out)
	return out, nil
}

func (db *DB) checkMovimiento(mov *movimientoRow, prod *productoRow, cantidad int) error {
	tipo := mov.m.Tipo
	sale := tipo == entity.MovimientoSalida || tipo == entity.MovimientoTransferencia
	entra := tipo == entity.MovimientoEntrada || tipo == entity.MovimientoTransferencia

	if sale && mov.origenID != 0 && prod.bodegaID != mov.origenID {
		return invalid("producto", fmt.Sprintf("El producto '%s' no existe en la bodega de origen.", prod.p.Nombre))
	}
	if sale && prod.p.Stock < cantidad {
		return invalid("cantidad", fmt.Sprintf("Stock insuficiente en la bodega origen: disponible=%d", prod.p.Stock))
	}
	if entra {
		destino, ok := db.bodegas[mov.destinoID]
		if !ok {
			return invalid("bodegaDestino", "ENTRADA necesita destino")
		}
		actual := db.stockTotal(mov.destinoID)
		if actual+cantidad > destino.b.Capacidad {
			return invalid("cantidad", fmt.Sprintf("Capacidad insuficiente en la bodega destino: disponible=%d", destino.b.Capacidad-actual))
		}
	}
	return nil
}

func (db *DB) adjustStock(actor string, row *productoRow, delta int) {
	before := db.hydrateProducto(row)
	row.p.Stock += delta
	db.stamp(&row.p.Auditable, actor, false)
	db.audit(actor, entity.OperacionUpdate, entidadProducto, before, db.hydrateProducto(row))
}

// receive suma unidades que llegan a otro precio; el precio queda en el costo promedio ponderado.
func (db *DB) receive(actor string, row *productoRow, cantidad int, precio decimal.Decimal) {
	before := db.hydrateProducto(row)
	row.p.Precio = inventory.WeightedAverageCost(row.p.Stock, row.p.Precio, cantidad, precio)
	row.p.Stock += cantidad
	db.stamp(&row.p.Auditable, actor, false)
	db.audit(actor, entity.OperacionUpdate, entidadProducto, before, db.hydrateProducto(row))
}

// addToBodega suma cantidad al producto homónimo de la bodega destino, creándolo si no existe.
func (db *DB) addToBodega(actor string, src *productoRow, bodegaID, cantidad int) {
	for _, p := range db.productos {
		if p.bodegaID == bodegaID && p.p.Nombre == src.p.Nombre {
			db.receive(actor, p, cantidad, src.p.Precio)
			return
		}
	}
	row := &productoRow{
		p: entity.Producto{
			ID:        db.nextID("productos"),
			Nombre:    src.p.Nombre,
			Categoria: src.p.Categoria,
			Stock:     cantidad,
			Precio:    src.p.Precio,
		},
		bodegaID: bodegaID,
	}
	db.stamp(&row.p.Auditable, actor, true)
	db.productos[row.p.ID] = row
	db.audit(actor, entity.OperacionInsert, entidadProducto, nil, db.hydrateProducto(row))
}

func refID(ref *entity.Ref) int {
	if ref == nil {
		return 0
	}
	return ref.ID
}
