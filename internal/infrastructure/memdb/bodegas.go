package memdb

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

const entidadBodega = "Bodega"

func (db *DB) hydrateBodega(row *bodegaRow) entity.Bodega {
	b := row.b
	if u, ok := db.usuarios[row.encargadoID]; ok {
		enc := u.u
		b.Encargado = &enc
	}
	return b
}

// stockTotal suma el stock de todos los productos de la bodega.
func (db *DB) stockTotal(bodegaID int) int {
	total := 0
	for _, p := range db.productos {
		if p.bodegaID == bodegaID {
			total += p.p.Stock
		}
	}
	return total
}

// Bodegas lista todas las bodegas por ID.
func (db *DB) Bodegas() []entity.Bodega {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Bodega, 0, len(db.bodegas))
	for _, id := range sortedIDs(db.bodegas) {
		out = append(out, db.hydrateBodega(db.bodegas[id]))
	}
	return out
}

// Bodega busca por ID.
func (db *DB) Bodega(id int) (entity.Bodega, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.bodegas[id]
	if !ok {
		return entity.Bodega{}, notFound(entidadBodega)
	}
	return db.hydrateBodega(row), nil
}

// CreateBodega crea una bodega; el nombre es único.
func (db *DB) CreateBodega(actor string, in dto.BodegaRequest) (entity.Bodega, error) {
	if err := validateBodega(in); err != nil {
		return entity.Bodega{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, b := range db.bodegas {
		if strings.EqualFold(b.b.Nombre, in.Nombre) {
			return entity.Bodega{}, invalid("nombre", "Ya existe una bodega con ese nombre")
		}
	}
	encargadoID, err := db.encargadoID(in.Encargado)
	if err != nil {
		return entity.Bodega{}, err
	}
	row := &bodegaRow{
		b: entity.Bodega{
			ID:        db.nextID("bodegas"),
			Nombre:    in.Nombre,
			Ubicacion: in.Ubicacion,
			Capacidad: in.Capacidad,
		},
		encargadoID: encargadoID,
	}
	db.stamp(&row.b.Auditable, actor, true)
	db.bodegas[row.b.ID] = row
	out := db.hydrateBodega(row)
	db.audit(actor, entity.OperacionInsert, entidadBodega, nil, out)
	return out, nil
}

// UpdateBodega reemplaza los datos editables. La capacidad no puede quedar por debajo del stock actual.
func (db *DB) UpdateBodega(actor string, id int, in dto.BodegaRequest) (entity.Bodega, error) {
	if err := validateBodega(in); err != nil {
		return entity.Bodega{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.bodegas[id]
	if !ok {
		return entity.Bodega{}, notFound(entidadBodega)
	}
	if total := db.stockTotal(id); in.Capacidad < total {
		return entity.Bodega{}, invalid("capacidad",
			fmt.Sprintf("La capacidad no puede ser menor al stock actual (%d unidades)", total))
	}
	encargadoID, err := db.encargadoID(in.Encargado)
	if err != nil {
		return entity.Bodega{}, err
	}
	before := db.hydrateBodega(row)
	row.b.Nombre = in.Nombre
	row.b.Ubicacion = in.Ubicacion
	row.b.Capacidad = in.Capacidad
	row.encargadoID = encargadoID
	db.stamp(&row.b.Auditable, actor, false)
	out := db.hydrateBodega(row)
	db.audit(actor, entity.OperacionUpdate, entidadBodega, before, out)
	return out, nil
}

// DeleteBodega elimina una bodega sin productos asociados.
func (db *DB) DeleteBodega(actor string, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.bodegas[id]
	if !ok {
		return notFound(entidadBodega)
	}
	for _, p := range db.productos {
		if p.bodegaID == id {
			return invalid("bodega", "La bodega tiene productos asociados")
		}
	}
	before := db.hydrateBodega(row)
	delete(db.bodegas, id)
	db.audit(actor, entity.OperacionDelete, entidadBodega, before, nil)
	return nil
}

func (db *DB) encargadoID(ref *entity.Ref) (int, error) {
	if ref == nil || ref.ID == 0 {
		return 0, nil
	}
	if _, ok := db.usuarios[ref.ID]; !ok {
		return 0, invalid("encargado", fmt.Sprintf("El usuario con ID %d no existe", ref.ID))
	}
	return ref.ID, nil
}

func validateBodega(in dto.BodegaRequest) error {
	switch {
	case strings.TrimSpace(in.Nombre) == "":
		return invalid("nombre", "El nombre no puede estar vacío")
	case utf8.RuneCountInString(in.Nombre) > 100:
		return invalid("nombre", "El nombre no puede tener más de 100 caracteres")
	case strings.TrimSpace(in.Ubicacion) == "":
		return invalid("ubicacion", "La ubicación no puede estar vacía")
	case utf8.RuneCountInString(in.Ubicacion) > 150:
		return invalid("ubicacion", "La ubicación no puede tener más de 150 caracteres")
	case in.Capacidad < 1:
		return invalid("capacidad", "La capacidad debe ser mayor a 0")
	}
	return nil
}
