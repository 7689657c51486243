// Package memdb es el almacenamiento en memoria del backend sandbox: usuarios con hash bcrypt,
// bodegas, productos, movimientos con sus detalles y la bitácora de auditoría. Reproduce las
// reglas de negocio del backend real (capacidad de bodega, stock disponible) para que el
// cliente pueda probarse de punta a punta sin base de datos. No persiste nada.
package memdb

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// timeLayout formato de fechas del backend (sin zona horaria).
const timeLayout = "2006-01-02T15:04:05"

type usuarioRow struct {
	u    entity.Usuario
	hash []byte
}

type bodegaRow struct {
	b           entity.Bodega
	encargadoID int
}

type productoRow struct {
	p        entity.Producto
	bodegaID int
}

type movimientoRow struct {
	m         entity.Movimiento
	usuarioID int
	origenID  int
	destinoID int
}

type detalleRow struct {
	d            entity.DetalleMovimiento
	movimientoID int
	productoID   int
}

// DB base de datos en memoria, segura para uso concurrente.
type DB struct {
	mu   sync.Mutex
	cost int
	now  func() time.Time

	seq         map[string]int
	usuarios    map[int]*usuarioRow
	bodegas     map[int]*bodegaRow
	productos   map[int]*productoRow
	movimientos map[int]*movimientoRow
	detalles    map[int]*detalleRow
	auditorias  []entity.Auditoria
}

// New crea una base vacía. cost es el costo bcrypt; 0 usa bcrypt.DefaultCost.
func New(cost int) *DB {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &DB{
		cost:        cost,
		now:         time.Now,
		seq:         map[string]int{},
		usuarios:    map[int]*usuarioRow{},
		bodegas:     map[int]*bodegaRow{},
		productos:   map[int]*productoRow{},
		movimientos: map[int]*movimientoRow{},
		detalles:    map[int]*detalleRow{},
	}
}

func (db *DB) nextID(table string) int {
	db.seq[table]++
	return db.seq[table]
}

func (db *DB) timestamp() string {
	return db.now().Format(timeLayout)
}

func (db *DB) stamp(a *entity.Auditable, actor string, created bool) {
	ts := db.timestamp()
	if created {
		a.FechaCreacion = ts
		a.CreadoPor = actor
	}
	a.FechaModificacion = ts
	a.ModificadoPor = actor
}

// audit registra la operación con los valores anterior y nuevo serializados a JSON.
func (db *DB) audit(actor string, op entity.TipoOperacion, entidad string, before, after any) {
	entry := entity.Auditoria{
		ID:              db.nextID("auditorias"),
		FechaHora:       db.timestamp(),
		TipoOperacion:   op,
		EntidadAfectada: entidad,
		ValorAnterior:   marshalOrEmpty(before),
		ValorNuevo:      marshalOrEmpty(after),
	}
	if row := db.findUsername(actor); row != nil {
		u := row.u
		entry.Usuario = &u
	}
	db.auditorias = append(db.auditorias, entry)
}

func marshalOrEmpty(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Auditorias devuelve la bitácora completa, la más reciente primero.
func (db *DB) Auditorias() []entity.Auditoria {
	return db.filterAuditorias(func(entity.Auditoria) bool { return true })
}

// AuditoriasByTipo filtra por tipo de operación.
func (db *DB) AuditoriasByTipo(tipo entity.TipoOperacion) []entity.Auditoria {
	return db.filterAuditorias(func(a entity.Auditoria) bool { return a.TipoOperacion == tipo })
}

// AuditoriasByEntidad filtra por entidad afectada (ej. "Bodega").
func (db *DB) AuditoriasByEntidad(entidad string) []entity.Auditoria {
	return db.filterAuditorias(func(a entity.Auditoria) bool { return a.EntidadAfectada == entidad })
}

func (db *DB) filterAuditorias(keep func(entity.Auditoria) bool) []entity.Auditoria {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Auditoria, 0, len(db.auditorias))
	for i := len(db.auditorias) - 1; i >= 0; i-- {
		if keep(db.auditorias[i]) {
			out = append(out, db.auditorias[i])
		}
	}
	return out
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func notFound(what string) error {
	return &notFoundError{what: what}
}

type notFoundError struct{ what string }

func (e *notFoundError) Error() string { return e.what + " no encontrado" }

func (e *notFoundError) Is(target error) bool { return target == domain.ErrNotFound }

func invalid(field, msg string) error {
	return &domain.ValidationError{Field: field, Message: msg}
}
