package memdb

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

const entidadUsuario = "Usuario"

func (db *DB) findUsername(username string) *usuarioRow {
	for _, row := range db.usuarios {
		if row.u.Username == username {
			return row
		}
	}
	return nil
}

// Authenticate compara la contraseña con el hash bcrypt. Usuario inexistente y contraseña
// incorrecta devuelven el mismo error.
func (db *DB) Authenticate(username, password string) (entity.Usuario, error) {
	db.mu.Lock()
	row := db.findUsername(username)
	var (
		u    entity.Usuario
		hash []byte
	)
	if row != nil {
		u, hash = row.u, row.hash
	}
	db.mu.Unlock()
	if row == nil {
		return entity.Usuario{}, domain.ErrAuthentication
	}
	// bcrypt fuera del lock
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return entity.Usuario{}, domain.ErrAuthentication
	}
	return u, nil
}

// UsernameExists indica si el username ya está registrado.
func (db *DB) UsernameExists(username string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.findUsername(username) != nil
}

// Usuarios lista todos los usuarios por ID.
func (db *DB) Usuarios() []entity.Usuario {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Usuario, 0, len(db.usuarios))
	for _, id := range sortedIDs(db.usuarios) {
		out = append(out, db.usuarios[id].u)
	}
	return out
}

// Usuario busca por ID.
func (db *DB) Usuario(id int) (entity.Usuario, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.usuarios[id]
	if !ok {
		return entity.Usuario{}, notFound(entidadUsuario)
	}
	return row.u, nil
}

// UsuarioByUsername busca por username exacto.
func (db *DB) UsuarioByUsername(username string) (entity.Usuario, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	row := db.findUsername(username)
	if row == nil {
		return entity.Usuario{}, notFound(entidadUsuario)
	}
	return row.u, nil
}

// Encargables usuarios que pueden quedar a cargo de una bodega: encargados y luego operadores.
func (db *DB) Encargables() []entity.Usuario {
	all := db.Usuarios()
	out := make([]entity.Usuario, 0, len(all))
	for _, rol := range []entity.Rol{entity.RolEncargado, entity.RolOperador} {
		for _, u := range all {
			if u.Rol == rol {
				out = append(out, u)
			}
		}
	}
	return out
}

// Register alta pública desde la pantalla de registro; el propio usuario queda como autor.
func (db *DB) Register(in dto.RegisterRequest) (entity.Usuario, error) {
	return db.CreateUsuario(in.Username, dto.UsuarioRequest{
		Username:       in.Username,
		NombreCompleto: in.NombreCompleto,
		Rol:            in.Rol,
		Password:       in.Password,
	})
}

// CreateUsuario crea un usuario con la contraseña hasheada.
func (db *DB) CreateUsuario(actor string, in dto.UsuarioRequest) (entity.Usuario, error) {
	if err := validateUsuario(in); err != nil {
		return entity.Usuario{}, err
	}
	if in.Password == "" {
		return entity.Usuario{}, invalid("password", "La contraseña es requerida")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), db.cost)
	if err != nil {
		return entity.Usuario{}, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.findUsername(in.Username) != nil {
		return entity.Usuario{}, domain.ErrUsernameTaken
	}
	row := &usuarioRow{
		u: entity.Usuario{
			ID:             db.nextID("usuarios"),
			Username:       in.Username,
			NombreCompleto: in.NombreCompleto,
			Rol:            in.Rol,
		},
		hash: hash,
	}
	db.stamp(&row.u.Auditable, actor, true)
	db.usuarios[row.u.ID] = row
	db.audit(actor, entity.OperacionInsert, entidadUsuario, nil, row.u)
	return row.u, nil
}

// UpdateUsuario actualiza los datos; una contraseña vacía conserva la actual.
func (db *DB) UpdateUsuario(actor string, id int, in dto.UsuarioRequest) (entity.Usuario, error) {
	if err := validateUsuario(in); err != nil {
		return entity.Usuario{}, err
	}
	var hash []byte
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), db.cost)
		if err != nil {
			return entity.Usuario{}, err
		}
		hash = h
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.usuarios[id]
	if !ok {
		return entity.Usuario{}, notFound(entidadUsuario)
	}
	if other := db.findUsername(in.Username); other != nil && other.u.ID != id {
		return entity.Usuario{}, domain.ErrUsernameTaken
	}
	before := row.u
	row.u.Username = in.Username
	row.u.NombreCompleto = in.NombreCompleto
	row.u.Rol = in.Rol
	if hash != nil {
		row.hash = hash
	}
	db.stamp(&row.u.Auditable, actor, false)
	db.audit(actor, entity.OperacionUpdate, entidadUsuario, before, row.u)
	return row.u, nil
}

// DeleteUsuario elimina el usuario. Las bodegas que lo tenían como encargado quedan sin él.
func (db *DB) DeleteUsuario(actor string, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.usuarios[id]
	if !ok {
		return notFound(entidadUsuario)
	}
	delete(db.usuarios, id)
	for _, b := range db.bodegas {
		if b.encargadoID == id {
			b.encargadoID = 0
		}
	}
	db.audit(actor, entity.OperacionDelete, entidadUsuario, row.u, nil)
	return nil
}

func validateUsuario(in dto.UsuarioRequest) error {
	if strings.TrimSpace(in.Username) == "" {
		return invalid("username", "El username es obligatorio")
	}
	if strings.TrimSpace(in.NombreCompleto) == "" {
		return invalid("nombreCompleto", "El nombre completo es obligatorio")
	}
	if !in.Rol.Valid() {
		return invalid("rol", "Rol inválido")
	}
	return nil
}
