package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/application/usecase"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// ─── fakes ────────────────────────────────────────────────────────────────────

type warehouses struct {
	created *dto.BodegaRequest
	items   []entity.Bodega
	err     error
}

func (w *warehouses) List(context.Context) ([]entity.Bodega, error) { return w.items, w.err }
func (w *warehouses) GetByID(_ context.Context, id int) (*entity.Bodega, error) {
	return &entity.Bodega{ID: id}, w.err
}
func (w *warehouses) Create(_ context.Context, in dto.BodegaRequest) (*entity.Bodega, error) {
	w.created = &in
	return &entity.Bodega{ID: 1, Nombre: in.Nombre}, w.err
}
func (w *warehouses) Update(_ context.Context, id int, in dto.BodegaRequest) (*entity.Bodega, error) {
	w.created = &in
	return &entity.Bodega{ID: id, Nombre: in.Nombre}, w.err
}
func (w *warehouses) Delete(context.Context, int) error { return w.err }

type products struct {
	saved *dto.ProductoRequest
	items []entity.Producto
	err   error
}

func (p *products) List(context.Context) ([]entity.Producto, error) { return p.items, p.err }
func (p *products) GetByID(_ context.Context, id int) (*entity.Producto, error) {
	return &entity.Producto{ID: id}, p.err
}
func (p *products) Create(_ context.Context, in dto.ProductoRequest) (*entity.Producto, error) {
	p.saved = &in
	return &entity.Producto{ID: 1}, p.err
}
func (p *products) Update(_ context.Context, id int, in dto.ProductoRequest) (*entity.Producto, error) {
	p.saved = &in
	return &entity.Producto{ID: id}, p.err
}
func (p *products) Delete(context.Context, int) error { return p.err }
func (p *products) ListStockBajo(context.Context, int) ([]entity.Producto, error) {
	return p.items, p.err
}

type users struct {
	saved *dto.UsuarioRequest
	err   error
}

func (u *users) List(context.Context) ([]entity.Usuario, error) { return nil, u.err }
func (u *users) GetByID(_ context.Context, id int) (*entity.Usuario, error) {
	return &entity.Usuario{ID: id}, u.err
}
func (u *users) GetByUsername(_ context.Context, name string) (*entity.Usuario, error) {
	return &entity.Usuario{ID: 3, Username: name}, u.err
}
func (u *users) ListEncargables(context.Context) ([]entity.Usuario, error) {
	return []entity.Usuario{{ID: 2, Rol: entity.RolEncargado}}, u.err
}
func (u *users) Create(_ context.Context, in dto.UsuarioRequest) (*entity.Usuario, error) {
	u.saved = &in
	return &entity.Usuario{ID: 9}, u.err
}
func (u *users) Update(_ context.Context, id int, in dto.UsuarioRequest) (*entity.Usuario, error) {
	u.saved = &in
	return &entity.Usuario{ID: id}, u.err
}
func (u *users) Delete(context.Context, int) error { return u.err }

type audits struct {
	tipo    entity.TipoOperacion
	entidad string
}

func (a *audits) List(context.Context) ([]entity.Auditoria, error) { return []entity.Auditoria{}, nil }
func (a *audits) ListByTipo(_ context.Context, t entity.TipoOperacion) ([]entity.Auditoria, error) {
	a.tipo = t
	return nil, nil
}
func (a *audits) ListByEntidad(_ context.Context, e string) ([]entity.Auditoria, error) {
	a.entidad = e
	return nil, nil
}

// ─── Bodegas ──────────────────────────────────────────────────────────────────

func TestWarehouseUseCase_Validacion(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(&warehouses{}, &users{})
	cases := map[string]dto.BodegaRequest{
		"nombre":    {Ubicacion: "Bogotá", Capacidad: 1},
		"ubicacion": {Nombre: "Central", Capacidad: 1},
		"capacidad": {Nombre: "Central", Ubicacion: "Bogotá"},
	}
	for field, in := range cases {
		_, err := uc.Create(context.Background(), in)
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, field)
		assert.Equal(t, field, vErr.Field)
	}
}

func TestWarehouseUseCase_NormalizaYCrea(t *testing.T) {
	repo := &warehouses{}
	uc := usecase.NewWarehouseUseCase(repo, &users{})

	_, err := uc.Create(context.Background(), dto.BodegaRequest{
		Nombre: "  Central ", Ubicacion: " Bogotá", Capacidad: 10, Encargado: &entity.Ref{ID: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "Central", repo.created.Nombre)
	assert.Nil(t, repo.created.Encargado, "un encargado sin ID no se envía")

	enc, err := uc.ListEncargables(context.Background())
	require.NoError(t, err)
	assert.Len(t, enc, 1)
}

func TestWarehouseUseCase_PropagaExpiracion(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(&warehouses{err: domain.ErrSessionExpired}, &users{})
	assert.ErrorIs(t, uc.Delete(context.Background(), 5), domain.ErrSessionExpired)
	assert.ErrorIs(t, uc.Delete(context.Background(), 0), domain.ErrInvalidInput)
}

// ─── Productos ────────────────────────────────────────────────────────────────

func TestProductUseCase_RedondeaPrecio(t *testing.T) {
	repo := &products{}
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(context.Background(), dto.ProductoRequest{
		Nombre: "Tornillo", Categoria: "Ferretería", Stock: 5,
		Precio: decimal.RequireFromString("10.256"), Bodega: entity.Ref{ID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.26", repo.saved.Precio.StringFixed(2))
}

func TestProductUseCase_Validacion(t *testing.T) {
	uc := usecase.NewProductUseCase(&products{})
	base := dto.ProductoRequest{Nombre: "Tornillo", Categoria: "Ferretería", Precio: decimal.NewFromInt(1), Bodega: entity.Ref{ID: 1}}

	neg := base
	neg.Stock = -1
	_, err := uc.Create(context.Background(), neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	precio := base
	precio.Precio = decimal.NewFromInt(-5)
	_, err = uc.Update(context.Background(), 3, precio)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sinBodega := base
	sinBodega.Bodega = entity.Ref{}
	_, err = uc.Create(context.Background(), sinBodega)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.StockBajo(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Usuarios ─────────────────────────────────────────────────────────────────

func TestUserUseCase_CrearRequierePassword(t *testing.T) {
	repo := &users{}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(context.Background(), dto.UsuarioRequest{Username: "eva", NombreCompleto: "Eva Ruiz", Rol: "ENCARGADO"})
	assert.EqualError(t, err, "La contraseña es requerida")
	assert.Nil(t, repo.saved)
}

func TestUserUseCase_EditarSinPasswordConservaLaActual(t *testing.T) {
	repo := &users{}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Update(context.Background(), 4, dto.UsuarioRequest{Username: "eva", NombreCompleto: "Eva Ruiz", Rol: "encargado"})
	require.NoError(t, err)
	assert.Empty(t, repo.saved.Password)
	assert.Equal(t, entity.RolEncargado, repo.saved.Rol)
}

func TestUserUseCase_RolInvalido(t *testing.T) {
	_, err := usecase.NewUserUseCase(&users{}).Create(context.Background(), dto.UsuarioRequest{
		Username: "eva", NombreCompleto: "Eva Ruiz", Rol: "GERENTE", Password: "secreta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Auditoría ────────────────────────────────────────────────────────────────

func TestAuditUseCase_Filtros(t *testing.T) {
	repo := &audits{}
	uc := usecase.NewAuditUseCase(repo)

	_, err := uc.ListByTipo(context.Background(), "delete")
	require.NoError(t, err)
	assert.Equal(t, entity.OperacionDelete, repo.tipo)

	_, err = uc.ListByTipo(context.Background(), "TRUNCATE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListByEntidad(context.Background(), " Bodega ")
	require.NoError(t, err)
	assert.Equal(t, "Bodega", repo.entidad)
}

// ─── Reporte ──────────────────────────────────────────────────────────────────

type session struct{}

func (session) Username() string { return "eva" }
func (session) Rol() entity.Rol  { return entity.RolEncargado }

type reports struct {
	resumen *dto.ResumenGeneral
	err     error
}

func (r *reports) ResumenGeneral(context.Context) (*dto.ResumenGeneral, error) {
	return r.resumen, r.err
}

type captureGenerator struct{ data ports.StockReportData }

func (g *captureGenerator) GenerateStockReport(_ context.Context, data ports.StockReportData) ([]byte, error) {
	g.data = data
	return []byte("%PDF-1.4"), nil
}

func TestReportUseCase_StockReport(t *testing.T) {
	gen := &captureGenerator{}
	wh := &warehouses{items: []entity.Bodega{{ID: 1, Nombre: "Central"}}}
	pr := &products{items: []entity.Producto{{ID: 1, Nombre: "Tornillo", Stock: 3}}}
	uc := usecase.NewReportUseCase(session{}, wh, pr, &reports{}, gen)

	pdf, name, err := uc.StockReport(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Regexp(t, `^reporte-stock-\d{8}-\d{4}\.pdf$`, name)
	assert.Equal(t, "eva", gen.data.GeneradoPor)
	assert.Equal(t, entity.RolEncargado, gen.data.Rol)
	assert.Equal(t, 10, gen.data.Umbral)
	assert.Len(t, gen.data.Bodegas, 1)
	assert.Len(t, gen.data.Productos, 1)
	assert.WithinDuration(t, time.Now(), gen.data.Fecha, time.Minute)
}

func TestReportUseCase_ExpiracionNoGeneraPDF(t *testing.T) {
	gen := &captureGenerator{}
	uc := usecase.NewReportUseCase(session{}, &warehouses{err: domain.ErrSessionExpired}, &products{}, &reports{}, gen)

	_, _, err := uc.StockReport(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Empty(t, gen.data.GeneradoPor)
}

func TestReportUseCase_ResumenGeneral(t *testing.T) {
	want := &dto.ResumenGeneral{TotalBodegas: 2, StockPorBodega: []dto.StockBodega{{NombreBodega: "Central", StockTotal: 124}}}
	uc := usecase.NewReportUseCase(session{}, &warehouses{}, &products{}, &reports{resumen: want}, &captureGenerator{})

	got, err := uc.ResumenGeneral(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestReportUseCase_ResumenGeneralPropagaExpiracion(t *testing.T) {
	uc := usecase.NewReportUseCase(session{}, &warehouses{}, &products{}, &reports{err: domain.ErrSessionExpired}, &captureGenerator{})

	_, err := uc.ResumenGeneral(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
