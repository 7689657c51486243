package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/inventory"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

type fixedSession string

func (s fixedSession) Username() string { return string(s) }

// recorder anota el orden de las llamadas a los repositorios.
type recorder struct {
	steps      []string
	movReq     *dto.MovimientoRequest
	detalleReq *dto.DetalleMovimientoRequest
	failAt     string
	emptyAt    string // el paso responde sin ID (null o 204)
}

func (r *recorder) step(name string) error {
	r.steps = append(r.steps, name)
	if r.failAt == name {
		return &domain.HTTPError{Status: 500, Body: "falló " + name}
	}
	return nil
}

type fakeUsers struct{ *recorder }

func (f fakeUsers) List(context.Context) ([]entity.Usuario, error) { return nil, nil }
func (f fakeUsers) GetByID(context.Context, int) (*entity.Usuario, error) { return nil, nil }
func (f fakeUsers) ListEncargables(context.Context) ([]entity.Usuario, error) { return nil, nil }
func (f fakeUsers) Delete(context.Context, int) error { return nil }
func (f fakeUsers) Create(context.Context, dto.UsuarioRequest) (*entity.Usuario, error) {
	return nil, nil
}
func (f fakeUsers) Update(context.Context, int, dto.UsuarioRequest) (*entity.Usuario, error) {
	return nil, nil
}
func (f fakeUsers) GetByUsername(_ context.Context, username string) (*entity.Usuario, error) {
	if err := f.step("usuario:" + username); err != nil {
		return nil, err
	}
	if f.emptyAt == "usuario:"+username {
		return &entity.Usuario{}, nil
	}
	return &entity.Usuario{ID: 42, Username: username}, nil
}

type fakeMovs struct{ *recorder }

func (f fakeMovs) List(context.Context) ([]entity.Movimiento, error) {
	return []entity.Movimiento{{ID: 1}, {ID: 2}}, nil
}
func (f fakeMovs) GetByID(_ context.Context, id int) (*entity.Movimiento, error) {
	return &entity.Movimiento{ID: id}, nil
}
func (f fakeMovs) ListByUsuario(_ context.Context, id int) ([]entity.Movimiento, error) {
	if err := f.step("mis-movimientos"); err != nil {
		return nil, err
	}
	return []entity.Movimiento{{ID: 7, Usuario: &entity.Usuario{ID: id}}}, nil
}
func (f fakeMovs) Create(_ context.Context, in dto.MovimientoRequest) (*entity.Movimiento, error) {
	if err := f.step("movimiento"); err != nil {
		return nil, err
	}
	f.movReq = &in
	if f.emptyAt == "movimiento" {
		return nil, nil
	}
	return &entity.Movimiento{ID: 100, Tipo: in.Tipo}, nil
}
func (f fakeMovs) CreateDetalle(_ context.Context, in dto.DetalleMovimientoRequest) (*entity.DetalleMovimiento, error) {
	if err := f.step("detalle"); err != nil {
		return nil, err
	}
	f.detalleReq = &in
	return &entity.DetalleMovimiento{ID: 200, Cantidad: in.Cantidad}, nil
}

func newUseCase(rec *recorder, username string) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(fixedSession(username), fakeUsers{rec}, fakeMovs{rec}, nil)
}

// ─── Validación ───────────────────────────────────────────────────────────────

func TestValidateMovement(t *testing.T) {
	base := dto.RegistrarMovimientoInput{Tipo: "ENTRADA", BodegaDestinoID: 1, ProductoID: 3, Cantidad: 5}
	cases := []struct {
		name   string
		mutate func(*dto.RegistrarMovimientoInput)
		msg    string
	}{
		{"sin tipo", func(in *dto.RegistrarMovimientoInput) { in.Tipo = "" }, "Selecciona tipo"},
		{"sin producto", func(in *dto.RegistrarMovimientoInput) { in.ProductoID = 0 }, "Selecciona producto"},
		{"cantidad cero", func(in *dto.RegistrarMovimientoInput) { in.Cantidad = 0 }, "Cantidad inválida"},
		{"cantidad negativa", func(in *dto.RegistrarMovimientoInput) { in.Cantidad = -3 }, "Cantidad inválida"},
		{"entrada sin destino", func(in *dto.RegistrarMovimientoInput) { in.BodegaDestinoID = 0 }, "ENTRADA necesita destino"},
		{"salida sin origen", func(in *dto.RegistrarMovimientoInput) { in.Tipo = "SALIDA" }, "SALIDA necesita origen"},
		{"transferencia sin origen", func(in *dto.RegistrarMovimientoInput) { in.Tipo = "TRANSFERENCIA" }, "TRANSFERENCIA necesita ambos"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := inventory.ValidateMovement(in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tc.msg, err.Error())
		})
	}

	tipo, err := inventory.ValidateMovement(dto.RegistrarMovimientoInput{Tipo: "transferencia", BodegaOrigenID: 1, BodegaDestinoID: 2, ProductoID: 3, Cantidad: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoTransferencia, tipo)
}

// ─── Registro ─────────────────────────────────────────────────────────────────

func TestRegisterMovement_OrdenEstricto(t *testing.T) {
	rec := &recorder{}
	uc := newUseCase(rec, "eva")

	out, err := uc.RegisterMovement(context.Background(), dto.RegistrarMovimientoInput{
		Tipo: "ENTRADA", BodegaDestinoID: 2, ProductoID: 9, Cantidad: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"usuario:eva", "movimiento", "detalle"}, rec.steps)

	assert.Equal(t, entity.Ref{ID: 42}, rec.movReq.Usuario)
	assert.Nil(t, rec.movReq.BodegaOrigen, "sin origen viaja como null")
	assert.Equal(t, &entity.Ref{ID: 2}, rec.movReq.BodegaDestino)
	assert.Equal(t, dto.DetalleMovimientoRequest{Movimiento: entity.Ref{ID: 100}, Producto: entity.Ref{ID: 9}, Cantidad: 4}, *rec.detalleReq)

	assert.Equal(t, 100, out.Movimiento.ID)
	assert.Equal(t, 200, out.Detalle.ID)
}

func TestRegisterMovement_FalloDetieneLaCadena(t *testing.T) {
	for _, failAt := range []string{"usuario:eva", "movimiento", "detalle"} {
		t.Run(failAt, func(t *testing.T) {
			rec := &recorder{failAt: failAt}
			_, err := newUseCase(rec, "eva").RegisterMovement(context.Background(), dto.RegistrarMovimientoInput{
				Tipo: "SALIDA", BodegaOrigenID: 1, ProductoID: 9, Cantidad: 1,
			})
			assert.ErrorIs(t, err, domain.ErrHTTP)
			assert.Equal(t, failAt, rec.steps[len(rec.steps)-1], "no se ejecuta nada después del paso fallido")
		})
	}
}

func TestRegisterMovement_RespuestaSinIDDetieneLaCadena(t *testing.T) {
	for _, emptyAt := range []string{"usuario:eva", "movimiento"} {
		t.Run(emptyAt, func(t *testing.T) {
			rec := &recorder{emptyAt: emptyAt}
			out, err := newUseCase(rec, "eva").RegisterMovement(context.Background(), dto.RegistrarMovimientoInput{
				Tipo: "SALIDA", BodegaOrigenID: 1, ProductoID: 9, Cantidad: 1,
			})
			assert.Nil(t, out)
			var malformed *domain.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.ErrorIs(t, err, domain.ErrMalformed)
			assert.Equal(t, emptyAt, rec.steps[len(rec.steps)-1], "no se envía ninguna petición con id 0")
			assert.Nil(t, rec.detalleReq)
		})
	}
}

func TestListMine_UsuarioSinIDNoConsultaMovimientos(t *testing.T) {
	rec := &recorder{emptyAt: "usuario:luis"}
	_, err := newUseCase(rec, "luis").ListMine(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformed)
	assert.Equal(t, []string{"usuario:luis"}, rec.steps)
}

func TestRegisterMovement_ValidacionNoLlamaAlBackend(t *testing.T) {
	rec := &recorder{}
	_, err := newUseCase(rec, "eva").RegisterMovement(context.Background(), dto.RegistrarMovimientoInput{Tipo: "ENTRADA", ProductoID: 1, Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, rec.steps)
}

func TestRegisterMovement_SinSesion(t *testing.T) {
	rec := &recorder{}
	_, err := newUseCase(rec, "").RegisterMovement(context.Background(), dto.RegistrarMovimientoInput{Tipo: "ENTRADA", BodegaDestinoID: 1, ProductoID: 1, Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, rec.steps)
}

func TestListMine_ResuelveIDDelUsuario(t *testing.T) {
	rec := &recorder{}
	movs, err := newUseCase(rec, "luis").ListMine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"usuario:luis", "mis-movimientos"}, rec.steps)
	require.Len(t, movs, 1)
	assert.Equal(t, 42, movs[0].Usuario.ID)
}

// ─── Reposición ───────────────────────────────────────────────────────────────

type lowStockRepo struct {
	fakeProducts
	items []entity.Producto
	err   error
}

func (r lowStockRepo) ListStockBajo(context.Context, int) ([]entity.Producto, error) {
	return r.items, r.err
}

func TestReplenishment_PrioridadPorDeficit(t *testing.T) {
	repo := lowStockRepo{items: []entity.Producto{
		{ID: 1, Nombre: "Tornillo", Stock: 8, Precio: decimal.NewFromInt(100)},
		{ID: 2, Nombre: "Tuerca", Stock: 2, Precio: decimal.NewFromInt(50), Bodega: &entity.Bodega{Nombre: "Central"}},
		{ID: 3, Nombre: "Arandela", Stock: 8, Precio: decimal.NewFromInt(300)},
	}}
	out, err := inventory.NewReplenishmentUseCase(repo).GenerateReplenishmentList(context.Background(), inventory.DefaultStockThreshold)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, 2, out[0].ProductoID)
	assert.Equal(t, 13, out[0].CantidadSugerida)
	assert.Equal(t, 15, out[0].StockIdeal)
	assert.Equal(t, "Central", out[0].Bodega)
	assert.Equal(t, 3, out[1].ProductoID, "a igual déficit gana el de mayor valor")
	assert.True(t, decimal.NewFromInt(2100).Equal(out[1].ValorEstimado))
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].Prioridad, out[1].Prioridad, out[2].Prioridad})
}

func TestReplenishment_UmbralInvalido(t *testing.T) {
	_, err := inventory.NewReplenishmentUseCase(lowStockRepo{}).GenerateReplenishmentList(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_PropagaExpiracion(t *testing.T) {
	repo := lowStockRepo{err: domain.ErrSessionExpired}
	_, err := inventory.NewReplenishmentUseCase(repo).GenerateReplenishmentList(context.Background(), 10)
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
}

type fakeProducts struct{}

func (fakeProducts) List(context.Context) ([]entity.Producto, error) { return nil, nil }
func (fakeProducts) GetByID(context.Context, int) (*entity.Producto, error) { return nil, nil }
func (fakeProducts) Delete(context.Context, int) error { return nil }
func (fakeProducts) Create(context.Context, dto.ProductoRequest) (*entity.Producto, error) {
	return nil, nil
}
func (fakeProducts) Update(context.Context, int, dto.ProductoRequest) (*entity.Producto, error) {
	return nil, nil
}
func (fakeProducts) ListStockBajo(context.Context, int) ([]entity.Producto, error) { return nil, nil }
