package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/rest"
)

type apiCall struct {
	Method string
	Path   string
	Body   any
}

// fakeAPI responde con un JSON fijo por ruta y registra las llamadas.
type fakeAPI struct {
	calls     []apiCall
	responses map[string]string
	errs      map[string]error
}

func (f *fakeAPI) Call(_ context.Context, method, path string, body any) (json.RawMessage, error) {
	f.calls = append(f.calls, apiCall{method, path, body})
	if err, ok := f.errs[method+" "+path]; ok {
		return nil, err
	}
	if raw, ok := f.responses[method+" "+path]; ok {
		return json.RawMessage(raw), nil
	}
	return nil, nil
}

func TestWarehouseRepo_CRUD(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /bodegas":   `[{"id":1,"nombre":"Central","ubicacion":"Bogotá","capacidad":100,"encargado":{"id":2,"username":"eva","rol":"ENCARGADO"}}]`,
		"GET /bodegas/1": `{"id":1,"nombre":"Central"}`,
		"POST /bodegas":  `{"id":9,"nombre":"Norte"}`,
		"PUT /bodegas/9": `{"id":9,"nombre":"Norte 2"}`,
	}}
	repo := rest.NewWarehouseRepository(api)
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "eva", all[0].Encargado.Username)

	b, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Central", b.Nombre)

	in := dto.BodegaRequest{Nombre: "Norte", Ubicacion: "Medellín", Capacidad: 50, Encargado: &entity.Ref{ID: 2}}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, in, api.calls[2].Body)

	updated, err := repo.Update(ctx, 9, in)
	require.NoError(t, err)
	assert.Equal(t, "Norte 2", updated.Nombre)

	require.NoError(t, repo.Delete(ctx, 9))
	assert.Equal(t, apiCall{http.MethodDelete, "/bodegas/9", nil}, api.calls[4])
}

func TestRepos_ListaVaciaNuncaEsNil(t *testing.T) {
	api := &fakeAPI{}
	all, err := rest.NewProductRepository(api).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestRepos_404EsNotFound(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{
		"GET /productos/3": &domain.HTTPError{Status: http.StatusNotFound, Body: "Producto no encontrado"},
	}}
	_, err := rest.NewProductRepository(api).GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Producto no encontrado")
}

func TestRepos_ExpiracionSePropaga(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"GET /auditorias": domain.ErrSessionExpired}}
	_, err := rest.NewAuditRepository(api).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestRepos_FormaInesperadaEsMalformada(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{"GET /usuarios": `{"no":"es una lista"}`}}
	_, err := rest.NewUserRepository(api).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

func TestProductRepo_PrecioDecimalYStockBajo(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /productos/stock-bajo/10": `[{"id":4,"nombre":"Tornillo","stock":3,"precio":1250.50}]`,
	}}
	items, err := rest.NewProductRepository(api).ListStockBajo(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(items[0].Precio))
	assert.True(t, decimal.RequireFromString("3751.5").Equal(items[0].ValorInventario()))
}

func TestUserRepo_RutasEspeciales(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /usuarios/username/ana%20m": `{"id":5,"username":"ana m","rol":"ADMIN"}`,
		"GET /usuarios/encargables":      `[{"id":2,"username":"eva","rol":"ENCARGADO"}]`,
	}}
	repo := rest.NewUserRepository(api)

	u, err := repo.GetByUsername(context.Background(), "ana m")
	require.NoError(t, err)
	assert.Equal(t, 5, u.ID)

	enc, err := repo.ListEncargables(context.Background())
	require.NoError(t, err)
	assert.Len(t, enc, 1)
}

func TestMovementRepo_CabeceraYDetalle(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"POST /movimientos":          `{"id":11,"tipo":"ENTRADA"}`,
		"POST /detalle-movimientos":  `{"id":21,"cantidad":4}`,
		"GET /movimientos/usuario/5": `[{"id":11,"tipo":"ENTRADA"}]`,
	}}
	repo := rest.NewInventoryMovementRepository(api)
	ctx := context.Background()

	m, err := repo.Create(ctx, dto.MovimientoRequest{Tipo: entity.MovimientoEntrada, Usuario: entity.Ref{ID: 5}, BodegaDestino: &entity.Ref{ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, 11, m.ID)

	d, err := repo.CreateDetalle(ctx, dto.DetalleMovimientoRequest{Movimiento: entity.Ref{ID: 11}, Producto: entity.Ref{ID: 3}, Cantidad: 4})
	require.NoError(t, err)
	assert.Equal(t, 21, d.ID)

	mine, err := repo.ListByUsuario(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestAuditRepo_Filtros(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /auditorias/tipo/DELETE":      `[{"id":1,"tipoOperacion":"DELETE","entidadAfectada":"Bodega"}]`,
		"GET /auditorias/entidad/Producto": `[]`,
	}}
	repo := rest.NewAuditRepository(api)

	del, err := repo.ListByTipo(context.Background(), entity.OperacionDelete)
	require.NoError(t, err)
	require.Len(t, del, 1)
	assert.Equal(t, "Bodega", del[0].EntidadAfectada)

	prod, err := repo.ListByEntidad(context.Background(), "Producto")
	require.NoError(t, err)
	assert.Empty(t, prod)
}

func TestReportRepo_ResumenGeneral(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /reportes/resumen-general": `{"stockPorBodega":[{"nombreBodega":"Central","stockTotal":124}],
			"productosStockBajo":null,"totalBodegas":2,"totalProductos":3,"totalMovimientos":0}`,
	}}

	r, err := rest.NewReportRepository(api).ResumenGeneral(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.StockBodega{{NombreBodega: "Central", StockTotal: 124}}, r.StockPorBodega)
	assert.NotNil(t, r.ProductosMasMovidos, "una lista ausente queda vacía")
	assert.NotNil(t, r.ProductosStockBajo)
	assert.Equal(t, 2, r.TotalBodegas)
}

func TestReportRepo_ResumenVacioEsMalformado(t *testing.T) {
	_, err := rest.NewReportRepository(&fakeAPI{}).ResumenGeneral(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformed)
}
