package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bsgoods-inventory/internal/application/auth"
	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
	"github.com/jhoicas/bsgoods-inventory/internal/application/session"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/idgen"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/mock"
	infranotify "github.com/jhoicas/bsgoods-inventory/internal/infrastructure/notify"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bsgoods-inventory/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sin latencia
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	source   *mock.ProductSource
	sessions *session.Registry
}

var created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func fixtureProducts() []entity.Product {
	mk := func(id, name, sku string, cat entity.Category, st entity.Status, qty int, price string, day int) entity.Product {
		return entity.Product{
			ID: id, Name: name, SKU: sku, Supplier: "Proveedor", Category: cat, Status: st,
			QuantityInStock: qty, Price: decimal.RequireFromString(price), Icon: "Package",
			CreatedAt: created.AddDate(0, 0, day),
		}
	}
	return []entity.Product{
		mk("p1", "Laptop", "LAP-1", entity.CategoryElectronics, entity.StatusPublished, 5, "999.99", 0),
		mk("p2", "Sofa", "SOF-1", entity.CategoryFurniture, entity.StatusDraft, 2, "450.00", 1),
		mk("p3", "Camiseta", "SHI-1", entity.CategoryClothing, entity.StatusPublished, 40, "19.90", 2),
		mk("p4", "Novela", "BOO-1", entity.CategoryBooks, entity.StatusInactive, 12, "15.50", 3),
		mk("p5", "Audífonos", "AUD-1", entity.CategoryElectronics, entity.StatusDraft, 9, "89.00", 4),
		mk("p6", "Pelota", "BAL-1", entity.CategorySports, entity.StatusPublished, 30, "25.00", 5),
	}
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	v := validation.New(nil)
	users, err := memory.NewDemoUserRepository(testUserID, testEmail, testPassword, testName)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(users, v, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	source := mock.NewProductSourceWith(fixtureProducts(), 0)
	sessions := session.NewRegistry(session.Deps{
		Source:    source,
		Validator: v,
		IDs:       idgen.UUIDGenerator{},
		Icons:     icons.Default(),
		NewFeed:   func() notify.Feed { return infranotify.NewFeed(20) },
	}, session.Config{DefaultPageSize: 5}, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		Sessions:  sessions,
		Reports:   pdf.NewMarotoPDFGenerator("test"),
		Icons:     icons.Default(),
		Validator: v,
		JWTSecret: testJWTSecret,
	})
	return testEnv{app: app, source: source, sessions: sessions}
}

func (e testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail, Password: testPassword})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func names(rows []dto.ProductResponse) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func validInput() map[string]any {
	return map[string]any{
		"name":            "Lámpara",
		"sku":             "LAM-1",
		"supplier":        "Luz SA",
		"category":        "furniture",
		"status":          "Published",
		"quantityInStock": 3,
		"price":           "10.005",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail, Password: "otra-clave"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, env.sessions.Len())
}

func TestLogin_PasswordCorta(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail, Password: "123"})
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "password", out.Fields[0].Field)
}

func TestLogin_AbreSesionYCargaProductos(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	assert.Equal(t, 1, env.sessions.Len())
	list := decode[dto.ProductListResponse](t, env.do(t, http.MethodGet, "/api/products", tok, nil))
	assert.Equal(t, 6, list.Total)
}

func TestLogout_CierraSesion(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPost, "/api/auth/logout", tok, nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.sessions.Len())
}

func TestRutaProtegida_SinToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/table", "", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	me := decode[dto.UserResponse](t, env.do(t, http.MethodGet, "/api/auth/me", tok, nil))

	assert.Equal(t, testName, me.Name)
	assert.Equal(t, testEmail, me.Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CrearActualizarEliminar(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPost, "/api/products", tok, validInput())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "10.01", p.Price)
	assert.Equal(t, "Furniture", p.Category)
	assert.Equal(t, "Package", p.Icon)

	in := validInput()
	in["name"] = "Lámpara de pie"
	in["price"] = 12.5
	resp = env.do(t, http.MethodPut, "/api/products/"+p.ID, tok, in)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	upd := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, p.ID, upd.ID)
	assert.Equal(t, "12.50", upd.Price)
	assert.True(t, upd.CreatedAt.Equal(p.CreatedAt))

	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_ValidacionDevuelveCampos(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	in := validInput()
	in["sku"] = ""
	in["price"] = -1

	resp := env.do(t, http.MethodPost, "/api/products", tok, in)
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := map[string]bool{}
	for _, f := range out.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["sku"])
	assert.True(t, fields["price"])
}

func TestProducts_CuerpoInvalido(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", out.Code)
}

func TestProducts_UpdateYDeleteInexistente(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPut, "/api/products/nope", tok, validInput())
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/products/nope", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_Duplicar(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPost, "/api/products/p1/duplicate", tok, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cp := decode[dto.ProductResponse](t, resp)

	assert.Equal(t, "Laptop (copy)", cp.Name)
	assert.NotEqual(t, "p1", cp.ID)
	list := decode[dto.ProductListResponse](t, env.do(t, http.MethodGet, "/api/products", tok, nil))
	assert.Equal(t, 7, list.Total)
}

func TestProducts_RecargaFallidaConservaDatos(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	resp := env.do(t, http.MethodPost, "/api/products", tok, validInput())
	resp.Body.Close()

	env.source.FailNext(nil)
	resp = env.do(t, http.MethodPost, "/api/products/reload", tok, nil)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "LOAD_FAILED", out.Code)

	list := decode[dto.ProductListResponse](t, env.do(t, http.MethodGet, "/api/products", tok, nil))
	assert.Equal(t, 7, list.Total)

	resp = env.do(t, http.MethodPost, "/api/products/reload", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reloaded := decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 6, reloaded.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección
// ──────────────────────────────────────────────────────────────────────────────

func TestSelection_ConfirmarBorrado(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPut, "/api/selection", tok, dto.SelectionRequest{ProductID: "p2", Dialog: "delete"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sel := decode[dto.SelectionResponse](t, resp)
	require.NotNil(t, sel.Selected)
	assert.Equal(t, "Sofa", sel.Selected.Name)
	assert.True(t, sel.DeleteDialogOpen)

	resp = env.do(t, http.MethodPost, "/api/selection/delete", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	after := decode[dto.SelectionResponse](t, env.do(t, http.MethodGet, "/api/selection", tok, nil))
	assert.Nil(t, after.Selected)
	assert.False(t, after.DeleteDialogOpen)
}

func TestSelection_DialogoInvalido(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPut, "/api/selection", tok, dto.SelectionRequest{ProductID: "p2", Dialog: "otro"})
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelection_Cancelar(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	resp := env.do(t, http.MethodPut, "/api/selection", tok, dto.SelectionRequest{ProductID: "p1", Dialog: "edit"})
	resp.Body.Close()

	sel := decode[dto.SelectionResponse](t, env.do(t, http.MethodDelete, "/api/selection", tok, nil))

	assert.Nil(t, sel.Selected)
	assert.False(t, sel.ProductDialogOpen)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla
// ──────────────────────────────────────────────────────────────────────────────

func TestTable_VistaInicial(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	view := decode[dto.TableViewResponse](t, env.do(t, http.MethodGet, "/api/table", tok, nil))

	assert.Len(t, view.Rows, 5)
	assert.Equal(t, 6, view.TotalFiltered)
	assert.Equal(t, 6, view.TotalProducts)
	assert.Equal(t, 2, view.TotalPages)
	assert.True(t, view.CanNext)
	assert.False(t, view.CanPrev)
	assert.False(t, view.Loading)
	assert.Nil(t, view.Query.Sort)
	assert.Equal(t, "Laptop", view.Rows[0].Name, "orden de inserción")
}

func TestTable_FiltrosYReset(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	view := decode[dto.TableViewResponse](t, env.do(t, http.MethodPost, "/api/table/filters/categories/electronics", tok, nil))
	assert.Equal(t, []string{"Laptop", "Audífonos"}, names(view.Rows))
	assert.Equal(t, []string{"Electronics"}, view.Query.Categories)

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodPost, "/api/table/filters/statuses/Draft", tok, nil))
	assert.Equal(t, []string{"Audífonos"}, names(view.Rows))
	assert.Equal(t, 6, view.TotalProducts)

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodPost, "/api/table/filters/categories/Electronics", tok, nil))
	assert.Equal(t, []string{"Sofa", "Audífonos"}, names(view.Rows), "segundo toggle desmarca")

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodDelete, "/api/table/filters", tok, nil))
	assert.Equal(t, 6, view.TotalFiltered)
	assert.Empty(t, view.Query.Categories)
	assert.Empty(t, view.Query.Statuses)
}

func TestTable_FiltroDesconocido(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPost, "/api/table/filters/categories/Food", tok, nil)
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", out.Code)
}

func TestTable_OrdenarPorPrecio(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	view := decode[dto.TableViewResponse](t, env.do(t, http.MethodPut, "/api/table/sort", tok, dto.SortRequest{Column: "price", Direction: "desc"}))
	assert.Equal(t, "999.99", view.Rows[0].Price)
	require.NotNil(t, view.Query.Sort)
	assert.Equal(t, "price", view.Query.Sort.Column)
	assert.Equal(t, "desc", view.Query.Sort.Direction)

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodPut, "/api/table/sort", tok, dto.SortRequest{Column: "price"}))
	assert.Equal(t, "15.50", view.Rows[0].Price)

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodDelete, "/api/table/sort", tok, nil))
	assert.Nil(t, view.Query.Sort)
	assert.Equal(t, "Laptop", view.Rows[0].Name)
}

func TestTable_OrdenColumnaDesconocida(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodPut, "/api/table/sort", tok, dto.SortRequest{Column: "icon"})
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTable_Paginacion(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	view := decode[dto.TableViewResponse](t, env.do(t, http.MethodPost, "/api/table/pagination/next", tok, nil))
	assert.Equal(t, 1, view.PageIndex)
	assert.Equal(t, []string{"Pelota"}, names(view.Rows))
	assert.False(t, view.CanNext)

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodPost, "/api/table/pagination/next", tok, nil))
	assert.Equal(t, 1, view.PageIndex, "no pasa de la última página")

	size := 10
	index := 3
	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodPut, "/api/table/pagination", tok, dto.PaginationRequest{PageSize: &size, PageIndex: &index}))
	assert.Equal(t, 0, view.PageIndex, "cambiar el tamaño vuelve a la página 0")
	assert.Equal(t, 10, view.PageSize)
	assert.Len(t, view.Rows, 6)

	view = decode[dto.TableViewResponse](t, env.do(t, http.MethodPost, "/api/table/pagination/prev", tok, nil))
	assert.Equal(t, 0, view.PageIndex)
}

func TestTable_TamanoNoPermitido(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	size := 7

	resp := env.do(t, http.MethodPut, "/api/table/pagination", tok, dto.PaginationRequest{PageSize: &size})
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTable_Opciones(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	opts := decode[dto.TableOptionsResponse](t, env.do(t, http.MethodGet, "/api/table/options", tok, nil))

	assert.Equal(t, []int{5, 10, 15, 20, 30, 50}, opts.PageSizes)
	assert.Contains(t, opts.Categories, "Electronics")
	assert.Equal(t, []string{"Published", "Inactive", "Draft"}, opts.Statuses)
	assert.Contains(t, opts.Columns, "createdAt")
	assert.Equal(t, "Published", opts.Defaults.Status)
}

func TestTable_ExportarPDF(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	resp := env.do(t, http.MethodGet, "/api/table/export.pdf", tok, nil)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones, avisos e iconos
// ──────────────────────────────────────────────────────────────────────────────

func TestSesion_SeReabreConTokenValido(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	env.sessions.CloseAll()

	view := decode[dto.TableViewResponse](t, env.do(t, http.MethodGet, "/api/table", tok, nil))

	assert.Equal(t, 6, view.TotalProducts)
	assert.Equal(t, 1, env.sessions.Len())
}

func TestSesion_EstadoDeTablaPorUsuario(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	other := bearer(t, "2", testExpMin)[len("Bearer "):]

	resp := env.do(t, http.MethodPost, "/api/table/filters/categories/Books", tok, nil)
	resp.Body.Close()

	view := decode[dto.TableViewResponse](t, env.do(t, http.MethodGet, "/api/table", other, nil))
	assert.Equal(t, 6, view.TotalFiltered)
	assert.Empty(t, view.Query.Categories)
}

func TestNotificaciones_SeVacianAlLeer(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)
	resp := env.do(t, http.MethodDelete, "/api/products/p4", tok, nil)
	resp.Body.Close()

	toasts := decode[[]dto.NotificationResponse](t, env.do(t, http.MethodGet, "/api/notifications", tok, nil))
	require.Len(t, toasts, 1)
	assert.Equal(t, "success", toasts[0].Level)
	assert.Contains(t, toasts[0].Message, "Novela")

	again := decode[[]dto.NotificationResponse](t, env.do(t, http.MethodGet, "/api/notifications", tok, nil))
	assert.Empty(t, again)
}

func TestIconos(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t)

	list := decode[[]dto.IconResponse](t, env.do(t, http.MethodGet, "/api/icons", tok, nil))

	require.NotEmpty(t, list)
	assert.Equal(t, "Package", list[0].ID)
	assert.True(t, list[0].Default)
}
