package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/session"
	apptable "github.com/jhoicas/bsgoods-inventory/internal/application/table"
	"github.com/jhoicas/bsgoods-inventory/internal/application/usecase"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	dtable "github.com/jhoicas/bsgoods-inventory/internal/domain/table"
)

// ReportTitle título del PDF exportado.
const ReportTitle = "Productos"

// TableHandler estado de consulta de la tabla (filtros, orden, paginación) y su vista.
// Toda modificación responde con la vista recalculada.
type TableHandler struct {
	validator *validation.Validator
	reports   apptable.ReportGenerator
	now       func() time.Time
}

// NewTableHandler construye el handler. reports puede ser nil (exportación deshabilitada).
func NewTableHandler(v *validation.Validator, reports apptable.ReportGenerator) *TableHandler {
	return &TableHandler{validator: v, reports: reports, now: time.Now}
}

// View godoc
// @Summary      Vista de la tabla
// @Description  Filas de la página actual, totales, flags de navegación, estado de consulta e indicador de carga.
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table [get]
func (h *TableHandler) View(c *fiber.Ctx) error {
	return c.JSON(viewResponse(GetSession(c)))
}

// Options godoc
// @Summary      Opciones de la tabla
// @Description  Categorías, estados, columnas ordenables, tamaños de página y valores por defecto del formulario.
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableOptionsResponse
// @Router       /api/table/options [get]
func (h *TableHandler) Options(c *fiber.Ctx) error {
	out := dto.TableOptionsResponse{
		Defaults:  GetSession(c).Products.DefaultInput(),
		PageSizes: dtable.AllowedPageSizes(),
	}
	for _, cat := range entity.AllCategories() {
		out.Categories = append(out.Categories, string(cat))
	}
	for _, st := range entity.AllStatuses() {
		out.Statuses = append(out.Statuses, string(st))
	}
	for _, col := range dtable.SortableColumns() {
		out.Columns = append(out.Columns, string(col))
	}
	return c.JSON(out)
}

// ToggleCategory godoc
// @Summary      Marcar/desmarcar categoría
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Param        value  path  string  true  "Categoría (sin distinguir mayúsculas)"
// @Success      200    {object}  dto.TableViewResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/table/filters/categories/{value} [post]
func (h *TableHandler) ToggleCategory(c *fiber.Ctx) error {
	cat, err := entity.ParseCategory(c.Params("value"))
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err))
	}
	s := GetSession(c)
	s.Table.ToggleCategory(cat)
	return c.JSON(viewResponse(s))
}

// ClearCategories godoc
// @Summary      Quitar filtro de categorías
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table/filters/categories [delete]
func (h *TableHandler) ClearCategories(c *fiber.Ctx) error {
	s := GetSession(c)
	s.Table.ClearCategories()
	return c.JSON(viewResponse(s))
}

// ToggleStatus godoc
// @Summary      Marcar/desmarcar estado
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Param        value  path  string  true  "Estado (sin distinguir mayúsculas)"
// @Success      200    {object}  dto.TableViewResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/table/filters/statuses/{value} [post]
func (h *TableHandler) ToggleStatus(c *fiber.Ctx) error {
	st, err := entity.ParseStatus(c.Params("value"))
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err))
	}
	s := GetSession(c)
	s.Table.ToggleStatus(st)
	return c.JSON(viewResponse(s))
}

// ClearStatuses godoc
// @Summary      Quitar filtro de estados
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table/filters/statuses [delete]
func (h *TableHandler) ClearStatuses(c *fiber.Ctx) error {
	s := GetSession(c)
	s.Table.ClearStatuses()
	return c.JSON(viewResponse(s))
}

// ResetFilters godoc
// @Summary      Limpiar filtros
// @Description  Botón "Reset": quita categorías y estados.
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table/filters [delete]
func (h *TableHandler) ResetFilters(c *fiber.Ctx) error {
	s := GetSession(c)
	s.Table.ResetFilters()
	return c.JSON(viewResponse(s))
}

// SetSort godoc
// @Summary      Ordenar
// @Description  Reemplaza el orden activo (una sola columna).
// @Tags         table
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SortRequest  true  "column, direction"
// @Success      200   {object}  dto.TableViewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/table/sort [put]
func (h *TableHandler) SetSort(c *fiber.Ctx) error {
	var in dto.SortRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(in); err != nil {
		return respondError(c, err)
	}
	col, err := dtable.ParseColumn(in.Column)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err))
	}
	dir, err := dtable.ParseDirection(in.Direction)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err))
	}
	s := GetSession(c)
	s.Table.SetSort(col, dir)
	return c.JSON(viewResponse(s))
}

// ClearSort godoc
// @Summary      Quitar orden
// @Description  Vuelve al orden de inserción.
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table/sort [delete]
func (h *TableHandler) ClearSort(c *fiber.Ctx) error {
	s := GetSession(c)
	s.Table.ClearSort()
	return c.JSON(viewResponse(s))
}

// SetPagination godoc
// @Summary      Cambiar página o tamaño
// @Description  Si cambia page_size la página vuelve a 0 y page_index se ignora.
// @Tags         table
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaginationRequest  true  "page_index, page_size"
// @Success      200   {object}  dto.TableViewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/table/pagination [put]
func (h *TableHandler) SetPagination(c *fiber.Ctx) error {
	var in dto.PaginationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(in); err != nil {
		return respondError(c, err)
	}
	s := GetSession(c)
	sizeChanged := false
	if in.PageSize != nil {
		sizeChanged = *in.PageSize != s.Table.State().Page.Size
		if err := s.Table.SetPageSize(*in.PageSize); err != nil {
			return respondError(c, err)
		}
	}
	if in.PageIndex != nil && !sizeChanged {
		if err := s.Table.SetPageIndex(*in.PageIndex); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(viewResponse(s))
}

// NextPage godoc
// @Summary      Página siguiente
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table/pagination/next [post]
func (h *TableHandler) NextPage(c *fiber.Ctx) error {
	s := GetSession(c)
	s.Table.NextPage(s.Products.Products())
	return c.JSON(viewResponse(s))
}

// PrevPage godoc
// @Summary      Página anterior
// @Tags         table
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TableViewResponse
// @Router       /api/table/pagination/prev [post]
func (h *TableHandler) PrevPage(c *fiber.Ctx) error {
	s := GetSession(c)
	s.Table.PrevPage()
	return c.JSON(viewResponse(s))
}

// ExportPDF godoc
// @Summary      Exportar tabla a PDF
// @Description  Todas las filas filtradas y ordenadas (sin paginar).
// @Tags         table
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/table/export.pdf [get]
func (h *TableHandler) ExportPDF(c *fiber.Ctx) error {
	if h.reports == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "exportación PDF no configurada"})
	}
	s := GetSession(c)
	report := s.Table.Report(ReportTitle, s.Products.Products(), h.now())
	pdf, err := h.reports.TableReport(c.UserContext(), report)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.pdf"`)
	return c.Send(pdf)
}

func viewResponse(s *session.Session) dto.TableViewResponse {
	products := s.Products.Products()
	res := s.Table.View(products)
	rows := make([]dto.ProductResponse, 0, len(res.Rows))
	for _, p := range res.Rows {
		rows = append(rows, usecase.ToProductResponse(p))
	}
	return dto.TableViewResponse{
		Rows:          rows,
		TotalFiltered: res.TotalFiltered,
		TotalPages:    res.TotalPages,
		PageIndex:     res.PageIndex,
		PageSize:      res.PageSize,
		CanNext:       res.CanNext,
		CanPrev:       res.CanPrev,
		TotalProducts: len(products),
		Loading:       s.Products.IsLoading(),
		Query:         queryResponse(s.Table.State()),
	}
}

func queryResponse(st apptable.State) dto.TableQueryResponse {
	out := dto.TableQueryResponse{
		Categories: make([]string, 0, len(st.Categories)),
		Statuses:   make([]string, 0, len(st.Statuses)),
		PageIndex:  st.Page.Index,
		PageSize:   st.Page.Size,
	}
	for _, c := range st.Categories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, s := range st.Statuses {
		out.Statuses = append(out.Statuses, string(s))
	}
	if st.Sort != nil {
		out.Sort = &dto.SortResponse{Column: string(st.Sort.Column), Direction: string(st.Sort.Direction)}
	}
	return out
}
