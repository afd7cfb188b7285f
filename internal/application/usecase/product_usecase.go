package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
	"github.com/jhoicas/bsgoods-inventory/internal/application/store"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/pkg/logger"
)

// IDGenerator genera identificadores únicos para productos nuevos.
type IDGenerator interface {
	NewID() string
}

// Dialog diálogo que abre una selección.
type Dialog string

const (
	DialogEdit   Dialog = "edit"
	DialogDelete Dialog = "delete"
)

// CopySuffix se agrega al nombre del producto duplicado.
const CopySuffix = " (copy)"

// ProductUseCase acciones de la pantalla de productos sobre el store de una sesión.
// Ninguna escritura se despacha mientras el store está ocupado.
type ProductUseCase struct {
	store     *store.Store
	validator *validation.Validator
	ids       IDGenerator
	icons     *icons.Registry
	notifier  notify.Notifier
	log       *logger.Logger
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso. notifier y log pueden ser nil.
func NewProductUseCase(st *store.Store, v *validation.Validator, ids IDGenerator, reg *icons.Registry, n notify.Notifier, log *logger.Logger) *ProductUseCase {
	if reg == nil {
		reg = icons.Default()
	}
	if n == nil {
		n = notify.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		store:     st,
		validator: v,
		ids:       ids,
		icons:     reg,
		notifier:  n,
		log:       log.Component("products"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj usado para CreatedAt.
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// Load recarga la colección desde el origen de datos.
func (uc *ProductUseCase) Load(ctx context.Context) error {
	return uc.RunLoad(ctx, uc.store.BeginLoad())
}

// RunLoad completa una carga reservada con store.BeginLoad (el store ya figura ocupado).
func (uc *ProductUseCase) RunLoad(ctx context.Context, pending *store.PendingLoad) error {
	products, err := pending.Run(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("carga de productos fallida")
		uc.notifier.Notify(ctx, notify.Error("No se pudieron cargar los productos."))
		return err
	}
	uc.log.Debug().Int("count", len(products)).Msg("productos cargados")
	return nil
}

// List colección completa en orden de inserción.
func (uc *ProductUseCase) List() dto.ProductListResponse {
	products := uc.store.Products()
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p))
	}
	return dto.ProductListResponse{Items: items, Total: len(items)}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, ok := uc.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	out := ToProductResponse(p)
	return &out, nil
}

// Products copia de la colección para derivar la vista de la tabla.
func (uc *ProductUseCase) Products() []entity.Product {
	return uc.store.Products()
}

// IsLoading indicador de operación en curso.
func (uc *ProductUseCase) IsLoading() bool {
	return uc.store.IsLoading()
}

// Create valida el formulario, asigna ID, fecha de creación e icono por defecto y agrega el producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	if err := uc.ready(); err != nil {
		return nil, err
	}
	if err := uc.validator.Product(in); err != nil {
		return nil, err
	}
	p := uc.fromInput(in, "")
	p.ID = uc.ids.NewID()
	p.CreatedAt = uc.now()
	if err := uc.store.Add(ctx, p); err != nil {
		uc.fail(ctx, err, "Algo salió mal al agregar el producto.")
		return nil, err
	}
	uc.log.Debug().Str("product_id", p.ID).Msg("producto agregado")
	uc.notifier.Notify(ctx, notify.Success("¡Producto agregado!"))
	out := ToProductResponse(p)
	return &out, nil
}

// Update reemplaza los campos editables de id. ID y CreatedAt no cambian.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	if err := uc.ready(); err != nil {
		return nil, err
	}
	if err := uc.validator.Product(in); err != nil {
		return nil, err
	}
	current, ok := uc.store.Get(id)
	if !ok {
		uc.store.DismissProductDialog()
		err := fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		uc.fail(ctx, err, "Algo salió mal al actualizar el producto.")
		return nil, err
	}
	p := uc.fromInput(in, current.Icon)
	p.ID = current.ID
	p.CreatedAt = current.CreatedAt
	if err := uc.store.Update(ctx, p); err != nil {
		uc.fail(ctx, err, "Algo salió mal al actualizar el producto.")
		return nil, err
	}
	uc.log.Debug().Str("product_id", id).Msg("producto actualizado")
	uc.notifier.Notify(ctx, notify.Success("¡Producto actualizado!"))
	out := ToProductResponse(p)
	return &out, nil
}

// Delete elimina id.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.ready(); err != nil {
		return err
	}
	current, ok := uc.store.Get(id)
	if !ok {
		uc.store.DismissDeleteDialog()
		err := fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		uc.fail(ctx, err, "Algo salió mal al eliminar el producto.")
		return err
	}
	if err := uc.store.Delete(ctx, id); err != nil {
		uc.fail(ctx, err, "Algo salió mal al eliminar el producto.")
		return err
	}
	uc.log.Debug().Str("product_id", id).Msg("producto eliminado")
	uc.notifier.Notify(ctx, notify.Success(fmt.Sprintf("El producto [%s] fue eliminado.", current.Name)))
	return nil
}

// Duplicate agrega una copia de id con ID y fecha nuevos y el nombre con el sufijo " (copy)".
func (uc *ProductUseCase) Duplicate(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if err := uc.ready(); err != nil {
		return nil, err
	}
	src, ok := uc.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	in := ToProductInput(src)
	in.Name += CopySuffix
	if err := uc.validator.Product(in); err != nil {
		return nil, err
	}
	cp := src
	cp.Name = in.Name
	cp.ID = uc.ids.NewID()
	cp.CreatedAt = uc.now()
	if err := uc.store.Add(ctx, cp); err != nil {
		uc.fail(ctx, err, "Algo salió mal al copiar el producto.")
		return nil, err
	}
	uc.log.Debug().Str("product_id", cp.ID).Str("source_id", id).Msg("producto copiado")
	uc.notifier.Notify(ctx, notify.Success("¡Producto copiado!"))
	out := ToProductResponse(cp)
	return &out, nil
}

// DeleteSelected confirma el diálogo de borrado sobre el producto seleccionado.
func (uc *ProductUseCase) DeleteSelected(ctx context.Context) error {
	sel := uc.store.Selected()
	if sel == nil {
		return fmt.Errorf("%w: no hay producto seleccionado", domain.ErrNotFound)
	}
	return uc.Delete(ctx, sel.ID)
}

// Select selecciona id y abre el diálogo indicado.
func (uc *ProductUseCase) Select(id string, dialog Dialog) (dto.SelectionResponse, error) {
	if dialog != DialogEdit && dialog != DialogDelete {
		return dto.SelectionResponse{}, fmt.Errorf("%w: diálogo %q", domain.ErrInvalidInput, dialog)
	}
	p, ok := uc.store.Get(id)
	if !ok {
		return dto.SelectionResponse{}, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	uc.store.Select(&p)
	if dialog == DialogEdit {
		uc.store.SetProductDialogOpen(true)
	} else {
		uc.store.SetDeleteDialogOpen(true)
	}
	return uc.Selection(), nil
}

// ClearSelection cierra los diálogos y limpia la selección (botón "Cancel").
func (uc *ProductUseCase) ClearSelection() {
	uc.store.Select(nil)
	uc.store.SetProductDialogOpen(false)
	uc.store.SetDeleteDialogOpen(false)
}

// Selection estado actual de selección y diálogos.
func (uc *ProductUseCase) Selection() dto.SelectionResponse {
	st := uc.store.UIState()
	out := dto.SelectionResponse{
		ProductDialogOpen: st.ProductDialogOpen,
		DeleteDialogOpen:  st.DeleteDialogOpen,
		Loading:           st.Loading,
	}
	if st.Selected != nil {
		r := ToProductResponse(*st.Selected)
		out.Selected = &r
	}
	return out
}

func (uc *ProductUseCase) ready() error {
	if uc.store.IsLoading() {
		return domain.ErrBusy
	}
	return nil
}

func (uc *ProductUseCase) fail(ctx context.Context, err error, msg string) {
	uc.log.Warn().Err(err).Msg(msg)
	uc.notifier.Notify(ctx, notify.Error(msg))
}

// fromInput convierte un formulario ya validado. Un icono vacío conserva keepIcon o,
// si tampoco hay, usa el del catálogo por defecto.
func (uc *ProductUseCase) fromInput(in dto.ProductInput, keepIcon entity.IconID) entity.Product {
	cat, _ := entity.ParseCategory(in.Category)
	st, _ := entity.ParseStatus(in.Status)
	icon := entity.IconID(in.Icon)
	if icon == "" {
		icon = keepIcon
	}
	if icon == "" {
		icon = uc.icons.DefaultIcon()
	}
	p := entity.Product{
		Name:     in.Name,
		SKU:      in.SKU,
		Supplier: in.Supplier,
		Category: cat,
		Status:   st,
		Icon:     icon,
	}
	if in.QuantityInStock != nil {
		p.QuantityInStock = *in.QuantityInStock
	}
	if in.Price != nil {
		p.Price = entity.RoundPrice(*in.Price)
	}
	return p
}

// DefaultInput valores iniciales del formulario de alta.
func (uc *ProductUseCase) DefaultInput() dto.ProductInput {
	return dto.ProductInput{
		Category: string(entity.CategoryElectronics),
		Status:   string(entity.StatusPublished),
		Icon:     string(uc.icons.DefaultIcon()),
	}
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Supplier:        p.Supplier,
		Category:        string(p.Category),
		Status:          string(p.Status),
		QuantityInStock: p.QuantityInStock,
		Price:           p.Price.StringFixed(entity.PriceScale),
		Icon:            string(p.Icon),
		CreatedAt:       p.CreatedAt,
	}
}

// ToProductInput formulario precargado con los valores de p (diálogo de edición y copia).
func ToProductInput(p entity.Product) dto.ProductInput {
	qty := p.QuantityInStock
	price := p.Price
	return dto.ProductInput{
		Name:            p.Name,
		SKU:             p.SKU,
		Supplier:        p.Supplier,
		Category:        string(p.Category),
		Status:          string(p.Status),
		QuantityInStock: &qty,
		Price:           &price,
		Icon:            string(p.Icon),
	}
}
