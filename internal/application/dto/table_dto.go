package dto

// SortRequest columna y sentido ("asc" por defecto).
type SortRequest struct {
	Column    string `json:"column" validate:"required" example:"price"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc ASC DESC" example:"desc"`
}

// PaginationRequest cambia tamaño y/o página. Si cambia el tamaño, la página vuelve a 0
// y se ignora PageIndex.
type PaginationRequest struct {
	PageIndex *int `json:"page_index" validate:"omitempty,gte=0"`
	PageSize  *int `json:"page_size" validate:"omitempty,oneof=5 10 15 20 30 50"`
}

// SortResponse orden activo.
type SortResponse struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// TableQueryResponse estado de filtros, orden y paginación.
type TableQueryResponse struct {
	Categories []string      `json:"categories"`
	Statuses   []string      `json:"statuses"`
	Sort       *SortResponse `json:"sort"`
	PageIndex  int           `json:"page_index"`
	PageSize   int           `json:"page_size"`
}

// TableViewResponse filas visibles más lo necesario para pintar la tabla.
type TableViewResponse struct {
	Rows          []ProductResponse  `json:"rows"`
	TotalFiltered int                `json:"total_filtered"`
	TotalPages    int                `json:"total_pages"`
	PageIndex     int                `json:"page_index"`
	PageSize      int                `json:"page_size"`
	CanNext       bool               `json:"can_next"`
	CanPrev       bool               `json:"can_prev"`
	TotalProducts int                `json:"total_products"`
	Loading       bool               `json:"loading"`
	Query         TableQueryResponse `json:"query"`
}

// TableOptionsResponse valores posibles de filtros, columnas y tamaños de página.
type TableOptionsResponse struct {
	Categories []string     `json:"categories"`
	Statuses   []string     `json:"statuses"`
	Columns    []string     `json:"columns"`
	PageSizes  []int        `json:"page_sizes"`
	Defaults   ProductInput `json:"defaults"`
}
