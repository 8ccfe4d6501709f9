package dto

import "time"

// CategoryRequest entrada para crear/actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// UnitRequest entrada para crear/actualizar una unidad de medida.
type UnitRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Type         string `json:"type"` // weight, volume, length, count, area
	IsActive     *bool  `json:"is_active,omitempty"`
}

// UnitResponse salida de una unidad de medida.
type UnitResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Type         string    `json:"type"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitializeUnitsResponse resultado de cargar las unidades por defecto.
type InitializeUnitsResponse struct {
	Created int    `json:"created"`
	Message string `json:"message"`
}
