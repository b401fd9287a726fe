package dto

import "encoding/json"

// CreateProductRequest body para POST /api/products.
// price e initial_quantity se reciben crudos: aceptan número o string numérico y
// el caso de uso distingue "ausente" de "tipo inválido".
type CreateProductRequest struct {
	Name            *string         `json:"name"`
	SKU             *string         `json:"sku"`
	Price           json.RawMessage `json:"price"`
	WarehouseID     *int64          `json:"warehouse_id"`
	InitialQuantity json.RawMessage `json:"initial_quantity"`
	SupplierID      *int64          `json:"supplier_id,omitempty"`
	ProductTypeID   *int64          `json:"product_type_id,omitempty"`
}

// HasRequiredFields indica si llegaron name, sku, price, warehouse_id e initial_quantity (null cuenta como ausente).
func (r CreateProductRequest) HasRequiredFields() bool {
	return r.Name != nil && r.SKU != nil && r.WarehouseID != nil &&
		present(r.Price) && present(r.InitialQuantity)
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// CreateProductResponse salida de la creación de producto.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}
