package dto

// SupplierSummaryDTO resumen del proveedor embebido en cada alerta.
type SupplierSummaryDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertDTO alerta de bajo stock para un par (producto, bodega).
// DaysUntilStockout y Supplier se serializan como null cuando no aplican.
type LowStockAlertDTO struct {
	ProductID         int64               `json:"product_id"`
	ProductName       string              `json:"product_name"`
	SKU               string              `json:"sku"`
	WarehouseID       int64               `json:"warehouse_id"`
	WarehouseName     string              `json:"warehouse_name"`
	CurrentStock      int64               `json:"current_stock"`
	Threshold         int64               `json:"threshold"`
	DaysUntilStockout *int64              `json:"days_until_stockout"`
	Supplier          *SupplierSummaryDTO `json:"supplier"`
}

// LowStockAlertsResponse cuerpo de GET /api/companies/{companyId}/alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
	Message     string             `json:"message,omitempty"`
}

// NewLowStockAlertsResponse construye la respuesta; Alerts nunca es nil para serializar [].
func NewLowStockAlertsResponse(alerts []LowStockAlertDTO) LowStockAlertsResponse {
	if alerts == nil {
		alerts = []LowStockAlertDTO{}
	}
	return LowStockAlertsResponse{Alerts: alerts, TotalAlerts: len(alerts)}
}
