package inventory

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
)

// Valores por defecto de la política de alertas de bajo stock.
const (
	DefaultWindowDays        = 30
	DefaultLowStockThreshold = int64(10)
)

var maxDays = decimal.NewFromInt(math.MaxInt64)

// AlertPolicy reúne las constantes de la regla de bajo stock (servicio de dominio, sin I/O).
// WindowDays define tanto la ventana de ventas recientes como el divisor del promedio diario.
type AlertPolicy struct {
	WindowDays       int
	DefaultThreshold int64
}

// DefaultAlertPolicy devuelve la política estándar: 30 días y umbral 10.
func DefaultAlertPolicy() AlertPolicy {
	return AlertPolicy{WindowDays: DefaultWindowDays, DefaultThreshold: DefaultLowStockThreshold}
}

// Window devuelve la longitud de la ventana como duración.
func (p AlertPolicy) Window() time.Duration {
	return time.Duration(p.WindowDays) * 24 * time.Hour
}

// WindowStart devuelve el límite inferior (exclusivo) de la ventana que termina en now.
func (p AlertPolicy) WindowStart(now time.Time) time.Time {
	return now.Add(-p.Window())
}

// InWindow indica si ts cae en (now - ventana, now].
func (p AlertPolicy) InWindow(ts, now time.Time) bool {
	return ts.After(p.WindowStart(now)) && !ts.After(now)
}

// RecentSales suma el valor absoluto de los cambios negativos dentro de la ventana.
// Las reposiciones (cambios positivos) no cuentan.
func (p AlertPolicy) RecentSales(entries []*entity.InventoryHistory, now time.Time) int64 {
	var total int64
	for _, e := range entries {
		if e == nil || !e.IsSale() || !p.InWindow(e.Timestamp, now) {
			continue
		}
		total += -e.Change
	}
	return total
}

// ResolveThreshold devuelve el umbral del tipo de producto o el de la política si no se resuelve.
func (p AlertPolicy) ResolveThreshold(productType *entity.ProductType) int64 {
	if productType == nil || productType.LowStockThreshold == nil {
		return p.DefaultThreshold
	}
	return *productType.LowStockThreshold
}

// IsLowStock: el stock en el umbral también alerta.
func IsLowStock(currentStock, threshold int64) bool {
	return currentStock <= threshold
}

// DaysUntilStockout estima round(stock / promedio diario), con promedio = ventas / días de la ventana.
// nil si no hay ventas recientes. Se calcula sobre el racional exacto stock*días/ventas,
// se redondea al par más cercano y se satura en MaxInt64.
func (p AlertPolicy) DaysUntilStockout(currentStock, recentSales int64) *int64 {
	if recentSales <= 0 || p.WindowDays <= 0 {
		return nil
	}
	est := decimal.NewFromInt(currentStock).
		Mul(decimal.NewFromInt(int64(p.WindowDays))).
		Div(decimal.NewFromInt(recentSales)).
		RoundBank(0)
	if est.GreaterThan(maxDays) {
		est = maxDays
	}
	days := est.IntPart()
	return &days
}
