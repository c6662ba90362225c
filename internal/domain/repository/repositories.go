package repository

// Repositories agrupa los puertos atados a una misma transacción (o al pool fuera de ella).
type Repositories struct {
	Categories CategoryRepository
	Suppliers  SupplierRepository
	Products   ProductRepository
	Movements  StockMovementRepository
	Sales      SaleRepository
}
