package entity

// Supplier proveedor de un producto (referencia opcional desde Product).
type Supplier struct {
	ID      int64
	Name    string
	Address string
	Contact string
}
