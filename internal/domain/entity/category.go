package entity

// Category agrupa productos para navegación y reportes.
type Category struct {
	ID          int64
	Name        string // único
	Description string
}
