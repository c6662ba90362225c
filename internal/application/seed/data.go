package seed

import "github.com/shopspring/decimal"

type categorySeed struct {
	Name        string
	Description string
}

type productSeed struct {
	Barcode     string
	Name        string
	Description string
	Category    string
	Cost        string
	Price       string
	Stock       int
	Unit        string
	Service     bool
}

var categories = []categorySeed{
	{"Ropa", "Prendas de vestir y accesorios"},
	{"Alimentos", "Productos alimenticios"},
	{"Electrónica", "Dispositivos y accesorios electrónicos"},
	{"Papelería", "Útiles escolares y de oficina"},
	{"Servicios", "Servicios prestados en el local"},
}

var products = []productSeed{
	{"7891234567890", "Camiseta básica", "Camiseta de algodón", "Ropa", "15.00", "25.00", 50, "un", false},
	{"7891234567891", "Pantalón jean", "Jean azul tradicional", "Ropa", "45.00", "75.00", 30, "un", false},
	{"7891234567892", "Chaqueta", "Chaqueta de abrigo", "Ropa", "60.00", "100.00", 20, "un", false},
	{"7891234567893", "Vestido", "Vestido de verano", "Ropa", "35.00", "60.00", 15, "un", false},
	{"7891234567894", "Medias", "Par de medias de algodón", "Ropa", "8.00", "15.00", 100, "par", false},
	{"7891234567895", "Arroz 1kg", "Arroz blanco tipo 1", "Alimentos", "12.00", "18.00", 40, "kg", false},
	{"7891234567896", "Frijoles 1kg", "Frijol cargamanto", "Alimentos", "6.00", "9.00", 60, "kg", false},
	{"7891234567897", "Pasta 500g", "Espagueti", "Alimentos", "2.50", "4.00", 80, "paq", false},
	{"7891234567898", "Aceite de soya", "Aceite de soya 900ml", "Alimentos", "4.50", "7.00", 50, "l", false},
	{"7891234567899", "Azúcar 1kg", "Azúcar refinada", "Alimentos", "3.00", "5.00", 70, "kg", false},
	{"7891234567900", "Smartphone", "Teléfono inteligente 128GB", "Electrónica", "800.00", "1200.00", 10, "un", false},
	{"7891234567901", "Audífonos bluetooth", "Audífonos inalámbricos", "Electrónica", "50.00", "80.00", 25, "un", false},
	{"7891234567902", "Smart TV 50\"", "Televisor 4K", "Electrónica", "1500.00", "2200.00", 5, "un", false},
	{"7891234567903", "Cargador USB-C", "Cargador rápido 20W", "Electrónica", "30.00", "50.00", 20, "un", false},
	{"7891234567904", "Portátil", "Portátil 15 pulgadas", "Electrónica", "2000.00", "2800.00", 3, "un", false},
	{"7891234567905", "Cuaderno", "Cuaderno universitario 100 hojas", "Papelería", "8.00", "12.00", 45, "un", false},
	{"7891234567906", "Bolígrafo", "Bolígrafo azul", "Papelería", "1.50", "2.50", 200, "un", false},
	{"7891234567907", "Lápiz", "Lápiz negro HB", "Papelería", "0.80", "1.50", 300, "un", false},
	{"7891234567908", "Borrador", "Borrador blanco", "Papelería", "1.00", "2.00", 150, "un", false},
	{"7891234567909", "Agenda", "Agenda anual", "Papelería", "15.00", "25.00", 30, "un", false},
	{"7891234567910", "Corte de cabello", "Corte masculino", "Servicios", "0", "25.00", 0, "un", true},
	{"7891234567911", "Arreglo de barba", "Barba con navaja", "Servicios", "0", "20.00", 0, "un", true},
	{"7891234567912", "Diseño de cejas", "Diseño y depilación de cejas", "Servicios", "0", "15.00", 0, "un", true},
	{"7891234567913", "Copia de llave", "Copia de llave simple", "Servicios", "0", "8.00", 0, "un", true},
	{"7891234567914", "Apertura de puerta", "Cerrajería a domicilio", "Servicios", "0", "50.00", 0, "un", true},
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
