package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("%s inválido", name)
	}
	return id, nil
}

// dateRange lee ?from=YYYY-MM-DD&to=YYYY-MM-DD (hora local). Faltantes toman defFrom/defTo.
func dateRange(c *fiber.Ctx, defFrom, defTo time.Time) (time.Time, time.Time, error) {
	from, err := queryDate(c, "from", defFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryDate(c, "to", defTo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func queryDate(c *fiber.Ctx, key string, def time.Time) (time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, domain.Invalid("%s debe tener formato AAAA-MM-DD", key)
	}
	return t, nil
}

// optionalDate igual que queryDate pero devuelve nil si falta.
func optionalDate(c *fiber.Ctx, key string) (*time.Time, error) {
	if c.Query(key) == "" {
		return nil, nil
	}
	t, err := queryDate(c, key, time.Time{})
	if err != nil {
		return nil, err
	}
	return &t, nil
}
