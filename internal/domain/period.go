package domain

import "time"

// DayStart devuelve las 00:00 del día de t en su zona horaria.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayRange convierte un rango inclusivo de días calendario [start, end] en el
// intervalo semiabierto [desde, hasta) expresado en UTC, como se guarda en la BD.
// Si end es anterior a start se intercambian.
func DayRange(start, end time.Time) (time.Time, time.Time) {
	from := DayStart(start)
	to := DayStart(end)
	if to.Before(from) {
		from, to = to, from
	}
	return from.UTC(), to.AddDate(0, 0, 1).UTC()
}

// MonthRange intervalo [día 1 00:00, día 1 del mes siguiente) del mes de t, en UTC.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.UTC(), first.AddDate(0, 1, 0).UTC()
}
