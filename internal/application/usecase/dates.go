package usecase

import (
	"time"

	"github.com/araddon/dateparse"
)

// parseDate interpreta fechas del cliente. YYYY-MM-DD se toma como el inicio del día en hora local;
// el resto de formatos los resuelve dateparse.
func parseDate(s string) (time.Time, error) {
	if d, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return d, nil
	}
	return dateparse.ParseLocal(s)
}

// parseEndDate como parseDate, pero un YYYY-MM-DD cubre el día completo (cota superior inclusiva).
func parseEndDate(s string) (time.Time, error) {
	if d, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return dateparse.ParseLocal(s)
}
