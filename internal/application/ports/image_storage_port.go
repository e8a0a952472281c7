package ports

import "context"

// ImageStorage define el puerto de salida para alojar las fotos de los pedidos terminados.
// El adaptador aplica la transformación (máx. 800×600, calidad optimizada) y devuelve
// una URL pública estable. Los fallos del proveedor deben envolver domain.ErrUpstream.
type ImageStorage interface {
	UploadImage(ctx context.Context, key string, data []byte) (publicURL string, err error)
}
