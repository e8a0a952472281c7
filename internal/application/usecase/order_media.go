package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// UploadCompletionImage sube la foto del producto terminado y la asocia al pedido.
// El tamaño y el tipo se comprueban antes de consultar el pedido o tocar el almacenamiento.
func (uc *OrderUseCase) UploadCompletionImage(ctx context.Context, id string, data []byte, declaredType string) (*dto.ImageUploadResponse, error) {
	if len(data) == 0 {
		return nil, domain.NewValidationError("image", "archivo vacío")
	}
	if uc.limits.MaxBytes > 0 && int64(len(data)) > uc.limits.MaxBytes {
		return nil, domain.ErrImageTooLarge
	}
	if declaredType != "" && !strings.HasPrefix(declaredType, "image/") {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, declaredType)
	}
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, detected.String())
	}

	existing, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	key := id + "/" + uuid.New().String() + ".jpg"
	url, err := uc.storage.UploadImage(ctx, key, data)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstream) && !errors.Is(err, domain.ErrUnsupportedMedia) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("url", url).Int("bytes", len(data)).Msg("foto de pedido subida")

	o, err := uc.applyPatch(ctx, id, repository.OrderPatch{ProductImage: &url})
	if err != nil {
		return nil, err
	}
	return &dto.ImageUploadResponse{ImageURL: url, Order: ToOrderResponse(o)}, nil
}

// Receipt genera el comprobante PDF del pedido y el nombre de archivo sugerido.
func (uc *OrderUseCase) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.receipts.GenerateOrderReceipt(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	short := o.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return pdf, "pedido-" + short + ".pdf", nil
}

// ExportCSV exporta los pedidos que cumplen los filtros del listado.
func (uc *OrderUseCase) ExportCSV(ctx context.Context, q dto.OrderListQuery) ([]byte, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.OrderCSVRow, 0, len(list))
	for _, o := range list {
		rows = append(rows, toCSVRow(o))
	}
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("exportar csv: %w", err)
	}
	return out, nil
}
