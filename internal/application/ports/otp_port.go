package ports

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// OTPNotifier entrega los códigos de verificación al solicitante (email y teléfono).
type OTPNotifier interface {
	SendCodes(ctx context.Context, app *entity.PolicyApplication, emailCode, phoneCode string) error
}
