// Package notify entrega los códigos de verificación de las solicitudes.
package notify

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
)

var _ ports.OTPNotifier = (*LogNotifier)(nil)

// LogNotifier escribe los códigos en el log estructurado. Pensado para desarrollo y demos,
// no hay proveedor de email ni SMS configurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Component("otp")}
}

// SendCodes registra ambos códigos junto al destino al que se habrían enviado.
func (n *LogNotifier) SendCodes(_ context.Context, app *entity.PolicyApplication, emailCode, phoneCode string) error {
	ev := n.log.Info().Str("application_id", app.ID)
	if app.Form != nil {
		ev = ev.Str("email", app.Form.Email).Str("phone", app.Form.Phone)
	}
	ev.Str("email_otp", emailCode).Str("phone_otp", phoneCode).Msg("códigos de verificación generados")
	return nil
}
