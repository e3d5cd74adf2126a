package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrSessionExpired       = errors.New("sesión expirada o cerrada")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrConfirmationRequired = errors.New("se requiere confirmación explícita")

	// Póliza de cliente
	ErrAlreadyClaimed = errors.New("la póliza ya tiene un reclamo procesado")

	// Flujo de solicitud
	ErrInvalidStage = errors.New("acción no permitida en la etapa actual")
	ErrOTPMismatch  = errors.New("código de verificación incorrecto")
	ErrOTPExpired   = errors.New("código de verificación expirado")

	// Billetera
	ErrWalletUnavailable  = errors.New("no hay billetera disponible: instale una extensión de billetera (ej. MetaMask)")
	ErrWalletNotConnected = errors.New("conecte su billetera primero")
	ErrWalletRejected     = errors.New("el usuario rechazó la solicitud en la billetera")
	ErrWalletBusy         = errors.New("ya hay una solicitud de billetera en curso")
	ErrWalletProvider     = errors.New("error del proveedor de billetera")
)
