package inventory

import (
	"time"

	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
	"github.com/SakshamC12/fliprinventory/pkg/logger"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 15 * time.Millisecond
	defaultPageSize   = 100
)

// LedgerConfig parámetros del ledger.
type LedgerConfig struct {
	MaxRetries int              // reintentos ante ErrConcurrentModification (0 = sin reintentos)
	Backoff    time.Duration    // espera base entre reintentos, crece linealmente
	Clock      func() time.Time // reloj del servidor para created_at (por defecto time.Now)
}

// LedgerUseCase es la única autoridad que modifica la cantidad de un producto.
// Registra movimientos IN/OUT de forma atómica y expone consultas y conciliación del historial.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	locker       ProductLocker // opcional
	log          *logger.Logger
	cfg          LedgerConfig
}

// NewLedgerUseCase construye el caso de uso. locker puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	locker ProductLocker,
	log *logger.Logger,
	cfg LedgerConfig,
) *LedgerUseCase {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		locker:       locker,
		log:          log.Component("ledger"),
		cfg:          cfg,
	}
}
