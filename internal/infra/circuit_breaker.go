package infra

import (
	"errors"
	"sync"
	"time"
)

// Breaker na frente do relay SMTP: depois de uma sequência de falhas o
// envio passa a falhar rápido, e após um intervalo um envio de prova
// decide se o relay voltou. Worker de email e cron de reenvio passam
// pelo mesmo breaker.

// CBState é o estado corrente do breaker.
type CBState int

const (
	CBClosed   CBState = iota // fluxo normal
	CBOpen                    // falha rápida, relay fora
	CBHalfOpen                // um envio de prova liberado
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen indica falha rápida: o breaker está aberto e fn nem roda.
var ErrCircuitOpen = errors.New("circuit breaker aberto")

type CircuitBreakerConfig struct {
	FailureThreshold int           // falhas seguidas para abrir
	SuccessThreshold int           // sucessos em half-open para fechar
	OpenTimeout      time.Duration // tempo aberto antes da prova
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{FailureThreshold: 5, SuccessThreshold: 2, OpenTimeout: time.Minute}
}

type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state      CBState
	fails      int
	okSeguidos int
	abriuEm    time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = time.Minute
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed}
}

// State devolve o estado atual, promovendo open para half-open quando o
// intervalo de espera já passou.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.abriuEm) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.okSeguidos = 0
	}
	return cb.state
}

// Execute roda fn a menos que o breaker esteja aberto, e contabiliza o
// resultado para as transições de estado.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.stateLocked() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registraFalha()
		return err
	}
	cb.registraSucesso()
	return nil
}

func (cb *CircuitBreaker) registraFalha() {
	cb.fails++
	cb.abriuEm = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.fails >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.okSeguidos = 0
		}
	case CBHalfOpen:
		// Prova falhou, volta a aguardar.
		cb.state = CBOpen
		cb.fails = 0
	}
}

func (cb *CircuitBreaker) registraSucesso() {
	switch cb.state {
	case CBClosed:
		cb.fails = 0
	case CBHalfOpen:
		cb.okSeguidos++
		if cb.okSeguidos >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.fails = 0
			cb.okSeguidos = 0
		}
	}
}
