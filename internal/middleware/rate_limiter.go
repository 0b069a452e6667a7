package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
)

// Limitação por IP em janela fixa, estado em memória. Suficiente para
// uma instância; com múltiplas réplicas cada uma aplica o seu limite.

type janelaIP struct {
	count  int
	reseta time.Time
}

type limiter struct {
	mu      sync.Mutex
	janelas map[string]*janelaIP
	limite  int
	janela  time.Duration
	msg     string
}

func newLimiter(limite int, janela time.Duration, msg string) *limiter {
	l := &limiter{
		janelas: make(map[string]*janelaIP),
		limite:  limite,
		janela:  janela,
		msg:     msg,
	}
	go l.purga()
	return l
}

// permite contabiliza uma requisição do IP e diz se ela passa; quando
// nega, devolve o instante em que a janela reabre.
func (l *limiter) permite(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	j, ok := l.janelas[ip]
	if !ok || now.After(j.reseta) {
		j = &janelaIP{reseta: now.Add(l.janela)}
		l.janelas[ip] = j
	}

	j.count++
	return j.count <= l.limite, j.reseta
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, reseta := l.permite(c.ClientIP())
		if !ok {
			c.Header("Retry-After", reseta.UTC().Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.msg))
			return
		}
		c.Next()
	}
}

// purga descarta janelas vencidas para o mapa não crescer com IPs que
// nunca voltam.
func (l *limiter) purga() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, j := range l.janelas {
			if now.After(j.reseta) {
				delete(l.janelas, ip)
			}
		}
		l.mu.Unlock()
	}
}

// LoginRateLimiter segura tentativas de força bruta no login: 20 por
// minuto por IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute, "Muitas tentativas de login. Tente em 1 minuto.").handler()
}

// RateLimiter cria um limitador independente por grupo de rotas. O
// formulário público roda com limite bem menor que a API admin.
func RateLimiter(limite int, janela time.Duration) gin.HandlerFunc {
	return newLimiter(limite, janela, "Muitas solicitacoes. Tente novamente em instantes.").handler()
}
