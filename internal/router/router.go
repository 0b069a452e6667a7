package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/config"
	"github.com/CunhaBSb/m5max-sub000/internal/handler"
	"github.com/CunhaBSb/m5max-sub000/internal/middleware"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
	"github.com/CunhaBSb/m5max-sub000/internal/service"
	"github.com/CunhaBSb/m5max-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/Hub
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *realtime.Hub, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db, hub)
	produtoRepo := repository.NewProdutoRepository(db, hub)
	orcamentoRepo := repository.NewOrcamentoRepository(db, hub)
	solicitacaoRepo := repository.NewSolicitacaoRepository(db, hub)
	eventoRepo := repository.NewEventoRepository(db, hub)
	historicoRepo := repository.NewHistoricoEstoqueRepository(db, hub)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, historicoRepo)
	orcamentoSvc := service.NewOrcamentoService(orcamentoRepo, produtoRepo, historicoRepo, dispatcher, cfg.PDFStoragePath)
	solicitacaoSvc := service.NewSolicitacaoService(solicitacaoRepo, orcamentoRepo, dispatcher, cfg.NotificacaoEmail)
	eventoSvc := service.NewEventoService(eventoRepo, orcamentoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	orcamentosH := handler.NewOrcamentosHandler(orcamentoSvc)
	solicitacoesH := handler.NewSolicitacoesHandler(solicitacaoSvc)
	eventosH := handler.NewEventosHandler(eventoSvc)
	historicoH := handler.NewHistoricoHandler(historicoRepo)
	realtimeH := handler.NewRealtimeHandler(hub)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Site público: catálogo e formulários de solicitação, sem autenticação.
	r.GET("/v1/produtos", produtosH.Listar)
	r.GET("/v1/produtos/:id", produtosH.Obter)
	r.POST("/v1/solicitacoes", middleware.RateLimiter(30, time.Minute), solicitacoesH.Criar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, operador — declared per-endpoint
		v1.PATCH("/produtos/:id/estoque", middleware.RequireRole("admin", "operador"), produtosH.AjustarEstoque)
		prods := v1.Group("/produtos", middleware.RequireRole("admin"))
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
			prods.POST("/:id/reativar", produtosH.Reativar)
		}

		orc := v1.Group("/orcamentos", middleware.RequireRole("admin", "operador"))
		{
			orc.POST("", orcamentosH.Criar)
			orc.GET("", orcamentosH.Listar)
			orc.GET("/:id", orcamentosH.Obter)
			orc.PUT("/:id", orcamentosH.Atualizar)
			orc.POST("/:id/itens", orcamentosH.AdicionarItem)
			orc.DELETE("/:id/itens/:itemId", orcamentosH.RemoverItem)
			orc.PATCH("/:id/status", orcamentosH.AlterarStatus)
			orc.GET("/:id/pdf", orcamentosH.GerarPDF)
		}

		sol := v1.Group("/solicitacoes", middleware.RequireRole("admin", "operador"))
		{
			sol.GET("", solicitacoesH.Listar)
			sol.GET("/:id", solicitacoesH.Obter)
			sol.PATCH("/:id/processar", solicitacoesH.MarcarProcessada)
		}

		ev := v1.Group("/eventos", middleware.RequireRole("admin", "operador"))
		{
			ev.POST("", eventosH.Criar)
			ev.GET("", eventosH.Listar)
			ev.GET("/:id", eventosH.Obter)
			ev.PUT("/:id", eventosH.Atualizar)
			ev.PATCH("/:id/status", eventosH.AlterarStatus)
		}

		v1.GET("/estoque/historico", middleware.RequireRole("admin", "operador"), historicoH.Listar)
		v1.GET("/realtime", middleware.RequireRole("admin", "operador"), realtimeH.Stream)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.AtualizarUsuario)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
			usuarios.POST("/:id/reativar", authH.ReativarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
