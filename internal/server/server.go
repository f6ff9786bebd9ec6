package server

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beautycrm/internal/config"
	"beautycrm/internal/importer"
	"beautycrm/internal/store"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	handlers *Handler
	logger   *zap.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化持久化存储：开发模式用内存，其余用 SQLite
	var storage store.Storage
	if cfg.Server.DevMode {
		storage = store.NewMemoryStorage()
	} else {
		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			dataDir = cfg.Data.DataDir
		}
		sqlite, err := store.NewSQLiteStorage(filepath.Join(dataDir, "beautycrm.db"))
		if err != nil {
			return nil, err
		}
		storage = sqlite
	}

	dataStore, err := store.NewDataStore(storage, logger)
	if err != nil {
		return nil, err
	}

	imp := importer.New(cfg.Delimiter(), logger)

	s := &Server{
		router:   gin.Default(),
		handlers: NewHandler(imp, dataStore, cfg.Import.DefaultMerge, logger),
		logger:   logger,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 返回底层路由（测试用）
func (s *Server) Router() *gin.Engine {
	return s.router
}
