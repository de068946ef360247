package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/comment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/health"
	apishop "github.com/zerohouse/2015-01-HUDIWEB-JADO/api/shop"
	apiuser "github.com/zerohouse/2015-01-HUDIWEB-JADO/api/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/application/auth"
	productapp "github.com/zerohouse/2015-01-HUDIWEB-JADO/application/product"
	shopapp "github.com/zerohouse/2015-01-HUDIWEB-JADO/application/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/notification"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/retry"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/storage"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder 组装 App；测试可以替换数据库、文件系统和邮件通道
type AppBuilder struct {
	cfg      *config.Config
	db       *gorm.DB
	fs       afero.Fs
	notifier productapp.Notifier
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithDB 使用已打开的连接，跳过 config 里的数据库配置
func (b *AppBuilder) WithDB(db *gorm.DB) *AppBuilder {
	b.db = db
	return b
}

// WithFs 上传文件系统，默认 afero.NewOsFs()
func (b *AppBuilder) WithFs(fs afero.Fs) *AppBuilder {
	b.fs = fs
	return b
}

// WithNotifier 覆盖 mail 配置生成的邮件通道
func (b *AppBuilder) WithNotifier(n productapp.Notifier) *AppBuilder {
	b.notifier = n
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build() (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db, err := b.openDatabase()
	if err != nil {
		return nil, err
	}
	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}
	notifier, err := b.buildNotifier()
	if err != nil {
		return nil, err
	}

	shopRepo := relational.NewShopRepository(db)
	boardRepo := relational.NewBoardRepository(db)
	categoryRepo := relational.NewCategoryRepository(db)
	userRepo := relational.NewUserRepository(db)
	productRepo := relational.NewProductRepository(db)
	commentRepo := relational.NewCommentRepository(db)
	articleRepo := relational.NewArticleRepository(db)
	paymentRepo := relational.NewPaymentRepository(db)

	uow := relational.NewUnitOfWork(db)
	uow.SetRetryConfig(retry.FromAppConfig(b.cfg.Database.Retry))

	shopService := shopapp.NewApplicationService(shopapp.Dependencies{
		Shops:      shopRepo,
		Boards:     boardRepo,
		Categories: categoryRepo,
		Users:      userRepo,
		Products:   productRepo,
		Articles:   articleRepo,
		Payments:   paymentRepo,
		Uploader:   storage.NewUploader(b.fs, b.cfg.Upload),
		UoW:        uow,
	})
	productService := productapp.NewApplicationService(productRepo, commentRepo, userRepo, notifier, uow)
	authService := auth.NewService(userRepo, uow, b.cfg.Session.LandingPath)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var uploads http.FileSystem
	if b.cfg.Upload.Dir != "" {
		uploads = afero.NewHttpFs(b.fs).Dir(b.cfg.Upload.Dir)
	}

	router := api.NewRouter(
		b.cfg,
		health.NewController(b.cfg, sqlDB),
		apiuser.NewController(authService, shopService),
		apishop.NewController(shopService),
		comment.NewController(productService),
		uploads,
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}, nil
}

func (b *AppBuilder) openDatabase() (*gorm.DB, error) {
	db := b.db
	if db == nil {
		var err error
		db, err = relational.FromAppConfig(b.cfg.Database).Connect()
		if err != nil {
			return nil, err
		}
	}

	if err := relational.Ping(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if b.cfg.Database.AutoMigrate || b.cfg.IsDevelopment() {
		if err := relational.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		logger.Info("Database schema migrated")
	}
	return db, nil
}

// buildNotifier mail 未启用时返回 nil，评论不发邮件
func (b *AppBuilder) buildNotifier() (productapp.Notifier, error) {
	if b.notifier != nil {
		return b.notifier, nil
	}
	if !b.cfg.Mail.Enabled {
		logger.Info("Mail notifications disabled")
		return nil, nil
	}
	client, err := notification.NewSMTPClient(b.cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return notification.NewEmailSender(client, b.cfg.Mail.From), nil
}
