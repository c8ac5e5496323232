package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "offer-service/internal/adapter/http"
	mw "offer-service/internal/adapter/middleware"
	"offer-service/internal/adapter/repository/mysql"
	"offer-service/internal/config"
	approvalDomain "offer-service/internal/domain/approval"
	"offer-service/internal/domain/document"
	offerDomain "offer-service/internal/domain/offer"
	signatureDomain "offer-service/internal/domain/signature"
	"offer-service/internal/infrastructure/blob"
	"offer-service/internal/infrastructure/cache"
	"offer-service/internal/infrastructure/db"
	"offer-service/internal/infrastructure/notify"
	"offer-service/internal/infrastructure/render"
	"offer-service/internal/metrics"
	approvalUc "offer-service/internal/usecase/approval"
	offerUc "offer-service/internal/usecase/offer"
	signatureUc "offer-service/internal/usecase/signature"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&offerDomain.Offer{}, &approvalDomain.Approval{}, &signatureDomain.Signature{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	store, err := blob.New(bootCtx, blob.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("blob: %v", err)
	}

	var notifier document.Notifier = notify.LogNotifier{}
	if cfg.NotifyChannel != "" {
		notifier = notify.NewRedisNotifier(rdb, cfg.NotifyChannel)
	}

	renderer := render.NewPDFRenderer(cfg.CompanyName, cfg.CompanyAddress)

	offers := mysql.NewOfferRepository(gdb)
	approvals := mysql.NewApprovalRepository(gdb)
	signatures := mysql.NewSignatureRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	offerUsecase := offerUc.NewUsecase(offers, approvals, uow, renderer, notifier)
	approvalUsecase := approvalUc.NewUsecase(offers, approvals, uow, notifier)
	signatureUsecase := signatureUc.NewUsecase(offers, signatures, uow, renderer, store, notifier)

	h := httpadp.NewHandler()
	oh := httpadp.NewOfferHandler(offerUsecase)
	ah := httpadp.NewApprovalHandler(approvalUsecase)
	sh := httpadp.NewSignatureHandler(signatureUsecase)

	metrics.Register(prometheus.DefaultRegisterer)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	offersG := api.Group("/offers")
	offersG.POST("", oh.CreateOffer)
	offersG.GET("", oh.ListOffers)
	offersG.GET("/status/:status", oh.ListOffersByStatus)
	offersG.GET("/my-offers", oh.MyOffers)
	offersG.GET("/:offer_id", oh.GetOffer)
	offersG.PUT("/:offer_id", oh.UpdateOffer)
	offersG.POST("/:offer_id/submit", oh.SubmitForApproval)
	offersG.GET("/:offer_id/document", oh.PreviewDocument)

	approvalsG := api.Group("/approvals")
	approvalsG.POST("/:approval_id/action", ah.Decide)
	approvalsG.POST("/offer/:offer_id/action", ah.DecideByOffer)
	approvalsG.POST("/offer/:offer_id/add-approver", ah.AddApprover)
	approvalsG.GET("/offer/:offer_id", ah.OfferApprovals)
	approvalsG.GET("/pending", ah.Pending)
	approvalsG.GET("/my-approvals", ah.MyApprovals)

	signaturesG := api.Group("/signatures")
	signaturesG.POST("/offers/:offer_id/sign", sh.SignOffer)
	signaturesG.GET("/offers/:offer_id", sh.GetSignature)
	signaturesG.GET("/offers/:offer_id/verify", sh.VerifyIntegrity)
	signaturesG.GET("/offers/:offer_id/document", sh.SignedDocument)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
