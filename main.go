package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gardenly/config"
	"gardenly/cron"
	"gardenly/database"
	availabilityRepo "gardenly/database/repository/availability"
	bookingRepo "gardenly/database/repository/booking"
	offerRepo "gardenly/database/repository/offer"
	tariffRepo "gardenly/database/repository/tariff"
	"gardenly/handlers"
	"gardenly/middleware"
	"gardenly/routes"
	"gardenly/services/notification"
	"gardenly/services/pricing"
	"gardenly/services/reservation"
	"gardenly/services/scheduling"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	offRepo := offerRepo.NewMongoOfferRepo()
	trfRepo := tariffRepo.NewMongoTariffRepo()

	for name, fn := range map[string]func() error{
		"availability": availRepo.EnsureIndexes,
		"bookings":     bkRepo.EnsureIndexes,
		"offers":       offRepo.EnsureIndexes,
	} {
		if err := fn(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// Background queue client.
	queueClient := asynq.NewClient(cron.RedisQueueOpt())
	defer queueClient.Close()

	// Services.
	allocator := &scheduling.SlotAllocator{
		Availability: availRepo,
		Bookings:     bkRepo,
		Gaps:         scheduling.FixedGapResolver(config.AppConfig.DefaultBufferHours),
		Cache:        scheduling.NewSlotCache(utils.GetCacheClient()),
	}

	pricingEngine := &pricing.Engine{Tariffs: trfRepo}

	reservationEngine := &reservation.DefaultReservationEngine{
		Bookings:        bkRepo,
		Offers:          offRepo,
		Allocator:       allocator,
		Pricing:         pricingEngine,
		Notifier:        notification.NewAsynqNotificationService(queueClient),
		Expiry:          cron.NewDispatcher(queueClient),
		MaxClaimRetries: config.AppConfig.ClaimRetryCount,
	}

	draftStore := reservation.NewDraftStore(
		utils.GetDraftCacheClient(),
		time.Duration(config.AppConfig.DraftTTLMinutes)*time.Minute)

	// Handlers.
	availabilityHandler := handlers.NewAvailabilityHandler(availRepo)
	slotHandler := handlers.NewSlotHandler(allocator)
	quoteHandler := handlers.NewQuoteHandler(pricingEngine)
	bookingHandler := handlers.NewBookingHandler(reservationEngine)
	offerHandler := handlers.NewOfferHandler(reservationEngine)
	tariffHandler := handlers.NewTariffHandler(trfRepo)
	draftHandler := handlers.NewDraftHandler(draftStore)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetAvailabilityHandler:      availabilityHandler.GetAvailabilityHandler,
		SetAvailabilityHandler:      availabilityHandler.SetAvailabilityHandler,
		ApplyDefaultScheduleHandler: availabilityHandler.ApplyDefaultScheduleHandler,
		ClearDayHandler:             availabilityHandler.ClearDayHandler,

		GetValidStartHoursHandler: slotHandler.GetValidStartHoursHandler,
		GetFirstAvailableHandler:  slotHandler.GetFirstAvailableHandler,
		RankProvidersHandler:      slotHandler.RankProvidersHandler,

		CreateQuoteHandler: quoteHandler.CreateQuoteHandler,

		CreateBookingHandler:   bookingHandler.CreateBookingHandler,
		CancelBookingHandler:   bookingHandler.CancelBookingHandler,
		StartBookingHandler:    bookingHandler.StartBookingHandler,
		CompleteBookingHandler: bookingHandler.CompleteBookingHandler,

		CreateOfferHandler: offerHandler.CreateOfferHandler,
		ClaimOfferHandler:  offerHandler.ClaimOfferHandler,

		GetTariffHandler:  tariffHandler.GetTariffHandler,
		SaveTariffHandler: tariffHandler.SaveTariffHandler,

		SaveDraftHandler:   draftHandler.SaveDraftHandler,
		GetDraftHandler:    draftHandler.GetDraftHandler,
		DeleteDraftHandler: draftHandler.DeleteDraftHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker and health monitor.
	cron.InitWorker(reservationEngine)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetDraftCacheClient()},
		database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
