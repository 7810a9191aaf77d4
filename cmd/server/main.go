package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/config"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/email"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/infrastructure/repository"
	handlers "github.com/anshuman365/hotel-royal-orchid-management/internal/interfaces/http"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/openai"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/payment"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/scheduler"
	services "github.com/anshuman365/hotel-royal-orchid-management/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	chatbotRepo := repository.NewChatbotRepository(db)

	// Email client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		emailClient = nil // Run without email
	}

	// Payment gateway
	gateway := payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	// Rooms
	roomService := application.NewRoomService(roomRepo)
	roomHandler := handlers.NewRoomHandler(roomService)

	// Offers
	offerService := application.NewOfferService(offerRepo, bookingRepo, roomRepo)
	offerHandler := handlers.NewOfferHandler(offerService, roomService)

	// Bookings
	bookingService := application.NewBookingService(bookingRepo, roomRepo, userRepo, paymentRepo, offerService, gateway, emailClient)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	// Reviews
	reviewService := application.NewReviewService(reviewRepo, bookingRepo)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Concierge
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
	conciergeService := application.NewConciergeService(chatbotRepo, roomRepo, offerRepo, openaiClient)
	chatbotHandler := handlers.NewChatbotHandler(conciergeService)

	// Dashboard
	dashboardService := application.NewDashboardService(roomRepo, bookingRepo, paymentRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// S3
	s3Service, err := services.NewS3Service()
	if err != nil {
		log.Printf("Warning: S3 service initialization failed: %v", err)
	}
	var s3Handler *handlers.S3Handler
	if s3Service != nil {
		s3Handler = handlers.NewS3Handler(s3Service)
	}

	api := app.Group("/api")

	// Rooms
	rooms := api.Group("/rooms")
	rooms.Get("/", roomHandler.GetAllRooms)
	rooms.Get("/types", roomHandler.GetRoomTypes)
	rooms.Get("/availability", roomHandler.GetAvailableRooms)
	rooms.Get("/:id", roomHandler.GetRoom)
	rooms.Get("/:id/reviews", reviewHandler.GetRoomReviews)

	// Offers
	offers := api.Group("/offers")
	offers.Get("/", offerHandler.ListPublicOffers)
	offers.Post("/personalized", offerHandler.GetPersonalizedOffers)
	offers.Post("/validate", offerHandler.ValidateCoupon)
	offers.Post("/apply", offerHandler.ValidateCoupon)

	// Bookings
	bookings := api.Group("/bookings")
	bookings.Post("/", bookingHandler.CreateBooking)
	bookings.Post("/quote", bookingHandler.QuoteBooking)
	bookings.Get("/", bookingHandler.ListUserBookings)
	bookings.Get("/:id", bookingHandler.GetBooking)
	bookings.Post("/:id/payment/verify", bookingHandler.VerifyPayment)
	bookings.Post("/:id/cancel", bookingHandler.CancelBooking)

	// Reviews
	reviews := api.Group("/reviews")
	reviews.Post("/", reviewHandler.CreateReview)
	reviews.Post("/:id/helpful", reviewHandler.MarkHelpful)

	// Concierge
	chatbot := api.Group("/chatbot")
	chatbot.Post("/chat", chatbotHandler.Chat)
	chatbot.Get("/conversation/:id", chatbotHandler.GetConversation)

	// Admin
	admin := api.Group("/admin")
	admin.Get("/dashboard", dashboardHandler.GetStats)

	adminOffers := admin.Group("/offers")
	adminOffers.Get("/", offerHandler.ListOffers)
	adminOffers.Post("/", offerHandler.CreateOffer)
	adminOffers.Get("/analytics", offerHandler.GetOfferAnalytics)
	adminOffers.Get("/insights", offerHandler.GetOfferInsights)
	adminOffers.Put("/:id", offerHandler.UpdateOffer)
	adminOffers.Delete("/:id", offerHandler.DeleteOffer)
	adminOffers.Post("/:id/duplicate", offerHandler.DuplicateOffer)
	adminOffers.Post("/:id/toggle", offerHandler.ToggleOffer)

	adminRooms := admin.Group("/rooms")
	adminRooms.Post("/", roomHandler.CreateRoom)
	adminRooms.Put("/:id", roomHandler.UpdateRoom)
	adminRooms.Delete("/:id", roomHandler.DeleteRoom)

	adminReviews := admin.Group("/reviews")
	adminReviews.Get("/pending", reviewHandler.GetPendingReviews)
	adminReviews.Post("/:id/moderate", reviewHandler.ModerateReview)
	adminReviews.Post("/:id/reply", reviewHandler.ReplyToReview)

	if s3Handler != nil {
		admin.Post("/upload", s3Handler.HandleUploadFile)
	}

	// Background jobs
	bookingScheduler := scheduler.NewBookingScheduler(bookingRepo)
	bookingScheduler.Start()
	defer bookingScheduler.Stop()

	log.Printf("Server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
