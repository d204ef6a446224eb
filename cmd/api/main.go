package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"barangku/internal/adapter/api"
	"barangku/internal/adapter/api/handler"
	apimiddleware "barangku/internal/adapter/api/middleware"
	"barangku/internal/adapter/api/router"
	"barangku/internal/adapter/repository"
	"barangku/internal/infrastructure/edgefn"
	"barangku/internal/infrastructure/firebase"
	"barangku/internal/infrastructure/presence"
	"barangku/internal/infrastructure/ratelimit"
	"barangku/internal/infrastructure/storage"
	"barangku/internal/infrastructure/websocket"
	"barangku/internal/usecase"
	"barangku/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		serviceAccountPath = ""
	} else {
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	presenceStore, err := presence.NewStore(presence.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.PresenceTTL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer presenceStore.Close()

	recentQueries := presence.NewRecentQueryStore(presenceStore.Client())
	edgeClient := edgefn.NewClient(cfg.EdgeFunctionBaseURL, cfg.EdgeFunctionTimeout)

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	locationRepo := repository.NewFirestoreLocationRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	transactionRepo := repository.NewFirestoreTransactionRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.SetRoomHooks(presence.NewRoomHooks(presenceStore))
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, rateLimiter)
	itemUseCase := usecase.NewItemUseCase(itemRepo, storageClient, cfg.ItemRetention)
	taxonomyUseCase := usecase.NewTaxonomyUseCase(categoryRepo, locationRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, wsManager)
	listingUseCase := usecase.NewListingUseCase(listingRepo, itemRepo, transactionRepo, notificationUseCase)
	chatUseCase := usecase.NewChatUseCase(chatRepo, listingRepo, userRepo, wsManager, presenceStore, notificationUseCase, rateLimiter)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, transactionRepo, userRepo, chatRepo, notificationUseCase)
	assistantUseCase := usecase.NewAssistantUseCase(edgeClient, recentQueries, rateLimiter)

	itemUseCase.StartRetentionJanitor(ctx, time.Hour)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase),
		Item:         handler.NewItemHandler(itemUseCase),
		Taxonomy:     handler.NewTaxonomyHandler(taxonomyUseCase),
		Listing:      handler.NewListingHandler(listingUseCase),
		Chat:         handler.NewChatHandler(chatUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
		Review:       handler.NewReviewHandler(reviewUseCase),
		Assistant:    handler.NewAssistantHandler(assistantUseCase),
		File:         handler.NewFileHandler(storageClient),
		WebSocket:    handler.NewWebSocketHandler(wsManager),
		Health:       handler.NewHealthHandler(),
	}, authMiddleware, authClient)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
