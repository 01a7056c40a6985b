package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barrieredi/cmd"
	httpin "barrieredi/internal/adapters/in/http"
	"barrieredi/internal/adapters/out/postgres"
	"barrieredi/internal/adapters/out/postgres/deliveryrepo"
	"barrieredi/internal/adapters/out/postgres/orderrepo"
	"barrieredi/internal/adapters/out/postgres/partnerrepo"
	"barrieredi/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)
	server := httpin.NewServer(
		configs.FeedAPIKey,
		app.CreateImportOrderCommandHandler(),
		app.CreateAuthenticatePartnerCommandHandler(),
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateValidateDeliveryCommandHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetRemainingQuantitiesQueryHandler(),
		app.CreateGetOrderCompletionQueryHandler(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateSyncOrdersCommandHandler(),
		configs.OrderFeedFile,
		configs.OrderSyncSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		FeedAPIKey:        goDotEnvVariable("FEED_API_KEY"),
		OrderFeedFile:     goDotEnvVariable("ORDER_FEED_FILE"),
		OrderSyncSchedule: goDotEnvVariable("ORDER_SYNC_SCHEDULE"),
	}
	if config.OrderSyncSchedule == "" {
		config.OrderSyncSchedule = "*/15 * * * *"
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err = sqlDB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error initializing ORM: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&partnerrepo.PartnerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.DeliveryItemDTO{},
		&postgres.DeliveryCounterDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(server *httpin.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)

	go func() {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
		if err != nil && err != stdhttp.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
