package main

import (
	bookinghandler "turfbook/internal/bookings/handler"
	bookingrepo "turfbook/internal/bookings/repository"
	bookingservice "turfbook/internal/bookings/service"
	bookingvalidator "turfbook/internal/bookings/validator"
	blockedhandler "turfbook/internal/blockedslots/handler"
	blockedrepo "turfbook/internal/blockedslots/repository"
	blockedservice "turfbook/internal/blockedslots/service"
	blockedvalidator "turfbook/internal/blockedslots/validator"
	turfhandler "turfbook/internal/turfs/handler"
	turfrepo "turfbook/internal/turfs/repository"
	turfservice "turfbook/internal/turfs/service"
	turfvalidator "turfbook/internal/turfs/validator"
	userhandler "turfbook/internal/users/handler"
	userrepo "turfbook/internal/users/repository"
	userservice "turfbook/internal/users/service"
	uservalidator "turfbook/internal/users/validator"
	"turfbook/pkg/app"
	"turfbook/pkg/config"
	"turfbook/pkg/contracts"
	"turfbook/pkg/kafka"
	kafka_config "turfbook/pkg/kafka/config"
)

const ServiceName = "turfbook"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Turfbook service")
	cfg.SetMongo()

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	handlers := initHandlers(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) []contracts.Handler {
	turfValidator := turfvalidator.NewTurfValidator(cfg.Log)
	turfRepo := turfrepo.NewMongoTurfRepository(cfg)
	turfService := turfservice.NewTurfService(turfRepo, turfValidator, cfg)

	userValidator := uservalidator.NewUserValidator(cfg.Log)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	userService := userservice.NewUserService(userRepo, userValidator, cfg)

	blockedValidator := blockedvalidator.NewBlockedSlotValidator(cfg.Log)
	blockedRepo := blockedrepo.NewMongoBlockedSlotRepository(cfg)
	blockedService := blockedservice.NewBlockedSlotService(blockedRepo, turfService, blockedValidator, cfg)

	bookingValidator := bookingvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	slotLockRepo := bookingrepo.NewSlotLockRepository(cfg)

	// A nil *Producer wrapped in the interface would not compare equal
	// to nil inside the service, so the disabled path stays untyped.
	var events bookingservice.EventPublisher
	if producer != nil {
		events = producer
	}

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		slotLockRepo,
		turfService,
		userService,
		blockedRepo,
		events,
		bookingValidator,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		turfhandler.NewTurfHandler(turfService, cfg.Log),
		userhandler.NewUserHandler(userService, cfg.Log),
		blockedhandler.NewBlockedSlotHandler(blockedService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	}
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.EventsTopic, "dlq_topic", cfg.EventsDLQ)
	return producer
}
