package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/configs"
	"github.com/hilthontt/chatrelay/internal/infrastructure/events"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/profanity"
	"github.com/hilthontt/chatrelay/internal/infrastructure/tracing"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ws"
	"github.com/hilthontt/chatrelay/internal/persistence/db"
	"github.com/hilthontt/chatrelay/internal/persistence/repository"
	"github.com/hilthontt/chatrelay/internal/presentation/api"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/health"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/messages"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/rooms"
	"github.com/hilthontt/chatrelay/internal/service"
)

const (
	serviceName = "chatrelay-api"
)

func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logging.FilePath,
		Encoding: cfg.Logging.Encoding,
		Level:    cfg.Logging.Level,
		Logger:   cfg.Logging.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		tracerCfg := tracing.NewDefaultConfig(serviceName)
		tracerCfg.Endpoint = cfg.Tracing.Endpoint

		sh, err := tracing.InitTracer(tracerCfg)
		if err != nil {
			log.Fatalf("Failed to initialize the tracer: %v", err)
		}
		defer sh(ctx)
	}

	var (
		roomRepository    domain.RoomRepository
		messageRepository domain.MessageRepository
	)

	switch cfg.Store.Driver {
	case "memory":
		roomRepository = repository.NewMemoryRoomRepository()
		messageRepository = repository.NewMemoryMessageRepository()
	default:
		client, err := db.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal(err)
		}
		defer db.DisconnectMongo(context.Background(), client)

		database := db.GetDatabase(client, cfg.Mongo)
		roomRepository = repository.NewRoomRepository(database)
		messageRepository = repository.NewMessageRepository(database)

		if err := repository.EnsureMessageIndexes(ctx, messageRepository); err != nil {
			log.Fatalf("Failed to ensure message indexes: %v", err)
		}
	}

	roomManager := ws.NewRoomManager()
	wsCore := ws.NewCore(roomManager)

	var (
		broadcaster service.Broadcaster
		rabbitmq    *messaging.RabbitMQ
	)

	switch cfg.Messaging.Driver {
	case "local":
		broadcaster = ws.NewHubBroadcaster(wsCore)
	default:
		rabbitmq, err = messaging.NewRabbitMQ(cfg.Messaging.URI)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitmq.Close()

		log.Println("Starting RabbitMQ connection")
		broadcaster = events.NewMessagePublisher(rabbitmq)
	}

	roomService := service.NewRoomService(roomRepository)
	historyService := service.NewHistoryService(messageRepository)

	pipeline := service.NewMessagePipeline(roomRepository, messageRepository, broadcaster)
	if cfg.Pipeline.MaskProfanity {
		pipeline = pipeline.WithProfanityFilter(profanity.NewFilter())
	}

	wsCore.SetPipeline(pipeline)
	go wsCore.Run()

	if rabbitmq != nil {
		broadcastConsumer := events.NewBroadcastConsumer(rabbitmq, wsCore)
		go func() {
			if err := broadcastConsumer.Listen(); err != nil {
				log.Printf("Broadcast consumer stopped: %v", err)
			}
		}()

		sendConsumer := events.NewSendConsumer(rabbitmq, pipeline)
		go func() {
			if err := sendConsumer.Listen(); err != nil {
				log.Printf("Send consumer stopped: %v", err)
			}
		}()
	}

	roomHandler := rooms.NewHandler(roomService, historyService, roomManager, wsCore)
	healthHandler := health.NewHandler()
	messageHandler := messages.NewHandler(pipeline)

	app := api.NewApplication(*cfg, *roomHandler, *healthHandler, *messageHandler, logger)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
