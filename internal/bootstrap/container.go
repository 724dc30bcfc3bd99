package bootstrap

import (
	"context"

	"keep-notes-be/internal/config"
	"keep-notes-be/internal/controller"
	"keep-notes-be/internal/handler"
	"keep-notes-be/internal/notestate"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/pkg/serverutils"
	"keep-notes-be/internal/repository/memory"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/internal/service"
	"keep-notes-be/internal/websocket"

	pktNats "keep-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const containerModule = "Container"

type Container struct {
	NoteController  controller.INoteController
	RealtimeHandler *handler.RealtimeHandler

	// Background services, started by main
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Persistence bus. Publishing waits for the consumer to take the
	// message so writes reach the document store in dispatch order.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	publisherService := service.NewPublisherService(cfg.Store.PersistTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Store.PersistTopic, uowFactory, sysLogger)

	// 3. Domain events
	var eventPublisher service.EventPublisher
	if cfg.Store.EventsEnabled {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn(containerModule, "NATS unavailable, domain events disabled", map[string]interface{}{"error": err})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 4. Realtime
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn(containerModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn(containerModule, "Failed to connect to Redis, realtime stays local", map[string]interface{}{"error": err})
			_ = rdb.Close()
			rdb = nil
		} else {
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	var broadcaster service.StateBroadcaster
	if cfg.Store.RealtimeEnable {
		broadcaster = c.WebSocketHub
	}

	// 5. State stores
	reducer := notestate.Reducer{
		ClearEditableOnlyOnMatch: cfg.Store.StrictDelete,
		RequireKnownLabels:       cfg.Store.RequireLabels,
	}
	sessions := memory.NewSessionRepository(cfg.Store.SessionTTL, cfg.Store.PurgeInterval)

	noteService := service.NewNoteService(
		uowFactory,
		sessions,
		reducer,
		publisherService,
		eventPublisher,
		broadcaster,
		sysLogger,
	)

	// 6. Controllers
	c.NoteController = controller.NewNoteController(noteService, serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret))
	c.RealtimeHandler = handler.NewRealtimeHandler(noteService, c.WebSocketHub, cfg.Auth.JwtSecret, wsLogger)

	return c
}

// Close releases the connections opened by NewContainer, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
