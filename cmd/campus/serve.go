package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/layer-3/campus/adapters/events"
	"github.com/layer-3/campus/adapters/hasher"
	"github.com/layer-3/campus/adapters/memory"
	"github.com/layer-3/campus/adapters/mongodb"
	"github.com/layer-3/campus/adapters/store"
	"github.com/layer-3/campus/adapters/tokenizer"
	"github.com/layer-3/campus/internal/config"
	"github.com/layer-3/campus/internal/logger"
	"github.com/layer-3/campus/ports"
	"github.com/layer-3/campus/service"
	httpapi "github.com/layer-3/campus/transport/http"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(os.Stdout, cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

// revocationList is what every revocation backend offers: the port itself
// plus revocation by digest for logout events from other instances.
type revocationList interface {
	ports.RevocationList
	events.DigestRevoker
}

type repositories struct {
	users    ports.UserRepository
	teachers ports.TeacherRepository
	persons  ports.PersonRepository
	roll     ports.RollRepository
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	var db *mongo.Database
	if cfg.NeedsMongo() {
		var err error
		db, err = mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Client().Disconnect(context.Background())
		}()

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
	}

	repos := newRepositories(cfg, db)

	var revoked revocationList
	switch cfg.RevocationBackend {
	case config.BackendMongo:
		revoked = mongodb.NewRevocationList(db)
	case config.BackendRedis:
		revoked = store.NewRedisStore(redisClient)
	default:
		mem := store.NewMemoryStore()
		g.Go(func() error {
			mem.RunPruner(ctx, cfg.PruneInterval)
			return nil
		})
		revoked = mem
	}

	var eventPub ports.EventPublisher = events.NopPublisher{}
	if cfg.EventsEnabled {
		wlog := watermill.NewSlogLogger(log)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{Client: redisClient}, wlog)
		if err != nil {
			return fmt.Errorf("failed to create redis publisher: %w", err)
		}
		defer publisher.Close()
		eventPub = events.NewWatermillPublisher(publisher)

		// No consumer group: every instance reads every logout event.
		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{Client: redisClient}, wlog)
		if err != nil {
			return fmt.Errorf("failed to create redis subscriber: %w", err)
		}
		defer subscriber.Close()

		revocationSync := events.NewRevocationSync(subscriber, revoked, log)
		g.Go(func() error {
			return revocationSync.Run(ctx)
		})
	}

	tok, err := tokenizer.NewJWTTokenizer([]byte(cfg.Secret))
	if err != nil {
		return err
	}
	h := hasher.NewWithCost(cfg.BcryptCost)

	svc := httpapi.Services{
		Auth:      service.NewAuthService(repos.users, repos.teachers, repos.persons, h, tok, revoked, eventPub, log, cfg.TokenTTL),
		Users:     service.NewUserService(repos.users, repos.roll, h, eventPub, log),
		Teachers:  service.NewTeacherService(repos.teachers, repos.persons, h, eventPub, log),
		Directory: service.NewDirectoryService(repos.persons, repos.roll),
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.SetupRouter(svc, httpapi.NewMetrics(), log),
	}

	g.Go(func() error {
		log.Info("campus service started",
			"addr", cfg.HTTPAddr,
			"store", cfg.StoreBackend,
			"revocations", cfg.RevocationBackend,
			"events", cfg.EventsEnabled,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("campus service terminated", "error", err)
		return err
	}

	log.Info("campus service stopped")

	return nil
}

func newRepositories(cfg config.Config, db *mongo.Database) repositories {
	if cfg.StoreBackend == config.BackendMemory {
		return repositories{
			users:    memory.NewUserRepository(),
			teachers: memory.NewTeacherRepository(),
			persons:  memory.NewPersonRepository(),
			roll:     memory.NewRollRepository(),
		}
	}

	return repositories{
		users:    mongodb.NewUserRepository(db),
		teachers: mongodb.NewTeacherRepository(db),
		persons:  mongodb.NewPersonRepository(db),
		roll:     mongodb.NewRollRepository(db),
	}
}
