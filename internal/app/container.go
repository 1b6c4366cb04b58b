package app

import (
	"context"
	"errors"
	"time"

	"career-portal/internal/chatbot"
	"career-portal/internal/config"
	"career-portal/internal/database"
	"career-portal/internal/database/migration"
	dbpostgres "career-portal/internal/database/postgres"
	"career-portal/internal/infrastructure/broker"
	"career-portal/internal/infrastructure/cache"
	"career-portal/internal/infrastructure/storage"
	"career-portal/internal/pkg/jwt"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"
	"career-portal/internal/usecase"
	"career-portal/internal/ws"
)

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config config.Config
	Logger *logger.Logger
	DB     database.DB
	Cache  *cache.Redis
	Blobs  storage.Store
	Broker *broker.AMQP
	Hub    *ws.Hub
	JWT    *jwt.HMACService

	Auth     *usecase.Auth
	Profile  *usecase.Profile
	Resume   *usecase.Resume
	Jobs     *usecase.Jobs
	Courses  *usecase.Courses
	Skills   *usecase.SkillAnalysis
	Progress *usecase.Progress
	Chat     *usecase.Chat
}

// NewContainer connects to Postgres, applies migrations, and wires repositories
// and usecases. Redis and AMQP are optional: the cache degrades to a pass-through
// and activity events are simply not published.
func NewContainer(cfg config.Config, log *logger.Logger) (*Container, error) {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: log, DB: db}

	if err := migration.Up(ctx, db); err != nil {
		_ = c.Close()
		return nil, err
	}

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Blobs = blobs
	c.Cache = cache.NewRedis(cfg.Redis, log)
	c.Hub = ws.NewHub(log)
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	notifiers := []usecase.ActivityNotifier{c.Hub}
	if cfg.AMQP.URL != "" {
		b, err := broker.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Warn("[Broker] AMQP unavailable, activity events will not be published", "error", err)
		} else {
			c.Broker = b
			notifiers = append(notifiers, b)
		}
	}

	bot, err := chatbot.New()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	store := usecase.UserStore{
		Users:   repository.NewPostgresUserRepository(db),
		Skills:  repository.NewPostgresUserSkillRepository(db),
		Resumes: repository.NewPostgresResumeRepository(db),
		Logger:  log,
	}
	jobsRepo := repository.NewPostgresJobRepository(db)
	activityLog := usecase.NewActivityLog(repository.NewPostgresActivityRepository(db), log, notifiers...)

	c.Skills = usecase.NewSkillAnalysis(jobsRepo, store, log)
	c.Auth = usecase.NewAuthUsecase(store, c.JWT, activityLog)
	c.Profile = usecase.NewProfileUsecase(store, activityLog)
	c.Resume = usecase.NewResumeUsecase(store, blobs, activityLog, log)
	c.Jobs = usecase.NewJobUsecase(jobsRepo, repository.NewPostgresApplicationRepository(db), store, c.Cache, activityLog, log)
	c.Courses = usecase.NewCourseUsecase(repository.NewPostgresCourseRepository(db), c.Skills, c.Cache, activityLog, log)
	c.Progress = usecase.NewProgressUsecase(store, activityLog)
	c.Chat = usecase.NewChatUsecase(bot, store)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Broker != nil {
		errs = append(errs, c.Broker.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
