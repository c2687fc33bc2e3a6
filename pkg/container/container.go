package container

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"qna-backend/internal/config"
	infraCache "qna-backend/internal/infrastructure/cache"
	"qna-backend/internal/infrastructure/database"
	"qna-backend/internal/infrastructure/queue"
	"qna-backend/internal/infrastructure/storage"
	"qna-backend/pkg/cache"
	"qna-backend/pkg/jwt"
	"qna-backend/pkg/logger"

	"qna-backend/internal/domains/answer"
	answerHandler "qna-backend/internal/domains/answer/handler"
	answerRepo "qna-backend/internal/domains/answer/repository"
	answerService "qna-backend/internal/domains/answer/service"
	"qna-backend/internal/domains/notification"
	notificationHandler "qna-backend/internal/domains/notification/handler"
	notificationRepo "qna-backend/internal/domains/notification/repository"
	"qna-backend/internal/domains/question"
	questionHandler "qna-backend/internal/domains/question/handler"
	questionRepo "qna-backend/internal/domains/question/repository"
	questionService "qna-backend/internal/domains/question/service"
	"qna-backend/internal/domains/tag"
	tagHandler "qna-backend/internal/domains/tag/handler"
	tagRepo "qna-backend/internal/domains/tag/repository"
	tagService "qna-backend/internal/domains/tag/service"
	"qna-backend/internal/domains/upload"
	uploadHandler "qna-backend/internal/domains/upload/handler"
	"qna-backend/internal/domains/user"
	userHandler "qna-backend/internal/domains/user/handler"
	userRepo "qna-backend/internal/domains/user/repository"
	userService "qna-backend/internal/domains/user/service"
	"qna-backend/internal/domains/vote"
	voteHandler "qna-backend/internal/domains/vote/handler"
	voteRepo "qna-backend/internal/domains/vote/repository"
	voteService "qna-backend/internal/domains/vote/service"
)

// Container is the root of the dependency graph, built once at startup and
// shared by the API and the worker. Everything in it is a singleton.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Storage    *storage.MinIOStorage
	Queue      *queue.Client

	UserRepo            user.Repository
	TagRepo             tag.Repository
	QuestionRepo        question.Repository
	AnswerRepo          answer.Repository
	VoteRepo            vote.Repository
	NotificationRepo    notification.Repository
	NotificationContent notification.ContentSource

	UserService     user.Service
	TagService      tag.Service
	QuestionService question.Service
	AnswerService   answer.Service
	VoteService     vote.Service
	UploadService   *upload.Service

	UserHandler         *userHandler.Handler
	TagHandler          *tagHandler.Handler
	QuestionHandler     *questionHandler.Handler
	AnswerHandler       *answerHandler.Handler
	VoteHandler         *voteHandler.Handler
	NotificationHandler *notificationHandler.Handler
	UploadHandler       *uploadHandler.Handler
}

// NewContainer wires the whole graph in dependency order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	c.Cache = infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(c.Config.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.Storage, err = storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init minio: %w", err)
	}

	c.Queue = queue.NewClient(c.Config.Redis.Host)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.QuestionRepo = questionRepo.NewPostgresRepository(pool)
	c.AnswerRepo = answerRepo.NewPostgresRepository(pool)
	c.VoteRepo = voteRepo.NewPostgresRepository(pool)

	nr := notificationRepo.NewPostgresRepository(pool)
	c.NotificationRepo = nr
	c.NotificationContent = nr
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.TagService = tagService.NewTagService(c.TagRepo, c.Cache)
	c.AnswerService = answerService.NewAnswerService(c.AnswerRepo, c.VoteRepo, c.Queue)
	c.QuestionService = questionService.NewQuestionService(
		c.QuestionRepo,
		c.TagService,
		c.VoteRepo,
		c.AnswerService,
	)
	c.VoteService = voteService.NewVoteService(c.VoteRepo, voteTargets{
		questions: c.QuestionRepo,
		answers:   c.AnswerRepo,
	})
	c.UploadService = upload.NewService(c.Storage)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.TagHandler = tagHandler.NewHandler(c.TagService)
	c.QuestionHandler = questionHandler.NewHandler(c.QuestionService)
	c.AnswerHandler = answerHandler.NewHandler(c.AnswerService)
	c.VoteHandler = voteHandler.NewHandler(c.VoteService)
	c.NotificationHandler = notificationHandler.NewHandler(c.NotificationRepo)
	c.UploadHandler = uploadHandler.NewHandler(c.UploadService)
}

// Cleanup releases infrastructure resources, in reverse init order.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

// voteTargets adapts the question and answer repositories to the existence
// checks the vote service needs.
type voteTargets struct {
	questions question.Repository
	answers   answer.Repository
}

func (t voteTargets) QuestionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return t.questions.QuestionExists(ctx, id)
}

func (t voteTargets) AnswerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return t.answers.Exists(ctx, id)
}
