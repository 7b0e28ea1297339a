package provider

import (
	"strings"

	"github.com/sdrescue/trashtrack/internal/authz"
	"github.com/sdrescue/trashtrack/internal/cache"
	"github.com/sdrescue/trashtrack/internal/config"
	"github.com/sdrescue/trashtrack/internal/logger"
	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"
)

// Container wires repositories and services together for the handlers.
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo        repository.UserRepository
	ParticipantRepo repository.ParticipantRepository
	ShiftRepo       repository.ShiftRepository
	PaymentRepo     repository.PaymentRepository
	HomeworkRepo    repository.HomeworkRepository
	OutcomeRepo     repository.OutcomeRepository
	ReportRepo      repository.ReportRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	UserService        *service.UserService
	ParticipantService *service.ParticipantService
	ShiftService       *service.ShiftService
	PaymentService     *service.PaymentService
	HomeworkService    *service.HomeworkService
	OutcomeService     *service.OutcomeService
	ReportService      *service.ReportService
}

// NewContainer builds the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ParticipantRepo = repository.NewParticipantRepository(db)
	c.ShiftRepo = repository.NewShiftRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.HomeworkRepo = repository.NewHomeworkRepository(db)
	c.OutcomeRepo = repository.NewOutcomeRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.syncUserRoles()

	policy := service.DefaultPaymentPolicy()

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.ParticipantService = service.NewParticipantService(c.ParticipantRepo)
	c.ShiftService = service.NewShiftService(c.ShiftRepo, c.ParticipantRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.ParticipantRepo, policy)
	c.HomeworkService = service.NewHomeworkService(c.HomeworkRepo, c.ParticipantRepo)
	c.OutcomeService = service.NewOutcomeService(c.OutcomeRepo, c.ParticipantRepo)
	c.ReportService = service.NewReportService(c.ReportRepo, policy)
}

// syncUserRoles mirrors the users table into the policy store so role
// assignments survive database restores and manual edits.
func (c *Container) syncUserRoles() {
	users, _, err := c.UserRepo.List(repository.UserListFilter{})
	if err != nil {
		logger.Warnw("provider_sync_user_roles_failed", "error", err)
		return
	}
	for _, user := range users {
		role := strings.ToLower(strings.TrimSpace(user.Role))
		if role == "" {
			continue
		}
		if err := c.AuthzService.SetUserRoles(user.ID, []string{role}); err != nil {
			logger.Warnw("provider_sync_user_role_failed",
				"user_id", user.ID,
				"role", role,
				"error", err,
			)
		}
	}
}
