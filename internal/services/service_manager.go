package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/auth"
	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/storage"
	"github.com/scolink/community-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	MaxUploadBytes int64
	PublicBaseURL  string
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	tokens    *auth.TokenManager
	publisher events.EventPublisher
	fileStore *storage.FileStore
	config    ServiceManagerConfig

	// Service instances
	authService         AuthService
	userService         UserService
	taxonomyService     TaxonomyService
	forumService        ForumService
	assignmentService   AssignmentService
	socialService       SocialService
	notificationService NotificationService
	dashboardService    DashboardService
	bannerService       BannerService
	uploadService       UploadService
	exportService       ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, tokens *auth.TokenManager, publisher events.EventPublisher, fileStore *storage.FileStore, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		tokens:    tokens,
		publisher: publisher,
		fileStore: fileStore,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	// Notifications first, the forum, assignment and social services
	// fan out through them.
	sm.notificationService = NewNotificationService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher)
	sm.authService = NewAuthService(sm.repo, sm.db, sm.logger, sm.validator, sm.tokens, sm.publisher)
	sm.userService = NewUserService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher)
	sm.taxonomyService = NewTaxonomyService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.forumService = NewForumService(sm.repo, sm.db, sm.logger, sm.validator, sm.notificationService, sm.publisher)
	sm.assignmentService = NewAssignmentService(sm.repo, sm.db, sm.logger, sm.validator, sm.notificationService, sm.publisher)
	sm.socialService = NewSocialService(sm.repo, sm.db, sm.logger, sm.notificationService, sm.publisher)
	sm.dashboardService = NewDashboardService(sm.repo, sm.db, sm.logger)
	sm.bannerService = NewBannerService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.uploadService = NewUploadService(sm.repo, sm.db, sm.logger, sm.fileStore, sm.config.MaxUploadBytes, sm.config.PublicBaseURL)
	sm.exportService = NewExportService(sm.repo, sm.db, sm.logger, sm.assignmentService)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) get(name string, service interface{}) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if service == nil {
		panic(name + " service not initialized")
	}
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("auth", sm.authService)
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("user", sm.userService)
	return sm.userService
}

func (sm *serviceManager) Taxonomy() TaxonomyService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("taxonomy", sm.taxonomyService)
	return sm.taxonomyService
}

func (sm *serviceManager) Forum() ForumService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("forum", sm.forumService)
	return sm.forumService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("assignment", sm.assignmentService)
	return sm.assignmentService
}

func (sm *serviceManager) Social() SocialService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("social", sm.socialService)
	return sm.socialService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("notification", sm.notificationService)
	return sm.notificationService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("dashboard", sm.dashboardService)
	return sm.dashboardService
}

func (sm *serviceManager) Banner() BannerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("banner", sm.bannerService)
	return sm.bannerService
}

func (sm *serviceManager) Upload() UploadService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("upload", sm.uploadService)
	return sm.uploadService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("export", sm.exportService)
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Warn("failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")

	return nil
}
