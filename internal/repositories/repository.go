package repositories

import "context"

// Repository aggregates all domain repository interfaces
type Repository interface {
	// User domain
	User() UserRepository

	// Taxonomy domain (branches, levels, subjects)
	Taxonomy() TaxonomyRepository

	// Forum domain
	Forum() ForumRepository

	// Assignment domain
	Assignment() AssignmentRepository

	// Social graph domain
	Social() SocialRepository

	// Notification domain
	Notification() NotificationRepository

	// Ad banner domain
	Banner() BannerRepository

	// File upload metadata
	Upload() UploadRepository

	// Platform statistics
	Stats() StatsRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
