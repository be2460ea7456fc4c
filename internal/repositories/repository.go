package repositories

import "context"

// Repository aggregates all repository interfaces. WithTransaction yields a
// Repository bound to a single transaction so guard-then-mutate sequences
// execute atomically.
type Repository interface {
	User() UserRepository
	Student() StudentRepository
	Tutor() TutorRepository
	Category() CategoryRepository
	Booking() BookingRepository
	Review() ReviewRepository
	Analytics() AnalyticsRepository
	Identity() IdentityRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the lifecycle of a Repository and its connections.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
