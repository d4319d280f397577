package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// It lets the use case layer compose multi-step atomic operations without
// depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise it's committed. All repository operations within the function
	// use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside Execute shares one connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// AuthRepo returns an AuthRepository bound to the current transaction.
	AuthRepo() AuthRepository

	// RefreshTokenRepo returns a RefreshTokenRepository bound to the current transaction.
	RefreshTokenRepo() RefreshTokenRepository

	// TwoFactorRepo returns a TwoFactorRepository bound to the current transaction.
	TwoFactorRepo() TwoFactorRepository

	// CompanyRepo returns a CompanyRepository bound to the current transaction.
	CompanyRepo() CompanyRepository

	// JoinRequestRepo returns a JoinRequestRepository bound to the current transaction.
	JoinRequestRepo() JoinRequestRepository

	// JobRepo returns a JobRepository bound to the current transaction.
	JobRepo() JobRepository

	// ApplicationRepo returns an ApplicationRepository bound to the current transaction.
	ApplicationRepo() ApplicationRepository

	// ArticleRepo returns an ArticleRepository bound to the current transaction.
	ArticleRepo() ArticleRepository
}
