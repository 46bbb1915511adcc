// Package mocks provides mock implementations for testing the skipflow services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces in internal/core. To regenerate after interface changes:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockJobRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), "t1", "job-1").Return(job, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/skipflow/skipflow-go/internal/core JobRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_event_repository_mock.go github.com/skipflow/skipflow-go/internal/core JobEventRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tenant_repository_mock.go github.com/skipflow/skipflow-go/internal/core TenantRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=connection_repository_mock.go github.com/skipflow/skipflow-go/internal/core ConnectionRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=settings_repository_mock.go github.com/skipflow/skipflow-go/internal/core SettingsRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=accounting_client_mock.go github.com/skipflow/skipflow-go/internal/core AccountingClient

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tenant_cache_mock.go github.com/skipflow/skipflow-go/internal/core TenantCache
