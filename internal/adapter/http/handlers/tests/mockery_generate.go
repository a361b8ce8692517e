package tests

// Generated doubles are optional; the hand-written mocks in this package
// cover the same interfaces.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name ScheduleService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename schedule_service_mock.go --with-expecter
//go:generate mockery --name GenerationService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename generation_service_mock.go --with-expecter
