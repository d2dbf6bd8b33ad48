// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/inventory_store.go -destination=inventory_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/credentials.go -destination=credentials_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/snapshot.go -destination=snapshot_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/inventory_service.go -destination=inventory_service_mock.go -package=mocks
