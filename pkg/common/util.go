package common

import (
	"os"
	"testing"
)

func IsTestEnv() bool {
	return testing.Testing()
}
func IsDevelopment() bool {
	return os.Getenv(EnvKeyGoEnv) == "development"
}

func IsProduction() bool {
	return os.Getenv(EnvKeyGoEnv) == "production"
}

func Mapper[T any, R any](items []T, mapFn func(T) R) []R {
	mapped := make([]R, len(items))
	for i := 0; i < len(items); i++ {
		mapped[i] = mapFn(items[i])
	}
	return mapped
}

func GroupBy[T any, K comparable](items []T, keyFn func(T) K) map[K][]T {
	grouped := make(map[K][]T)
	for i := 0; i < len(items); i++ {
		key := keyFn(items[i])
		grouped[key] = append(grouped[key], items[i])
	}
	return grouped
}
