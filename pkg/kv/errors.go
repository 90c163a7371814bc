package kv

import "errors"

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("empty storage key")

	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")

	ErrFailedToOpenDatabase = errors.New("failed to open sqlite database")
	ErrQueryFailed          = errors.New("storage query failed")
)
