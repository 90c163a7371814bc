// Package config loads typed configuration structs from environment
// variables.
//
// Structs declare their variables with `env` tags (parsed by caarlos0/env);
// a .env file in the working directory is picked up automatically on first
// use via godotenv. Each configuration type is parsed once per process and
// cached, so packages can call Load for their own config without
// coordinating initialization order.
package config
