// Package postgres contains the PostgreSQL implementations of the store
// interfaces, plus helpers for mapping driver errors to store errors.
package postgres
