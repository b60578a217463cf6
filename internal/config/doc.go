// Package config loads and saves the formatter's JSON settings file and
// converts it into the per-component configuration structs.
package config
