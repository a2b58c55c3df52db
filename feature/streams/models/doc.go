// Package models contains the database and report models of the
// streams feature.
package models
