// Package logger builds the structured application log for the shell.
package logger
