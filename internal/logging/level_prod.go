//go:build !dev

package logging

import "github.com/charmbracelet/log"

const defaultLevel = log.InfoLevel
