package utils

import (
	logger "log"

	"github.com/fatih/color"
)

func Logf(msg string, args ...any) {
	logger.Printf(color.MagentaString(msg), args...)
}

func LogRED(msg string, args ...any) {
	logger.Printf(color.RedString(msg), args...)
}

func LogGREEN(msg string, args ...any) {
	logger.Printf(color.GreenString(msg), args...)
}

func LogCYAN(msg string, args ...any) {
	logger.Printf(color.CyanString(msg), args...)
}

func LogYELLOW(msg string, args ...any) {
	logger.Printf(color.YellowString(msg), args...)
}
