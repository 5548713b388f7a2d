package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/savelinks/internal/logging"
)

// gooseLogger routes goose progress output into the application logger.
type gooseLogger struct {
	log logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

// Fatalf does not exit; goose returns the error to the caller as well.
func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}
