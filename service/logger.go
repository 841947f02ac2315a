package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ziahq/specstudio/importer"
)

// zerologAdapter bridges the service's zerolog logger to the importer's
// structured Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newZerologAdapter(logger zerolog.Logger) *zerologAdapter {
	return &zerologAdapter{logger: logger}
}

func (z *zerologAdapter) Debug(msg string, attrs ...any) { z.emit(z.logger.Debug(), msg, attrs) }
func (z *zerologAdapter) Info(msg string, attrs ...any)  { z.emit(z.logger.Info(), msg, attrs) }
func (z *zerologAdapter) Warn(msg string, attrs ...any)  { z.emit(z.logger.Warn(), msg, attrs) }
func (z *zerologAdapter) Error(msg string, attrs ...any) { z.emit(z.logger.Error(), msg, attrs) }

func (z *zerologAdapter) With(attrs ...any) importer.Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(attrs); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(attrs[i]), attrs[i+1])
	}
	return &zerologAdapter{logger: ctx.Logger()}
}

func (z *zerologAdapter) emit(e *zerolog.Event, msg string, attrs []any) {
	for i := 0; i+1 < len(attrs); i += 2 {
		e = e.Interface(fmt.Sprint(attrs[i]), attrs[i+1])
	}
	e.Msg(msg)
}

var _ importer.Logger = (*zerologAdapter)(nil)
