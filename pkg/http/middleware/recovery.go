package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	applogger "TravelPulse/pkg/logger"
)

// Recover turns a handler panic into an error for echo's error handler.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.Error(perr),
						applogger.String("path", c.Path()),
						applogger.String("stack", string(debug.Stack())),
					)
					err = perr
				}
			}()
			return next(c)
		}
	}
}
