// File: /controllers/context.go
package controllers

import (
	"time"

	"eventhub-api/middleware"
	"eventhub-api/services"

	"github.com/gin-gonic/gin"
)

// Clock returns the current time in the location event dates are read in
type Clock func() time.Time

// SystemClock reads the wall clock in loc
func SystemClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func currentActor(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:  c.GetString(middleware.ContextUserID),
		IsStaff: c.GetBool(middleware.ContextIsStaff),
	}
}
