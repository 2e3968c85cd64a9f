package handlers

import (
	"github.com/google/uuid"

	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/services"
)

// invalidateFor drops everything cached for a user after a mutation: the
// per-user response cache and the stats overview. The overview key is owned
// by the stats service, so its invalidation goes through there.
func invalidateFor(stats *services.StatsService, userID uuid.UUID) {
	middleware.InvalidateUserCache(userID.String())
	stats.InvalidateUser(userID)
}
