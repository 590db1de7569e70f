package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "slotwise/database/repository/booking"
	eventRepo "slotwise/database/repository/event"
	scheduleRepo "slotwise/database/repository/schedule"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"
)

// BookingService is the surface the booking page talks to: resolve
// availability, commit a chosen slot, cancel a booking.
type BookingService interface {
	// Availability resolves bookable slots for a visitor's query.
	Availability(ctx context.Context, q models.SlotQuery) (models.AvailabilityResult, error)
	// Commit re-validates the chosen slot against the live state and
	// atomically reserves it.
	Commit(ctx context.Context, req models.CommitRequest) (*models.Booking, error)
	// Cancel deletes a booking and invalidates cached availability for
	// its host.
	Cancel(ctx context.Context, bookingID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Engine    *availability.Engine
	Events    eventRepo.EventTypeRepository
	Schedules scheduleRepo.ScheduleRepository
	Bookings  bookingRepo.BookingRepository
	Locker    HostLocker

	// CacheClient caches collected availability results; nil disables
	// caching entirely.
	CacheClient *redis.Client
	CacheTTL    time.Duration
}

func availabilityCacheKey(q models.SlotQuery) string {
	return fmt.Sprintf("avail:%s:%s:%d:%d:%s:%d",
		q.HostID, q.EventTypeID, q.RangeStart.Unix(), q.RangeEnd.Unix(), q.VisitorTimezone, q.GranularityMinutes)
}

// Availability serves resolution results through a short-TTL cache.
// Degraded results are never cached: they reflect a transient source
// outage and should heal on the next request.
func (s *DefaultBookingService) Availability(ctx context.Context, q models.SlotQuery) (models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	if s.CacheClient == nil {
		return s.Engine.Resolve(ctx, q)
	}

	key := availabilityCacheKey(q)
	if data, err := s.CacheClient.Get(ctx, key).Result(); err == nil {
		var cached models.AvailabilityResult
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return cached, nil
		}
	}

	result, err := s.Engine.Resolve(ctx, q)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	if !result.Degraded {
		if data, err := json.Marshal(result); err == nil {
			if err := s.CacheClient.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
				logger.Warn("failed to cache availability", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return result, nil
}

// invalidateHostAvailability drops every cached availability entry for the
// host. Called whenever the host's busy state changes (commit, cancel).
func (s *DefaultBookingService) invalidateHostAvailability(ctx context.Context, hostID string) {
	if s.CacheClient == nil {
		return
	}
	logger := utils.GetLogger()

	pattern := fmt.Sprintf("avail:%s:*", hostID)
	iter := s.CacheClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.CacheClient.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("failed to invalidate availability cache",
				zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("availability cache scan failed", zap.String("hostID", hostID), zap.Error(err))
	}
}
