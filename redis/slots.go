package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/itcomdev/mentoring-app/models"
)

// Open-slot listings are hot and cheap to rebuild, so they get a short TTL
// and are dropped eagerly on regeneration and on every successful booking.
const slotCacheTTL = 60 * time.Second

func slotCacheKey(mentorID uint) string {
	return fmt.Sprintf("slots:%d", mentorID)
}

// GetCachedSlots returns the cached open-slot list for a mentor, if any.
func GetCachedSlots(mentorID uint) ([]models.AvailabilitySlot, bool) {
	if Client == nil {
		return nil, false
	}

	data, err := Client.Get(Ctx, slotCacheKey(mentorID)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []models.AvailabilitySlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// CacheSlots stores a mentor's open-slot list. Best-effort.
func CacheSlots(mentorID uint, slots []models.AvailabilitySlot) {
	if Client == nil {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := Client.Set(Ctx, slotCacheKey(mentorID), data, slotCacheTTL).Err(); err != nil {
		log.Printf("failed to cache slots for mentor %d: %v", mentorID, err)
	}
}

// InvalidateSlots drops the cached list after a regeneration or booking.
func InvalidateSlots(mentorID uint) {
	if Client == nil {
		return
	}
	if err := Client.Del(Ctx, slotCacheKey(mentorID)).Err(); err != nil {
		log.Printf("failed to invalidate slot cache for mentor %d: %v", mentorID, err)
	}
}
