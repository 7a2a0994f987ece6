package layout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"eventvenue/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// AtomicRedisOperations guards the window between a booking submission
// arriving and its rows being committed. Availability shown to viewers is
// optimistic; this claim is what makes the submission the single authority.
type AtomicRedisOperations struct {
	redis *redis.Client
}

// NewAtomicRedisOperations creates a new atomic Redis operations handler
func NewAtomicRedisOperations(redisClient *redis.Client) *AtomicRedisOperations {
	return &AtomicRedisOperations{
		redis: redisClient,
	}
}

// Lua script for atomic seat claiming - prevents double booking races
const luaAtomicSeatClaim = `
-- KEYS[1] = booked set key for the event
-- ARGV[1] = user_id
-- ARGV[2] = claim key prefix for the event
-- ARGV[3] = ttl_seconds
-- ARGV[4..N] = seat_ids

local booked_key = KEYS[1]
local user_id = ARGV[1]
local claim_prefix = ARGV[2]
local ttl = tonumber(ARGV[3])

-- Reject if any seat is already booked or claimed by another submission
for i = 4, #ARGV do
    local seat_id = ARGV[i]

    if redis.call("SISMEMBER", booked_key, seat_id) == 1 then
        return {0, seat_id, "booked"}
    end

    local claim_key = claim_prefix .. seat_id
    local holder = redis.call("GET", claim_key)
    if holder and holder ~= user_id then
        return {0, seat_id, "claimed"}
    end
end

-- All seats free, claim them for this submission
for i = 4, #ARGV do
    local claim_key = claim_prefix .. ARGV[i]
    redis.call("SETEX", claim_key, ttl, user_id)
end

return {1, "success", ""}
`

// AtomicClaimSeats atomically claims every requested seat for the duration
// of one booking submission. Either all seats are claimed or none are.
func (a *AtomicRedisOperations) AtomicClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildBookedSeatsKey(eventID)}
	args := []interface{}{
		userID,
		claimKeyPrefix(eventID),
		strconv.Itoa(int(ttl.Seconds())),
	}
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicSeatClaim, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicSeatClaim, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic seat claim: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 3 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		seatID, _ := resultArray[1].(string)
		reason, _ := resultArray[2].(string)
		if reason == "booked" {
			return &SelectionRejected{SeatID: seatID, Reason: "seat is already booked"}
		}
		return &SubmissionFailed{Reason: fmt.Sprintf("seat %s is being booked by another user", seatID)}
	}

	return nil
}

// ReleaseClaims drops the submission claims, used after the booking rows are
// committed or when the submission fails partway.
func (a *AtomicRedisOperations) ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		keys = append(keys, claimKeyPrefix(eventID)+seatID)
	}
	if len(keys) == 0 {
		return nil
	}
	return a.redis.Del(ctx, keys...).Err()
}

// MarkSeatsBooked adds the seats to the event's booked set so later claims
// fail fast without hitting Postgres.
func (a *AtomicRedisOperations) MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	members := make([]interface{}, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		members = append(members, seatID)
	}
	if len(members) == 0 {
		return nil
	}

	key := constants.BuildBookedSeatsKey(eventID)
	if err := a.redis.SAdd(ctx, key, members...).Err(); err != nil {
		return err
	}
	return a.redis.Expire(ctx, key, constants.TTL_LAYOUT_BOOKED).Err()
}

// UnmarkSeatsBooked removes cancelled seats from the event's booked set so
// they become claimable again.
func (a *AtomicRedisOperations) UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	members := make([]interface{}, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		members = append(members, seatID)
	}
	if len(members) == 0 {
		return nil
	}

	return a.redis.SRem(ctx, constants.BuildBookedSeatsKey(eventID), members...).Err()
}

// PreloadScripts loads Lua scripts into Redis for better performance
func (a *AtomicRedisOperations) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	_, err := a.redis.ScriptLoad(ctx, luaAtomicSeatClaim).Result()
	if err != nil {
		return fmt.Errorf("failed to load seat claim script: %w", err)
	}

	return nil
}

func claimKeyPrefix(eventID string) string {
	return constants.CACHE_PREFIX + ":layout:claim:" + eventID + ":"
}
