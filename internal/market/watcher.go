package market

import (
	"strconv"
	"time"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/flexicompute/go-rental-provider/constants"
	"github.com/gomodule/redigo/redis"
)

// SaveRentalMetadata mirrors an active order into redis under a key that
// expires with the rental window, so operators can inspect running rentals
// without touching the engine.
func SaveRentalMetadata(orderId, renterId, deviceId string, startTime time.Time, durationHours int) {
	conn := redisPool.Get()
	defer conn.Close()

	expireAt := startTime.Add(time.Duration(durationHours) * time.Hour)
	key := constants.REDIS_RENTAL_PREFIX + orderId

	fullArgs := []interface{}{key}
	fields := map[string]string{
		"renter_id":   renterId,
		"device_id":   deviceId,
		"start_time":  strconv.FormatInt(startTime.Unix(), 10),
		"expire_time": strconv.FormatInt(expireAt.Unix(), 10),
	}
	for field, val := range fields {
		fullArgs = append(fullArgs, field, val)
	}
	if _, err := conn.Do("HSET", fullArgs...); err != nil {
		logs.GetLogger().Errorf("Failed set rental metadata, key: %s, error: %+v", key, err)
	}
}

func deleteRentalMetadata(orderIds []string) {
	conn := redisPool.Get()
	defer conn.Close()

	var keys []string
	for _, id := range orderIds {
		keys = append(keys, constants.REDIS_RENTAL_PREFIX+id)
	}
	if _, err := conn.Do("DEL", redis.Args{}.AddFlat(keys)...); err != nil {
		logs.GetLogger().Errorf("Failed delete rental metadata keys, error: %+v", err)
		return
	}
	logs.GetLogger().Infof("Delete redis keys finished, keys: %+v", keys)
}

// WatchExpiredRentals completes ACTIVE orders whose window has passed,
// returning their devices to the market, and drops the redis mirror keys.
func WatchExpiredRentals(e *Engine) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for range ticker.C {
			go func() {
				defer func() {
					if err := recover(); err != nil {
						logs.GetLogger().Errorf("catch panic error: %+v", err)
					}
				}()
				expired := e.Orders.ExpireOverdue(time.Now())
				if len(expired) == 0 {
					return
				}
				logs.GetLogger().Infof("<timer-task> expired rentals terminated, orders: %+v", expired)
				if redisPool != nil {
					deleteRentalMetadata(expired)
				}
			}()
		}
	}()
}
