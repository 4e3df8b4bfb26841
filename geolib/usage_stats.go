package geolib

import (
	"encoding/json"
	"sync"
	"time"
)

// Names of remote services GeoResolver talks to.
const (
	ServiceIPEcho  = "ip_echo"
	ServiceGeoIP   = "geo_ip"
	ServiceGeocode = "geocode"
)

// UsageStats collects usage statistics of a remote service: how many
// requests were sent and how many answers were given from a state or a
// cache without any request at all.
type UsageStats struct {
	Name string

	mutex        sync.Mutex
	lastUsed     time.Time
	lastCached   time.Time
	successCount uint64
	failureCount uint64
	cachedCount  uint64
}

func (u *UsageStats) Used(err error) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now

	if err == nil {
		u.successCount++
	} else {
		u.failureCount++
	}
}

func (u *UsageStats) Cached() {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastCached = now
	u.cachedCount++
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	var lastUsedTime, lastCachedTime int64

	u.mutex.Lock()

	if !u.lastUsed.IsZero() {
		lastUsedTime = u.lastUsed.Unix()
	}

	if !u.lastCached.IsZero() {
		lastCachedTime = u.lastCached.Unix()
	}

	rawStruct := struct {
		Name         string `json:"name"`
		LastUsed     int64  `json:"last_used"`
		LastCached   int64  `json:"last_cached"`
		SuccessCount uint64 `json:"success_count"`
		FailureCount uint64 `json:"failure_count"`
		CachedCount  uint64 `json:"cached_count"`
	}{
		Name:         u.Name,
		LastUsed:     lastUsedTime,
		LastCached:   lastCachedTime,
		SuccessCount: u.successCount,
		FailureCount: u.failureCount,
		CachedCount:  u.cachedCount,
	}

	u.mutex.Unlock()

	return json.Marshal(&rawStruct)
}
