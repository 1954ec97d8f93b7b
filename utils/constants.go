package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// EarthRadiusMiles is the sphere radius used for every distance in the service.
const EarthRadiusMiles = 3963.2

// DefaultRadiusMiles applies when a discovery request omits its radius.
const DefaultRadiusMiles = 50.0
