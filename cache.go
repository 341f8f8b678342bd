package dreocloud

// statusCache holds the most recent status per device for one session.
// Last write wins, no eviction: the entry count is bounded by the number of
// devices a caller manages. Not synchronized - a DeviceSession is meant for
// one caller at a time, and the cache inherits that contract.
type statusCache struct {
	entries map[string]*DeviceStatus
}

func newStatusCache() *statusCache {
	return &statusCache{entries: make(map[string]*DeviceStatus)}
}

func (c *statusCache) get(deviceID string) (*DeviceStatus, bool) {
	status, ok := c.entries[deviceID]
	return status, ok
}

func (c *statusCache) put(deviceID string, status *DeviceStatus) {
	c.entries[deviceID] = status
}
