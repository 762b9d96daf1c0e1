// internal/service/store_lock.go
package service

import "sync"

// StoreLock serializes read-modify-write cycles against the two storage
// documents. CampaignService and GreetingService must share one instance,
// otherwise a greeting submission can race the greeting sweep of a cascade
// delete and lose its write. Lock order is campaigns before greetings.
type StoreLock struct {
	campaigns sync.Mutex
	greetings sync.Mutex
}
