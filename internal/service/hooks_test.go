package service

import "time"

// SetNow replaces the service's clock so tests can pin "now".
func SetNow(s *ApplicationService, now func() time.Time) {
	s.now = now
}
