package usecase

import "time"

// Status constants re-exported for tests in the usecase_test package.
const (
	SweepStatusSoldForTest      = sweepStatusSold
	SweepStatusCancelledForTest = sweepStatusCancelled
)

// Clock setters for tests in the usecase_test package, which cannot
// reach the unexported now fields directly.

func (s *BidService) SetNowForTest(f func() time.Time)     { s.now = f }
func (s *MarketService) SetNowForTest(f func() time.Time)  { s.now = f }
func (s *RefreshService) SetNowForTest(f func() time.Time) { s.now = f }
func (s *SweepService) SetNowForTest(f func() time.Time)   { s.now = f }
func (s *SquadService) SetNowForTest(f func() time.Time)   { s.now = f }
