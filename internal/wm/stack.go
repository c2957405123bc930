package wm

import (
	"notid/internal/banner"
	"notid/internal/config"
	"notid/internal/notification"
)

// Stack is the ordered set of live banners. Order is what the configured
// Sorting dictates; the anchor only decides which direction positions grow
// on screen, not the order itself.
type Stack struct {
	banners []*banner.Banner
	sorting config.Sorting
}

// NewStack returns an empty stack ordered by sorting.
func NewStack(sorting config.Sorting) *Stack {
	return &Stack{sorting: sorting}
}

// SetSorting changes the ordering for banners inserted from now on; the
// existing order is kept, matching update_by_config's no-close contract.
func (s *Stack) SetSorting(sorting config.Sorting) {
	s.sorting = sorting
}

func (s *Stack) Len() int { return len(s.banners) }

// Banners returns the stack in position order; index 0 sits closest to the
// anchored edge.
func (s *Stack) Banners() []*banner.Banner { return s.banners }

// ByID returns the banner with the given id and its position, or nil.
func (s *Stack) ByID(id uint32) (*banner.Banner, int) {
	for i, b := range s.banners {
		if b.Notification().ID == id {
			return b, i
		}
	}
	return nil, -1
}

// Put inserts a banner for n, or replaces an existing same-id banner in
// place. Replacement keeps the banner's stack position and resets its
// timer; a fresh id goes to the position the sorting dictates. The updated
// or inserted banner is returned along with whether it was a replacement.
func (s *Stack) Put(n notification.Notification) (*banner.Banner, bool) {
	if b, _ := s.ByID(n.ID); b != nil {
		b.UpdateData(n)
		return b, true
	}

	b := banner.New(n)
	s.banners = insertAt(s.banners, s.position(b), b)
	return b, false
}

// position picks the insertion index for a new banner under the configured
// sorting.
func (s *Stack) position(b *banner.Banner) int {
	switch s.sorting {
	case config.SortingReverse:
		return 0
	case config.SortingUrgencyThenInsertion:
		u := b.Notification().Hints.Urgency
		for i, existing := range s.banners {
			if existing.Notification().Hints.Urgency < u {
				return i
			}
		}
		return len(s.banners)
	default:
		return len(s.banners)
	}
}

func insertAt(banners []*banner.Banner, i int, b *banner.Banner) []*banner.Banner {
	banners = append(banners, nil)
	copy(banners[i+1:], banners[i:])
	banners[i] = b
	return banners
}

// Remove takes the banner with the given id out of the stack and returns
// it, or nil if no such banner exists.
func (s *Stack) Remove(id uint32) *banner.Banner {
	b, i := s.ByID(id)
	if b == nil {
		return nil
	}
	s.banners = append(s.banners[:i], s.banners[i+1:]...)
	return b
}

// Overflow returns the ids of the banners past the configured limit,
// oldest first; zero limit means unlimited.
func (s *Stack) Overflow(limit int) []uint32 {
	if limit <= 0 || len(s.banners) <= limit {
		return nil
	}

	excess := len(s.banners) - limit
	oldest := make([]*banner.Banner, len(s.banners))
	copy(oldest, s.banners)
	// Selection by creation time, not position: sorting may interleave
	// urgencies, and the limit always evicts the longest-lived banners.
	for i := 0; i < excess; i++ {
		min := i
		for j := i + 1; j < len(oldest); j++ {
			if oldest[j].CreatedAt().Before(oldest[min].CreatedAt()) {
				min = j
			}
		}
		oldest[i], oldest[min] = oldest[min], oldest[i]
	}

	ids := make([]uint32, 0, excess)
	for _, b := range oldest[:excess] {
		ids = append(ids, b.Notification().ID)
	}
	return ids
}
