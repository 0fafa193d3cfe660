package store

import "github.com/mbolis/quick-feedback/model"

// PrependWhenPopulated is the optimistic-update rule for new submissions:
// the item goes in front of the list only if the list already holds
// something. An empty list means nothing was fetched yet, and the first
// submission shows up on the next fetch instead.
//
// It never modifies feedbacks in place and reports whether it prepended.
func PrependWhenPopulated(feedbacks []model.Feedback, item model.Feedback) ([]model.Feedback, bool) {
	if len(feedbacks) == 0 {
		return feedbacks, false
	}
	next := make([]model.Feedback, 0, len(feedbacks)+1)
	next = append(next, item)
	next = append(next, feedbacks...)
	return next, true
}
