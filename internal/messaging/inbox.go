package messaging

import (
	"sort"
	"strings"

	"github.com/spec-kit/staff-service/internal/domain"
)

// SortNewestFirst orders messages by CreatedAt descending. Equal timestamps
// keep their relative order.
func SortNewestFirst(messages []domain.Message) []domain.Message {
	sorted := make([]domain.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// FilterBySearch keeps messages whose subject or content contains term,
// ignoring case. Relative order is preserved.
func FilterBySearch(messages []domain.Message, term string) []domain.Message {
	needle := strings.ToLower(term)
	result := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		if strings.Contains(strings.ToLower(msg.Subject), needle) ||
			strings.Contains(strings.ToLower(msg.Content), needle) {
			result = append(result, msg)
		}
	}
	return result
}

// Involves reports whether userID sent or received msg.
func Involves(msg domain.Message, userID string) bool {
	return msg.SenderID == userID || msg.ReceiverID == userID
}
