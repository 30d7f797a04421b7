package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-service/internal/domain"
)

func TestFilterBySearch(t *testing.T) {
	msgs := []domain.Message{
		{ID: "1", Subject: "Lab results", Content: "CBC attached"},
		{ID: "2", Subject: "Shift swap", Content: "Can you cover my LAB rotation?"},
		{ID: "3", Subject: "Lunch", Content: "Cafeteria at 1"},
	}

	assert.Equal(t, []string{"1", "2"}, inboxIDs(FilterBySearch(msgs, "lab")))
	assert.Equal(t, []string{"3"}, inboxIDs(FilterBySearch(msgs, "CAFETERIA")))
	assert.Equal(t, []string{"1", "2", "3"}, inboxIDs(FilterBySearch(msgs, "")))

	none := FilterBySearch(msgs, "radiology")
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSortNewestFirst_DoesNotMutateInput(t *testing.T) {
	msgs := []domain.Message{msgAt("a", "x", "me", 1), msgAt("b", "x", "me", 2)}
	sorted := SortNewestFirst(msgs)

	assert.Equal(t, []string{"b", "a"}, inboxIDs(sorted))
	assert.Equal(t, []string{"a", "b"}, inboxIDs(msgs))
}

func TestRecipientCandidates(t *testing.T) {
	users := []domain.User{
		{ID: "d1", Name: "Dr. Sarah Johnson", Role: domain.UserRoleDoctor},
		{ID: "p1", Name: "Jane Smith", Role: domain.UserRolePatient},
		{ID: "a1", Name: "Admin User", Role: domain.UserRoleAdmin},
		{ID: "d2", Name: "Dr. James Wilson", Role: domain.UserRoleDoctor},
	}

	groups := RecipientCandidates(users)

	require.Len(t, groups, 2)
	assert.Equal(t, domain.UserRoleAdmin, groups[0].Role)
	assert.Len(t, groups[0].Users, 1)
	assert.Equal(t, domain.UserRoleDoctor, groups[1].Role)
	assert.Equal(t, "d1", groups[1].Users[0].ID)
	assert.Equal(t, "d2", groups[1].Users[1].ID)
}

func TestRecipientCandidates_Empty(t *testing.T) {
	assert.Empty(t, RecipientCandidates([]domain.User{{ID: "p", Role: domain.UserRolePatient}}))
}
