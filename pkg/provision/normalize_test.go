package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGroups = []string{"Admins", "Developers"}

func membershipFor(m GroupMembership, group string) []string {
	for _, g := range m {
		if g.Group == group {
			return g.Users
		}
	}
	return nil
}

func TestNormalizeCommaSeparatedString(t *testing.T) {
	m, err := Normalize(map[string]any{"Admins": "alice, bob ,, carol"}, testGroups)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, membershipFor(m, "Admins"))
}

func TestNormalizeSequencePassesThrough(t *testing.T) {
	m, err := Normalize(map[string]any{"Admins": []any{"alice", "bob"}}, testGroups)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, membershipFor(m, "Admins"))
}

func TestNormalizeSequenceTrimsAndDropsEmpties(t *testing.T) {
	m, err := Normalize(map[string]any{"Admins": []any{" alice ", "", "bob"}}, testGroups)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, membershipFor(m, "Admins"))
}

func TestNormalizeStringSlice(t *testing.T) {
	m, err := Normalize(map[string]any{"Admins": []string{"alice", " bob"}}, testGroups)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, membershipFor(m, "Admins"))
}

func TestNormalizePreservesDuplicatesAndOrder(t *testing.T) {
	m, err := Normalize(map[string]any{"Admins": "bob,alice,bob"}, testGroups)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "alice", "bob"}, membershipFor(m, "Admins"))
}

func TestNormalizeAbsentGroupIsEmpty(t *testing.T) {
	m, err := Normalize(map[string]any{"Admins": "alice"}, testGroups)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Empty(t, membershipFor(m, "Developers"))
}

func TestNormalizeIgnoresUnknownKeys(t *testing.T) {
	m, err := Normalize(map[string]any{
		"Admins":       "alice",
		"ServiceToken": "arn:aws:sns:us-east-1:123456789012:topic",
	}, testGroups)
	require.NoError(t, err)
	require.Len(t, m, 2)
}

func TestNormalizeKeepsConfiguredGroupOrder(t *testing.T) {
	m, err := Normalize(map[string]any{"Developers": "dave", "Admins": "alice"}, testGroups)
	require.NoError(t, err)
	assert.Equal(t, "Admins", m[0].Group)
	assert.Equal(t, "Developers", m[1].Group)
}

func TestNormalizeRejectsNonStringValue(t *testing.T) {
	_, err := Normalize(map[string]any{"Admins": 42}, testGroups)
	require.Error(t, err)
	assert.True(t, IsCategory(err, ErrCategoryMalformedInput))
}

func TestNormalizeRejectsMixedSequence(t *testing.T) {
	_, err := Normalize(map[string]any{"Admins": []any{"alice", 7}}, testGroups)
	require.Error(t, err)
	assert.True(t, IsCategory(err, ErrCategoryMalformedInput))
}
