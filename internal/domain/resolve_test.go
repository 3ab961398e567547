package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() []Destination {
	return []Destination{
		{ID: "@alice", SlackID: "U001", DisplayName: "alice", RealName: "Alice Cormier", Kind: KindUser},
		{ID: "@bob", SlackID: "U002", DisplayName: "bob", RealName: "Bob Tran", Kind: KindUser},
		{ID: "@cat", SlackID: "U003", DisplayName: "cat", RealName: "", Kind: KindUser},
		{ID: "#general", SlackID: "C001", DisplayName: "general", Kind: KindChannel},
		{ID: "#alice-team", SlackID: "C002", DisplayName: "alice-team", Kind: KindChannel},
	}
}

func TestResolve_ExplicitHandles(t *testing.T) {
	t.Run("user handle bypasses the directory", func(t *testing.T) {
		result, err := Resolve("@whoever", nil)
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
		assert.Equal(t, "@whoever", result.DestinationID)
	})

	t.Run("channel handle with empty directory", func(t *testing.T) {
		result, err := Resolve("#general", []Destination{})
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
		assert.Equal(t, "#general", result.DestinationID)
	})
}

func TestResolve_BareTokens(t *testing.T) {
	dir := testDirectory()

	t.Run("single match resolves", func(t *testing.T) {
		result, err := Resolve("bob", dir)
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
		assert.Equal(t, "@bob", result.DestinationID)
	})

	t.Run("user and channel both matching is ambiguous", func(t *testing.T) {
		result, err := Resolve("alice", dir)
		require.NoError(t, err)
		assert.Equal(t, Ambiguous, result.Kind)
		assert.Equal(t, []string{"@alice", "#alice-team"}, result.Candidates)
	})

	t.Run("no match is not found", func(t *testing.T) {
		result, err := Resolve("zelda", dir)
		require.NoError(t, err)
		assert.Equal(t, NotFound, result.Kind)
		assert.Equal(t, "zelda", result.Token)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		result, err := Resolve("BOB", dir)
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
		assert.Equal(t, "@bob", result.DestinationID)
	})

	t.Run("substring of display name matches", func(t *testing.T) {
		result, err := Resolve("gener", dir)
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
		assert.Equal(t, "#general", result.DestinationID)
	})

	t.Run("real name consulted when display name misses", func(t *testing.T) {
		result, err := Resolve("cormier", dir)
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
		assert.Equal(t, "@alice", result.DestinationID)
	})

	t.Run("display name match does not double count via real name", func(t *testing.T) {
		// "bob" matches both the display name and the real name of the same
		// user; the user must appear once.
		result, err := Resolve("bob", dir)
		require.NoError(t, err)
		assert.Equal(t, Resolved, result.Kind)
	})
}

func TestResolve_TokenIsAPattern(t *testing.T) {
	dir := testDirectory()

	// Inherited quirk: the token is compiled as a regular expression, so
	// metacharacters are live syntax rather than literal text.
	result, err := Resolve("^ali.e$", dir)
	require.NoError(t, err)
	assert.Equal(t, Resolved, result.Kind)
	assert.Equal(t, "@alice", result.DestinationID)

	_, err = Resolve("(unbalanced", dir)
	require.Error(t, err)
}
