package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_HSID(t *testing.T) {
	assert.Equal(t, "HS00042", User{ID: 42}.HSID())
	assert.Equal(t, "HS123456", User{ID: 123456}.HSID())
	assert.Equal(t, "HSXXXXX", User{}.HSID())
}

func TestParseToolStatus(t *testing.T) {
	s, err := ParseToolStatus(1)
	require.NoError(t, err)
	assert.Equal(t, ToolOperational, s)

	s, err = ParseToolStatus(0)
	require.NoError(t, err)
	assert.Equal(t, ToolOutOfService, s)

	_, err = ParseToolStatus(2)
	assert.Error(t, err)
	_, err = ParseToolStatus(-1)
	assert.Error(t, err)
}

func TestParseToolUse(t *testing.T) {
	assert.Equal(t, UseStarted, ParseToolUse("1"))
	assert.Equal(t, UseFinished, ParseToolUse("0"))
	assert.Equal(t, UseFinished, ParseToolUse("7"))
	assert.Equal(t, UseFinished, ParseToolUse("-1"))
	assert.Equal(t, UseInvalid, ParseToolUse("abc"))
	assert.Equal(t, UseInvalid, ParseToolUse(""))
}

func TestDisplayStrings(t *testing.T) {
	assert.Equal(t, "Operational", ToolOperational.String())
	assert.Equal(t, "Out of service", ToolOutOfService.String())
	assert.Equal(t, "maintainer", LevelMaintainer.String())
	assert.Equal(t, "user", LevelUser.String())
	assert.Equal(t, "un-authorised", LevelNone.String())
	assert.Equal(t, "yes", Tool{InUse: true}.InUseDisplay())
	assert.Equal(t, "no", Tool{}.InUseDisplay())
}

func TestOutcome_Text(t *testing.T) {
	assert.Equal(t, "-1", OutcomeNotFound.Text())
	assert.Equal(t, "0", OutcomeDenied.Text())
	assert.Equal(t, "1", OutcomeOK.Text())
}

func TestUsageRecord_String(t *testing.T) {
	rec := UsageRecord{ToolID: 1, UserID: 7, Duration: 3725}
	assert.Equal(t, "tool 1 used by user 7 for 1:02:05", rec.String())
}

func TestPermissionLevel_Stored(t *testing.T) {
	assert.True(t, LevelUser.Stored())
	assert.True(t, LevelMaintainer.Stored())
	assert.False(t, LevelNone.Stored())
	assert.False(t, LevelNotFound.Stored())
}
