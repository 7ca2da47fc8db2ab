package regulations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateInfoCaseInsensitive(t *testing.T) {
	c := NewCatalog()

	ca := c.StateInfo("ca")
	require.NotNil(t, ca)
	assert.Equal(t, "California", ca.Name)
	assert.Equal(t, 21, ca.AppealDeadlineDays)

	assert.Same(t, ca, c.StateInfo("CA"))
	assert.Nil(t, c.StateInfo("ZZ"))
}

func TestCityInfoExactName(t *testing.T) {
	c := NewCatalog()

	sf := c.CityInfo("San Francisco")
	require.NotNil(t, sf)
	assert.Equal(t, "CA", sf.State)
	assert.True(t, sf.OnlineAppeal)
	assert.True(t, sf.FeeWaiverAvailable)

	// Lookup is by exact name, no normalization
	assert.Nil(t, c.CityInfo("san francisco"))
	assert.Nil(t, c.CityInfo("Springfield"))
}

func TestCombinedInfo(t *testing.T) {
	c := NewCatalog()

	t.Run("city and state resolve", func(t *testing.T) {
		info := c.CombinedInfo("San Francisco", "ca")
		require.NotNil(t, info.State)
		require.NotNil(t, info.City)
		assert.Equal(t, "CA", info.State.Code)
		assert.Equal(t, "San Francisco", info.City.Name)
		assert.NotEmpty(t, info.AvailableGrounds)
	})

	t.Run("city in wrong state is dropped", func(t *testing.T) {
		info := c.CombinedInfo("San Francisco", "NY")
		require.NotNil(t, info.State)
		assert.Equal(t, "New York", info.State.Name)
		assert.Nil(t, info.City)
	})

	t.Run("state without city record", func(t *testing.T) {
		info := c.CombinedInfo("", "TX")
		require.NotNil(t, info.State)
		assert.Nil(t, info.City)
	})

	t.Run("unknown state still returns grounds", func(t *testing.T) {
		info := c.CombinedInfo("San Francisco", "ZZ")
		assert.Nil(t, info.State)
		assert.Nil(t, info.City)
		assert.Equal(t, c.CommonGrounds(), info.AvailableGrounds)
	})
}

func TestCitiesForState(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, []string{"San Francisco", "Los Angeles"}, c.CitiesForState("CA"))
	assert.Equal(t, []string{"San Francisco", "Los Angeles"}, c.CitiesForState("ca"))
	assert.Equal(t, []string{"New York City"}, c.CitiesForState("NY"))
	assert.Empty(t, c.CitiesForState("ZZ"))
}

func TestStateCodesOrder(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, []string{"CA", "NY", "TX", "FL", "IL"}, c.StateCodes())
}

func TestCommonGroundsCopy(t *testing.T) {
	c := NewCatalog()

	grounds := c.CommonGrounds()
	require.Contains(t, grounds, "unclear_signage")
	require.Contains(t, grounds, "disability_accommodation")
	assert.Len(t, grounds, 15)

	// Mutating the returned slice must not affect the catalog
	grounds[0] = "tampered"
	assert.Equal(t, "unclear_signage", c.CommonGrounds()[0])
}
