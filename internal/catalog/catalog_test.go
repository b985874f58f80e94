package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serpentaware/internal/models"
)

func names(snakes []models.Snake) []string {
	out := make([]string, len(snakes))
	for i, s := range snakes {
		out[i] = s.Name
	}
	return out
}

func TestSeedShape(t *testing.T) {
	d, err := Seed()
	require.NoError(t, err)
	require.Len(t, d.Snakes, 11)
	require.Len(t, d.EmergencyInfo, 3)
	require.NoError(t, Validate(d))

	ids := map[string]bool{}
	for _, s := range d.Snakes {
		assert.NotEmpty(t, s.ID)
		assert.False(t, s.CreatedAt.IsZero())
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		ids[s.ID] = true
	}
}

func TestSeedReturnsFreshCopies(t *testing.T) {
	a := MustSeed()
	b := MustSeed()
	assert.NotEqual(t, a.Snakes[0].ID, b.Snakes[0].ID)

	a.Snakes[0].Countries[0] = "Atlantis"
	assert.Equal(t, "United States", b.Snakes[0].Countries[0])
}

func TestFilterByContinent(t *testing.T) {
	snakes := MustSeed().Snakes
	got := Filter(snakes, Query{Continent: models.Africa})
	assert.Equal(t, []string{"Black Mamba", "Puff Adder"}, names(got))
}

func TestFilterUnknownContinentIsEmptyNotNil(t *testing.T) {
	got := Filter(MustSeed().Snakes, Query{Continent: "Antarctica"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterSearch(t *testing.T) {
	snakes := MustSeed().Snakes
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by name, mixed case", "MAMBA", []string{"Black Mamba"}},
		{"by scientific name", "vipera", []string{"European Adder"}},
		{"by country", "kenya", []string{"Black Mamba", "Puff Adder"}},
		{"padded term", "  cobra  ", []string{"King Cobra"}},
		{"no match", "basilisk", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(snakes, Query{Search: tc.search})
			if diff := cmp.Diff(tc.want, names(got)); diff != "" {
				t.Fatalf("search %q mismatch (-want +got):\n%s", tc.search, diff)
			}
		})
	}
}

func TestFilterBlankSearchKeepsAll(t *testing.T) {
	snakes := MustSeed().Snakes
	assert.Len(t, Filter(snakes, Query{Search: "   "}), len(snakes))
	assert.True(t, Query{Search: " "}.IsZero())
}

func TestFilterCombined(t *testing.T) {
	snakes := MustSeed().Snakes
	got := Filter(snakes, Query{Continent: models.Europe, DangerLevel: models.Harmless})
	assert.Equal(t, []string{"Grass Snake"}, names(got))

	got = Filter(snakes, Query{Continent: models.Asia, Search: "india"})
	assert.Equal(t, []string{"King Cobra", "Russell's Viper"}, names(got))
}

func TestContinentCounts(t *testing.T) {
	got := ContinentCounts(MustSeed().Snakes)
	want := []models.ContinentCount{
		{Continent: models.Africa, Count: 2},
		{Continent: models.Asia, Count: 2},
		{Continent: models.Australia, Count: 2},
		{Continent: models.Europe, Count: 2},
		{Continent: models.NorthAmerica, Count: 2},
		{Continent: models.SouthAmerica, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("continent counts mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ContinentCounts(nil))
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(MustSeed().Snakes)
	assert.Equal(t, 11, st.TotalSnakes)
	assert.Equal(t, 10, st.VenomousSnakes)
	assert.Equal(t, 7, st.DeadlySnakes)
	assert.Equal(t, 1, st.Continents[models.SouthAmerica])
	assert.Len(t, st.Continents, 6)

	empty := ComputeStats(nil)
	assert.Zero(t, empty.TotalSnakes)
	assert.NotNil(t, empty.Continents)
}

func TestSortEmergencyIsStable(t *testing.T) {
	infos := []models.EmergencyInfo{
		{Title: "c", Priority: 3},
		{Title: "a1", Priority: 1},
		{Title: "b", Priority: 2},
		{Title: "a2", Priority: 1},
	}
	SortEmergency(infos)
	got := []string{infos[0].Title, infos[1].Title, infos[2].Title, infos[3].Title}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, got)
}

func TestDangerClass(t *testing.T) {
	assert.Equal(t, "badge-harmless", DangerClass(models.Harmless))
	assert.Equal(t, "badge-mildly-venomous", DangerClass(models.MildlyVenomous))
	assert.Equal(t, "badge-venomous", DangerClass(models.Venomous))
	assert.Equal(t, "badge-highly-venomous", DangerClass(models.HighlyVenomous))
	assert.Equal(t, "badge-deadly", DangerClass(models.Deadly))
	assert.Equal(t, "bg-gray-100 text-gray-800", DangerClass("Spicy"))
}

func TestValidateReportsEveryFailure(t *testing.T) {
	d := MustSeed()
	d.Snakes[0].Continent = "Atlantis"
	d.Snakes[1].DangerLevel = "Spicy"
	d.Snakes[2].Countries = nil
	d.Snakes[3].ID = d.Snakes[4].ID
	d.EmergencyInfo[0].Priority = 0

	err := Validate(d)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "snake 0")
	assert.Contains(t, msg, "snake 1")
	assert.Contains(t, msg, "snake 2")
	assert.Contains(t, msg, "duplicate id")
	assert.Contains(t, msg, "emergency info 0")
}

func TestValidateEmptyDataset(t *testing.T) {
	assert.ErrorContains(t, Validate(Dataset{}), "no snakes")
}
