package locpattern

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	nodes, err := Expand("X, 20{2}*(+-[2])")
	require.NoError(t, err)

	records := Flatten(nodes)
	require.Len(t, records, TotalNodes(nodes))

	wantNames := []string{"X", "201", "201-A", "201-B", "202", "202-A", "202-B"}
	gotNames := make([]string, 0, len(records))
	for _, r := range records {
		gotNames = append(gotNames, r.Name)
	}
	assert.Equal(t, wantNames, gotNames)

	seen := map[string]Record{}
	for _, r := range records {
		_, err := uuid.Parse(r.ID)
		require.NoError(t, err)
		assert.NotContains(t, seen, r.ID)

		if r.ParentID != "" {
			parent, ok := seen[r.ParentID]
			require.True(t, ok, "parent of %s must be emitted first", r.Name)
			assert.Equal(t, parent.Depth+1, r.Depth)
			assert.Equal(t, append(append([]string{}, parent.Path...), r.Name), r.Path)
		} else {
			assert.Equal(t, 0, r.Depth)
			assert.Equal(t, []string{r.Name}, r.Path)
		}

		seen[r.ID] = r
	}

	assert.Equal(t, 0, records[0].Position)
	assert.Equal(t, 1, records[1].Position)
	assert.Equal(t, 1, records[3].Position)
	assert.Equal(t, 2, records[4].Position)
}

func TestFlatten_Empty(t *testing.T) {
	records := Flatten(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
