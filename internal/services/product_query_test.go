package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
)

func TestProductQueryDisabledAtZeroKey(t *testing.T) {
	fp := &fakeProducts{list: []domain.Product{{ID: 1}}}
	q := NewProductQuery(fp)

	require.NoError(t, q.SetKey(0))

	assert.Equal(t, 0, fp.listCount(), "zero key must never issue a fetch")
	_, has := q.Data()
	assert.False(t, has)
	assert.False(t, q.Loading())

	// Refetch on a disabled query is also a no-op.
	require.NoError(t, q.Refetch())
	assert.Equal(t, 0, fp.listCount())
}

func TestProductQueryKeyedFetchAndInvalidation(t *testing.T) {
	fp := &fakeProducts{list: []domain.Product{{ID: 1, UserID: 7}}}
	q := NewProductQuery(fp)

	require.NoError(t, q.SetKey(7))
	data, has := q.Data()
	require.True(t, has)
	require.Len(t, data, 1)

	// changing the key re-fetches for the new user
	require.NoError(t, q.SetKey(8))
	assert.Equal(t, []int{7, 8}, fp.listKeys)

	// dropping to zero clears the cache
	require.NoError(t, q.SetKey(0))
	_, has = q.Data()
	assert.False(t, has)
}

func TestProductQueryRefetchFailureRetainsData(t *testing.T) {
	fp := &fakeProducts{list: []domain.Product{{ID: 1}, {ID: 2}}}
	q := NewProductQuery(fp)
	require.NoError(t, q.SetKey(7))

	fp.listErr = errRemote
	err := q.Refetch()
	require.Error(t, err)

	data, has := q.Data()
	assert.True(t, has, "previous data survives a failed refetch")
	assert.Len(t, data, 2)
	assert.True(t, q.Errored())
	assert.False(t, q.Loading())

	// a later success clears the error flag and replaces the data
	fp.listErr = nil
	fp.list = []domain.Product{{ID: 3}}
	require.NoError(t, q.Refetch())
	data, _ = q.Data()
	assert.Len(t, data, 1)
	assert.False(t, q.Errored())
}

func TestProductQueryRemoveIsLocal(t *testing.T) {
	fp := &fakeProducts{list: []domain.Product{{ID: 3}, {ID: 9}, {ID: 12}}}
	q := NewProductQuery(fp)
	require.NoError(t, q.SetKey(1))
	before := fp.listCount()

	q.Remove(9)

	data, _ := q.Data()
	ids := []int{}
	for _, p := range data {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{3, 12}, ids)
	assert.Equal(t, before, fp.listCount(), "removal must not trigger a fetch")
}
