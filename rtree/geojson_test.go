package rtree_test

import (
	"os"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/crystalix007/polygon-rtree/rtree"
)

// parcel is a land parcel identified by its ID rather than its geometry.
type parcel struct {
	ID    uuid.UUID
	Name  string
	Shape orb.Polygon
}

func (p parcel) Bound() orb.Bound {
	return p.Shape.Bound()
}

func (p parcel) Equal(other parcel) bool {
	return p.ID == other.ID
}

func loadParcels(t *testing.T) []parcel {
	t.Helper()

	data, err := os.ReadFile("testdata/parcels.geojson")
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)

	parcels := make([]parcel, 0, len(fc.Features))

	for _, f := range fc.Features {
		shape, ok := f.Geometry.(orb.Polygon)
		require.True(t, ok, "geometry %T", f.Geometry)

		parcels = append(parcels, parcel{
			ID:    uuid.MustParse(f.Properties.MustString("id")),
			Name:  f.Properties.MustString("name"),
			Shape: shape,
		})
	}

	return parcels
}

func TestTree_parcels(t *testing.T) {
	t.Parallel()

	parcels := loadParcels(t)
	require.Len(t, parcels, 9)

	tree, err := rtree.New[parcel](3)
	require.NoError(t, err)

	for _, p := range parcels {
		require.NoError(t, tree.Insert(p))
	}

	require.NoError(t, tree.Check())
	require.Equal(t, 9, tree.Len())

	names := func(found []parcel) []string {
		result := make([]string, len(found))

		for i, p := range found {
			result[i] = p.Name
		}

		slices.Sort(result)

		return result
	}

	t.Run("Overlap", func(t *testing.T) {
		t.Parallel()

		found := tree.RangeSearch(orb.Bound{Min: orb.Point{3, 3}, Max: orb.Point{6, 6}})
		require.Equal(t, []string{"orchard", "river-strip", "south-field"}, names(found))
	})

	t.Run("Corner", func(t *testing.T) {
		t.Parallel()

		found := tree.RangeSearch(orb.Bound{Min: orb.Point{4, 14}, Max: orb.Point{5, 20}})
		require.Equal(t, []string{"north-field"}, names(found))
	})

	t.Run("Outside", func(t *testing.T) {
		t.Parallel()

		found := tree.RangeSearch(orb.Bound{Min: orb.Point{20, 20}, Max: orb.Point{30, 30}})
		require.Empty(t, found)
	})
}

func TestTree_parcels_identity(t *testing.T) {
	t.Parallel()

	parcels := loadParcels(t)

	tree, err := rtree.New[parcel](3)
	require.NoError(t, err)

	for _, p := range parcels {
		require.NoError(t, tree.Insert(p))
	}

	// A parcel re-surveyed with the same shape is a distinct item.
	resurveyed := parcels[2]
	resurveyed.ID = uuid.New()

	require.NoError(t, tree.Insert(resurveyed))
	require.ErrorIs(t, tree.Insert(parcels[2]), rtree.ErrDuplicateKey)

	require.NoError(t, tree.Delete(parcels[2]))
	require.True(t, tree.Contains(resurveyed))
	require.False(t, tree.Contains(parcels[2]))

	// Deleting by ID with a stale shape misses, since lookup goes by bound.
	moved := parcels[3]
	moved.Shape = square(100, 100, 1)

	require.ErrorIs(t, tree.Delete(moved), rtree.ErrNotFound)
	require.NoError(t, tree.Check())
	require.Equal(t, len(parcels), tree.Len())
}
