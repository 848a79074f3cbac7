package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

func orderRow(ds *dataset.Dataset, original, actual dataset.Value) *dataset.Dataset {
	return ds.Append(
		dataset.Str("S1"), dataset.Str("O1"), dataset.Str("10"), dataset.Str("P1"),
		dataset.Null(), original, actual, dataset.Str("2024-03-16"),
	)
}

func newOrderInput() *dataset.Dataset {
	return dataset.New("SOURCE_SYSTEM_ERP", "AUFNR", "POSNR", "DWERK", "KDAUF", "ZZGLTRP_ORIG", "LTRMI", "GSTRI")
}

func TestOrderKeys(t *testing.T) {
	ds := orderRow(newOrderInput(), dataset.Str("2024-03-20"), dataset.Str("2024-03-18"))

	out, err := Order(ds)
	require.NoError(t, err)

	r := out.Row(0)
	assert.Equal(t, "O1_10_P1", r.Get("primary_key_intra").Format())
	assert.Equal(t, "S1_O1_10_P1", r.Get("primary_key_inter").Format())
}

func TestOrderOnTimeFlag(t *testing.T) {
	cases := []struct {
		name     string
		original dataset.Value
		actual   dataset.Value
		want     dataset.Value
	}{
		{"finished on the planned day", dataset.Str("2024-03-20"), dataset.Str("2024-03-20"), dataset.Int(1)},
		{"finished early", dataset.Str("2024-03-20"), dataset.Str("2024-03-18"), dataset.Int(1)},
		{"finished late", dataset.Str("2024-03-20"), dataset.Str("2024-03-21"), dataset.Int(0)},
		{"original missing", dataset.Null(), dataset.Str("2024-03-20"), dataset.Null()},
		{"actual missing", dataset.Str("2024-03-20"), dataset.Null(), dataset.Null()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Order(orderRow(newOrderInput(), tc.original, tc.actual))
			require.NoError(t, err)
			got := out.Row(0).Get("on_time_flag")
			assert.True(t, tc.want.Equal(got), "want %q got %q", tc.want.Format(), got.Format())
		})
	}
}

func TestOrderDeviation(t *testing.T) {
	t.Run("early finish is positive", func(t *testing.T) {
		out, err := Order(orderRow(newOrderInput(), dataset.Str("2024-03-20"), dataset.Str("2024-03-18")))
		require.NoError(t, err)
		f, ok := out.Row(0).Get("actual_on_time_deviation").Float()
		require.True(t, ok)
		assert.Equal(t, 2.0, f)
	})

	t.Run("late finish is negative", func(t *testing.T) {
		out, err := Order(orderRow(newOrderInput(), dataset.Str("2024-03-20"), dataset.Str("2024-03-25")))
		require.NoError(t, err)
		f, ok := out.Row(0).Get("actual_on_time_deviation").Float()
		require.True(t, ok)
		assert.Equal(t, -5.0, f)
	})

	t.Run("missing date yields null", func(t *testing.T) {
		out, err := Order(orderRow(newOrderInput(), dataset.Null(), dataset.Str("2024-03-25")))
		require.NoError(t, err)
		assert.True(t, out.Row(0).Get("actual_on_time_deviation").IsNull())
	})
}

func TestLateDeliveryBucket(t *testing.T) {
	cases := []struct {
		deviation dataset.Value
		want      string
	}{
		{dataset.Double(0), BucketOnTime},
		{dataset.Double(-3), BucketOnTime},
		{dataset.Double(1), BucketSlightlyLate},
		{dataset.Double(5), BucketSlightlyLate},
		{dataset.Double(6), BucketModeratelyLate},
		{dataset.Double(10), BucketModeratelyLate},
		{dataset.Double(11), BucketSeverelyLate},
		{dataset.Null(), BucketSeverelyLate},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, lateDeliveryBucket(tc.deviation), "deviation %s", tc.deviation.Format())
	}
}

func TestOrderBucketColumn(t *testing.T) {
	// Deviation +10 days sits on the Moderately Late boundary.
	out, err := Order(orderRow(newOrderInput(), dataset.Str("2024-03-30"), dataset.Str("2024-03-20")))
	require.NoError(t, err)
	assert.Equal(t, BucketModeratelyLate, out.Row(0).Get("late_delivery_bucket").Format())
}

func TestOrderMTOvsMTS(t *testing.T) {
	ds := newOrderInput().
		Append(dataset.Str("S1"), dataset.Str("O1"), dataset.Str("10"), dataset.Str("P1"),
			dataset.Str("SO-1"), dataset.Null(), dataset.Null(), dataset.Null()).
		Append(dataset.Str("S1"), dataset.Str("O2"), dataset.Str("10"), dataset.Str("P1"),
			dataset.Null(), dataset.Null(), dataset.Null(), dataset.Null())

	out, err := Order(ds)
	require.NoError(t, err)
	assert.Equal(t, FlagMTO, out.Row(0).Get("mto_vs_mts_flag").Format())
	assert.Equal(t, FlagMTS, out.Row(1).Get("mto_vs_mts_flag").Format())
}

func TestOrderTimestamps(t *testing.T) {
	out, err := Order(orderRow(newOrderInput(), dataset.Null(), dataset.Str("2024-03-18")))
	require.NoError(t, err)

	r := out.Row(0)
	assert.Equal(t, "2024-03-18 00:00:00", r.Get("order_finish_timestamp").Format())
	assert.Equal(t, "2024-03-16 00:00:00", r.Get("order_start_timestamp").Format())

	t.Run("unparsable dates map to null", func(t *testing.T) {
		bad := newOrderInput().
			Append(dataset.Str("S1"), dataset.Str("O1"), dataset.Str("10"), dataset.Str("P1"),
				dataset.Null(), dataset.Null(), dataset.Str("18.03.2024"), dataset.Null())
		out, err := Order(bad)
		require.NoError(t, err)
		assert.True(t, out.Row(0).Get("order_finish_timestamp").IsNull())
		assert.True(t, out.Row(0).Get("order_start_timestamp").IsNull())
	})
}

func TestOrderMissingOriginalFinishColumn(t *testing.T) {
	ds := dataset.New("SOURCE_SYSTEM_ERP", "AUFNR", "POSNR", "DWERK", "KDAUF", "LTRMI", "GSTRI").
		Append(dataset.Str("S1"), dataset.Str("O1"), dataset.Str("10"), dataset.Str("P1"),
			dataset.Null(), dataset.Str("2024-03-18"), dataset.Null())

	out, err := Order(ds)
	require.NoError(t, err)
	assert.True(t, out.HasColumn("ZZGLTRP_ORIG"), "column is guaranteed even when the source lacks it")
	assert.True(t, out.Row(0).Get("ZZGLTRP_ORIG").IsNull())
	assert.True(t, out.Row(0).Get("on_time_flag").IsNull())
	assert.Equal(t, BucketSeverelyLate, out.Row(0).Get("late_delivery_bucket").Format())
}

func TestOrderNil(t *testing.T) {
	_, err := Order(nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}
