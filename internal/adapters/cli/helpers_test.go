package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://planner:****@db:5432/catalog",
		maskPassword("postgres://planner:s3cret@db:5432/catalog"))
	assert.Equal(t, "postgres://planner@db/catalog", maskPassword("postgres://planner@db/catalog"))
	assert.Equal(t, "host=db user=planner", maskPassword("host=db user=planner"))
}

func TestResolvePolicy(t *testing.T) {
	policy, err := resolvePolicy("", "total-power")
	require.NoError(t, err)
	assert.Equal(t, planning.PolicyMinimizeTotalPower, policy)

	policy, err = resolvePolicy("complexity", "total-power")
	require.NoError(t, err)
	assert.Equal(t, planning.PolicyMinimizeComplexity, policy)

	_, err = resolvePolicy("fastest", "none")
	assert.Error(t, err)
}

func TestParseHelpers(t *testing.T) {
	values, err := parseInts([]string{"3", "7"}, "<id>", "<node>")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, values)

	_, err = parseInts([]string{"3"}, "<id>", "<node>")
	assert.EqualError(t, err, "expected <id> <node>")

	_, err = parseRate("-2")
	assert.Error(t, err)
	rate, err := parseRate("2.5")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, rate, 1e-9)
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "unlimited", formatLimit(-1))
	assert.Equal(t, "64", formatLimit(64))
}
