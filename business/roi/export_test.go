//go:build !integration

package roi

import (
	"bytes"
	"strings"
	"testing"

	"aiAutomate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProjectionsCSV(t *testing.T) {
	calc, err := Calculate(exampleInputs())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteProjectionsCSV(&buf, calc))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, ProjectionMonths+1)
	assert.Equal(t, "month,cumulative_savings,cumulative_costs,net_savings,roi_percentage", lines[0])
	assert.Equal(t, "1,1971.67,5200.00,-3228.33,-64.57", lines[1])
	assert.True(t, strings.HasPrefix(lines[36], "36,"))
}

func TestWriteProjectionsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProjectionsCSV(&buf, domain.ROICalculation{}))
	assert.Equal(t, "month,cumulative_savings,cumulative_costs,net_savings,roi_percentage\n", buf.String())
}
