// Package frame converts tables to and from the two external ragged-list
// conventions used by tabular back-ends:
//
//   - per-row objects: each list cell is its own sub-array (RowsFrame)
//   - flat values plus offset boundaries: Apache Arrow list arrays
//
// Both directions auto-detect list-typed columns; callers never declare which
// encoding an input uses. Buffer byte layout crosses this boundary bit-exactly:
// no dtype is silently cast.
package frame

import (
	"fmt"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/device"
)

// hostValues returns the column's value buffer in host memory without
// changing the column's residency.
func hostValues(c *column.Column) (*column.Buffer, error) {
	if c.Device() == device.Host {
		return c.Values(), nil
	}
	raw, err := c.Values().HostBytes()
	if err != nil {
		return nil, fmt.Errorf("column on %s: %w", c.Device(), err)
	}
	return column.BufferFromBytes(raw, c.DType())
}
