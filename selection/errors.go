package selection

import (
	"rowtree/index"
	"rowtree/rterr"
	"rowtree/schema"
)

func unsupportedBounds(sch schema.Schema, b index.Bounds) error {
	return rterr.UnsupportedQueryErrorf("selection: bounds on %v not supported by schema %v", b.Columns(), sch.ColumnNames())
}

func unsupportedOrder(sch schema.Schema, cols []string) error {
	return rterr.UnsupportedQueryErrorf("selection: order by %v not supported by schema %v", cols, sch.ColumnNames())
}
