package convert

import (
	"log/slog"

	"convertd/internal/format"
)

// RunBatch applies one operation across the files strictly sequentially,
// returning exactly one response per input file in input order. A file's
// failure never aborts the rest of the batch; conversions are CPU- and
// memory-bound, so there is deliberately no intra-batch parallelism.
func (d *Dispatcher) RunBatch(files []File, op format.Operation, opts Options) []Response {
	if len(files) == 0 {
		return []Response{failure("no files provided for batch conversion")}
	}

	out := make([]Response, 0, len(files))
	for _, f := range files {
		resp := d.Dispatch(op, f, opts)
		if !resp.Success {
			slog.Info("batch entry failed", "file", f.Name, "operation", op, "message", resp.Message)
		}
		out = append(out, resp)
	}
	return out
}
