package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"convertd/internal/convert"
	"convertd/internal/format"
	"convertd/internal/server/config"
	"convertd/internal/server/database"
)

// Rejection messages returned to the client for guard failures.
const (
	msgFileTooLarge  = "file exceeds maximum allowed size"
	msgTooManyPixels = "image exceeds maximum pixel count"
)

// History records finished conversions. The database repository satisfies
// it; a nil history disables recording.
type History interface {
	Record(ctx context.Context, c *database.Conversion) error
	Recent(ctx context.Context, limit int) ([]*database.Conversion, error)
	GetStats(ctx context.Context) (*database.Stats, error)
}

// ConvertService contains the business logic around the dispatcher:
// resource guards, history recording and batch packing.
type ConvertService struct {
	dispatcher *convert.Dispatcher
	history    History
	cfg        *config.Config
}

// NewConvertService creates a new conversion service. history may be nil
// when the server runs without a database.
func NewConvertService(dispatcher *convert.Dispatcher, history History, cfg *config.Config) *ConvertService {
	return &ConvertService{
		dispatcher: dispatcher,
		history:    history,
		cfg:        cfg,
	}
}

// Convert runs one guarded conversion and records the outcome.
func (s *ConvertService) Convert(ctx context.Context, op format.Operation, file convert.File, opts convert.Options) convert.Response {
	start := time.Now()

	resp, rejected := s.guard(file, op)
	if !rejected {
		resp = s.dispatcher.Dispatch(op, file, opts)
	}

	s.record(ctx, op, file, resp, time.Since(start))
	return resp
}

// ConvertBatch runs the operation across all files and packs the successful
// outputs into a single ZIP archive. The per-file responses always come
// back; an all-failure batch still yields an archive, with zero entries.
func (s *ConvertService) ConvertBatch(ctx context.Context, op format.Operation, files []convert.File, opts convert.Options) ([]convert.Response, []byte) {
	start := time.Now()

	// Guard rejections replace the file's payload so the runner reports
	// them in place without dispatching.
	checked := make([]convert.File, 0, len(files))
	rejections := make(map[int]convert.Response)
	for i, f := range files {
		if resp, rejected := s.guard(f, op); rejected {
			rejections[i] = resp
			f.Data = nil
		}
		checked = append(checked, f)
	}

	responses := s.dispatcher.RunBatch(checked, op, opts)
	for i, resp := range rejections {
		responses[i] = resp
	}

	duration := time.Since(start)
	for i, f := range files {
		s.record(ctx, op, f, responses[i], duration/time.Duration(len(files)))
	}

	archive, err := convert.Pack(responses)
	if err != nil {
		slog.Error("failed to pack batch archive", "operation", op, "error", err)
		return responses, nil
	}
	return responses, archive
}

// GetStats returns aggregate conversion statistics.
func (s *ConvertService) GetStats(ctx context.Context) (*database.Stats, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.GetStats(ctx)
}

// RecentConversions returns the newest history rows.
func (s *ConvertService) RecentConversions(ctx context.Context, limit int) ([]*database.Conversion, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit)
}

// guard enforces the upload size and pixel ceilings before any decode work.
// The pixel guard only applies to operations that consume images, and only
// when the header is readable; undecodable inputs fall through so the
// converter reports the decode failure itself.
func (s *ConvertService) guard(file convert.File, op format.Operation) (convert.Response, bool) {
	if s.cfg.MaxUploadSize > 0 && int64(len(file.Data)) > s.cfg.MaxUploadSize {
		return convert.Response{Success: false, Message: msgFileTooLarge}, true
	}

	if s.cfg.MaxPixels > 0 && format.RequiredCategory(op) == format.CategoryImage {
		if px, err := convert.ImagePixels(file.Data); err == nil && px > s.cfg.MaxPixels {
			return convert.Response{Success: false, Message: msgTooManyPixels}, true
		}
	}

	return convert.Response{}, false
}

// record persists the conversion outcome, best-effort.
func (s *ConvertService) record(ctx context.Context, op format.Operation, file convert.File, resp convert.Response, took time.Duration) {
	slog.Info("conversion processed",
		"operation", op,
		"input", file.Name,
		"output", resp.FileName,
		"success", resp.Success,
		"duration_ms", took.Milliseconds(),
	)

	if s.history == nil {
		return
	}

	c := &database.Conversion{
		ID:         uuid.New(),
		Operation:  string(op),
		InputName:  file.Name,
		OutputName: resp.FileName,
		InputSize:  int64(len(file.Data)),
		OutputSize: int64(len(resp.Data)),
		Success:    resp.Success,
		Message:    resp.Message,
		DurationMS: took.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.history.Record(ctx, c); err != nil {
		slog.Error("failed to record conversion", "id", c.ID, "error", err)
	}
}
