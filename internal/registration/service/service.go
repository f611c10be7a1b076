package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"ekathra/internal/platform/blob"
	"ekathra/internal/registration/export"
	"ekathra/internal/registration/metrics"
	"ekathra/internal/registration/models"
	"ekathra/internal/registration/receipt"
	"ekathra/pkg/domain"
	dErrors "ekathra/pkg/domain-errors"
	"ekathra/pkg/platform/sentinel"
)

// Store is the Record Store contract: list everything, insert one record
// and learn its key, delete by key.
type Store interface {
	List(ctx context.Context) ([]*models.Attendee, error)
	Insert(ctx context.Context, a *models.Attendee) (models.StoreKey, error)
	Delete(ctx context.Context, key models.StoreKey) error
}

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Archive receives copies of generated receipts and exports and hands them
// back to admins.
type Archive interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (blob.Info, error)
	Get(ctx context.Context, key string) (blob.Info, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]blob.Info, error)
}

const defaultStoreTimeout = 5 * time.Second

var errArchiveDisabled = dErrors.New(dErrors.CodeNotFound, "archive is not configured")

// Service owns the roster: the in-memory list of attendees loaded once from
// the store and then kept in step with local registrations and deletions.
//
// Mutations hold mu across the store call and touch the roster only after
// the store confirms, so a failed call leaves the roster unchanged and two
// submissions of the same name cannot both pass the duplicate scan.
type Service struct {
	store        Store
	event        models.Event
	logger       *slog.Logger
	metrics      *metrics.Metrics
	archive      Archive
	newID        func() domain.ReceiptID
	storeTimeout time.Duration
	now          func() time.Time

	mu     sync.Mutex
	roster []*models.Attendee
	loaded bool
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithIDGenerator replaces the receipt ID source; tests use it for fixed IDs.
func WithIDGenerator(gen func() domain.ReceiptID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithStoreTimeout bounds every individual store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithArchive enables best-effort copies of receipts and exports.
func WithArchive(a Archive) Option {
	return func(s *Service) {
		s.archive = a
	}
}

// New constructs a Service. Call Load before serving to warm the roster;
// if that fails the next operation retries it.
func New(store Store, event models.Event, opts ...Option) *Service {
	s := &Service{
		store:        store,
		event:        event,
		logger:       slog.Default(),
		newID:        domain.NewReceiptID,
		storeTimeout: defaultStoreTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Event returns the event metadata printed on receipts.
func (s *Service) Event() models.Event {
	return s.event
}

// Load reads every record from the store into the roster, replacing it.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	start := time.Now()
	records, err := s.store.List(ctx)
	s.metrics.ObserveStoreCall("list", start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load registrations", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not load registrations")
	}
	s.roster = records
	s.loaded = true
	s.metrics.SetRosterSize(len(s.roster))
	s.logger.InfoContext(ctx, "registrations loaded", "count", len(records))
	return nil
}

func (s *Service) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

// Register validates the form, rejects duplicate names, persists the record,
// and returns the receipt. Names are compared case-insensitively against the
// roster only; the store enforces no uniqueness.
func (s *Service) Register(ctx context.Context, name, phone string) (*models.Receipt, error) {
	req := &models.RegisterRequest{Name: name, Phone: phone}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	for _, existing := range s.roster {
		if existing.SameName(req.Name) {
			s.metrics.IncrementDuplicates()
			return nil, dErrors.New(dErrors.CodeConflict, "this name is already registered")
		}
	}

	attendee := &models.Attendee{Name: req.Name, Phone: req.Phone, ID: s.newID()}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	start := time.Now()
	key, err := s.store.Insert(storeCtx, attendee)
	s.metrics.ObserveStoreCall("insert", start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist registration",
			"request_id", chimw.GetReqID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registration could not be saved, please try again")
	}

	attendee.StoreKey = key
	s.roster = append(s.roster, attendee)
	s.metrics.IncrementRegistrations()
	s.metrics.SetRosterSize(len(s.roster))
	s.logger.InfoContext(ctx, "attendee registered",
		"request_id", chimw.GetReqID(ctx),
		"receipt_id", attendee.ID.String(),
	)
	return receipt.FromAttendee(attendee, s.event), nil
}

// Receipt looks up a roster entry by receipt ID.
func (s *Service) Receipt(ctx context.Context, id domain.ReceiptID) (*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	for _, a := range s.roster {
		if a.ID == id {
			return receipt.FromAttendee(a, s.event), nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "receipt not found")
}

// List returns a copy of the roster in insertion order.
func (s *Service) List(ctx context.Context) ([]*models.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return s.snapshotLocked(), nil
}

func (s *Service) snapshotLocked() []*models.Attendee {
	out := make([]*models.Attendee, 0, len(s.roster))
	for _, a := range s.roster {
		out = append(out, a.Clone())
	}
	return out
}

// Delete removes the roster entry matching both id and key after the store
// confirms. A store that no longer has the record counts as success.
func (s *Service) Delete(ctx context.Context, id domain.ReceiptID, key models.StoreKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := -1
	for i, a := range s.roster {
		if a.ID == id && a.StoreKey == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "registration not found")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	start := time.Now()
	err := s.store.Delete(storeCtx, key)
	s.metrics.ObserveStoreCall("delete", start, err)
	switch {
	case err == nil:
	case errors.Is(err, sentinel.ErrNotFound):
		s.logger.WarnContext(ctx, "registration already absent from store",
			"receipt_id", id.String(),
			"store_key", string(key),
		)
	default:
		s.logger.ErrorContext(ctx, "failed to delete registration",
			"request_id", chimw.GetReqID(ctx),
			"receipt_id", id.String(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "registration could not be deleted, please try again")
	}

	s.roster = append(s.roster[:idx], s.roster[idx+1:]...)
	s.metrics.IncrementDeletions()
	s.metrics.SetRosterSize(len(s.roster))
	s.logger.InfoContext(ctx, "registration deleted",
		"request_id", chimw.GetReqID(ctx),
		"receipt_id", id.String(),
	)
	return nil
}

// ExportCSV renders the roster as CSV in roster order.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := export.CSV(records)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to export registrations")
	}
	s.metrics.IncrementExports()

	key := "exports/" + s.now().UTC().Format("20060102T150405Z") + "_" + export.Filename
	s.archiveCopy(ctx, key, data, export.ContentType)
	return data, nil
}

// ArchiveReceiptPDF stores a copy of a rendered receipt when an archive is
// configured. Failures are logged and never surface to the registrant.
func (s *Service) ArchiveReceiptPDF(ctx context.Context, id domain.ReceiptID, pdf []byte) {
	s.archiveCopy(ctx, "receipts/"+id.String()+".pdf", pdf, receipt.PDFContentType)
}

func (s *Service) archiveCopy(ctx context.Context, key string, data []byte, contentType string) {
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if _, err := s.archive.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		s.logger.WarnContext(ctx, "failed to archive artifact", "key", key, "error", err)
	}
}

// ArchivedFiles lists archived artifacts whose keys start with prefix.
func (s *Service) ArchivedFiles(ctx context.Context, prefix string) ([]blob.Info, error) {
	if s.archive == nil {
		return nil, errArchiveDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	infos, err := s.archive.List(ctx, prefix)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list archive", "prefix", prefix, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "archive could not be listed")
	}
	if infos == nil {
		infos = []blob.Info{}
	}
	return infos, nil
}

// OpenArchived returns one archived artifact. The caller closes the reader.
// The read is not bounded by the store timeout since the body streams after
// this returns.
func (s *Service) OpenArchived(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	if s.archive == nil {
		return blob.Info{}, nil, errArchiveDisabled
	}
	info, body, err := s.archive.Get(ctx, key)
	switch {
	case err == nil:
		return info, body, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return blob.Info{}, nil, dErrors.New(dErrors.CodeNotFound, "archived file not found")
	default:
		s.logger.ErrorContext(ctx, "failed to read archive", "key", key, "error", err)
		return blob.Info{}, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "archived file could not be read")
	}
}

// Health reports store reachability for stores that support it.
func (s *Service) Health(ctx context.Context) error {
	p, ok := s.store.(Pinger)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "record store unreachable")
	}
	return nil
}
