package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/privatebanking/banking-system/internal/api/metrics"
	"github.com/privatebanking/banking-system/internal/core/domain"
	"github.com/privatebanking/banking-system/internal/core/ports"
)

// ResourceService is the generic validate, execute, reload pipeline behind
// every mutating endpoint. It is instantiated once and parameterised per
// call by the kind's Schema; no per-kind code exists above the schema
// registry.
//
// The three steps are deliberately not wrapped in a cross-step transaction:
// a record that vanishes between execute and reload surfaces as a
// PersistenceError rather than being rolled back.
type ResourceService struct {
	repo  ports.ResourceRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewResourceService(repo ports.ResourceRepository, audit ports.AuditRecorder, log zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, audit: audit, log: log}
}

// Create validates the payload against the kind's required-on-create set,
// inserts the record keyed by the supplied primary key, and re-reads it to
// confirm persistence before responding.
func (s *ResourceService) Create(ctx context.Context, schema domain.Schema, payload domain.Record, actor string) (domain.Record, error) {
	if err := validateRequired(schema, payload, schema.RequiredOnCreate); err != nil {
		return nil, err
	}

	// Uniqueness of the primary key is not pre-checked; a conflicting insert
	// is a storage failure like any other.
	if err := s.repo.Insert(ctx, schema, payload); err != nil {
		return nil, &domain.PersistenceError{Msg: fmt.Sprintf("failed to add the %s", schema.Singular), Err: err}
	}

	reloaded, err := s.repo.Get(ctx, schema, payload[schema.PrimaryKey])
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			metrics.ReloadFailuresTotal.WithLabelValues(string(schema.Kind)).Inc()
			s.log.Error().
				Str("kind", string(schema.Kind)).
				Any("key", payload[schema.PrimaryKey]).
				Msg("record vanished after insert")
			return nil, &domain.PersistenceError{Msg: "failed to retrieve the added record"}
		}
		return nil, err
	}

	metrics.RecordMutationsTotal.WithLabelValues(string(schema.Kind), "create").Inc()
	s.recordAudit(schema, "create", fmt.Sprint(payload[schema.PrimaryKey]), actor)
	return reloaded, nil
}

// Update validates the payload against the kind's required-on-update set,
// writes the provided non-key fields, and re-reads the record. A reload miss
// is reported as not-found: an update of a non-existent key and an update
// that vanished are indistinguishable, and are reported identically.
func (s *ResourceService) Update(ctx context.Context, schema domain.Schema, key string, payload domain.Record, actor string) (domain.Record, error) {
	pk, err := parseKey(schema, key)
	if err != nil {
		return nil, err
	}
	if err := validateRequired(schema, payload, schema.RequiredOnUpdate); err != nil {
		return nil, err
	}

	// The primary key is immutable under this contract; drop it from the
	// field set if a caller echoed it in the body.
	fields := make(domain.Record, len(payload))
	for name, value := range payload {
		if name == schema.PrimaryKey {
			continue
		}
		fields[name] = value
	}

	if err := s.repo.Update(ctx, schema, pk, fields); err != nil {
		return nil, &domain.PersistenceError{Msg: fmt.Sprintf("failed to update the %s", schema.Singular), Err: err}
	}

	reloaded, err := s.repo.Get(ctx, schema, pk)
	if err != nil {
		return nil, err
	}

	metrics.RecordMutationsTotal.WithLabelValues(string(schema.Kind), "update").Inc()
	s.recordAudit(schema, "update", key, actor)
	return reloaded, nil
}

// Delete reads the record before deleting so a missing key fails with
// not-found before any mutation is attempted.
func (s *ResourceService) Delete(ctx context.Context, schema domain.Schema, key string, actor string) error {
	pk, err := parseKey(schema, key)
	if err != nil {
		return err
	}

	if _, err := s.repo.Get(ctx, schema, pk); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, schema, pk); err != nil {
		return &domain.PersistenceError{Msg: fmt.Sprintf("failed to delete the %s", schema.Singular), Err: err}
	}

	metrics.RecordMutationsTotal.WithLabelValues(string(schema.Kind), "delete").Inc()
	s.recordAudit(schema, "delete", key, actor)
	return nil
}

// List returns every record of the kind. An empty result set is reported as
// an error, not an empty list; see domain.NoRecordsError.
func (s *ResourceService) List(ctx context.Context, schema domain.Schema) ([]domain.Record, error) {
	records, err := s.repo.List(ctx, schema)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &domain.NoRecordsError{Kind: schema.Kind}
	}
	return records, nil
}

func (s *ResourceService) recordAudit(schema domain.Schema, action, key, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Actor:      actor,
		Action:     action,
		Kind:       schema.Kind,
		RecordKey:  key,
		OccurredAt: time.Now().UTC(),
	})
}

// validateRequired enforces the presence of each required field, in schema
// order, using the empty-is-missing policy of domain.IsMissing.
func validateRequired(schema domain.Schema, payload domain.Record, required []string) error {
	var missing []string
	for _, name := range required {
		if domain.IsMissing(payload[name]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(string(schema.Kind)).Inc()
		return &domain.ValidationError{Kind: schema.Kind, Missing: missing}
	}
	return nil
}

// parseKey coerces the path parameter to the primary key's declared type. A
// key that cannot be parsed can never match a record, so it is reported as
// not-found.
func parseKey(schema domain.Schema, key string) (any, error) {
	field, _ := schema.FieldByName(schema.PrimaryKey)
	if field.Type != domain.FieldInt {
		return key, nil
	}
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return nil, &domain.NotFoundError{Resource: schema.Singular, Key: key}
	}
	return id, nil
}
