// Package profiles manages stored CV profiles and their version history.
package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/schemas"
	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/types"
)

const keyPrefix = "profiles/"

// Profile is a stored CV with its bookkeeping
type Profile struct {
	ID      string        `json:"id"`
	Owner   string        `json:"owner"`
	Version int           `json:"version"`
	Source  string        `json:"source"`
	Reason  string        `json:"reason,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
	Created time.Time     `json:"created"`
	Updated time.Time     `json:"updated"`
	Data    *types.CVData `json:"data"`
	Changes []Change      `json:"changes,omitempty"`
}

// Summary is the listing view of a profile
type Summary struct {
	ID      string    `json:"id"`
	Owner   string    `json:"owner"`
	Version int       `json:"version"`
	Updated time.Time `json:"updated"`
}

// NotFoundError is returned when no profile has the given id
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ID)
}

// Unwrap lets errors.Is match storage.ErrNotFound
func (e *NotFoundError) Unwrap() error {
	return storage.ErrNotFound
}

// Service stores profiles in a storage.Provider. The current version lives at
// profiles/<id>.json and every version at profiles/<id>/v<n>.json.
type Service struct {
	store  storage.Provider
	logger *zap.Logger
	now    func() time.Time
}

// NewService returns a Service over store
func NewService(store storage.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

func currentKey(id string) string { return keyPrefix + id + ".json" }

func versionKey(id string, n int) string {
	return keyPrefix + id + "/v" + strconv.Itoa(n) + ".json"
}

// Import parses a markdown or JSON file and stores it as a new profile
func (s *Service) Import(ctx context.Context, filePath string) (*Profile, []parsing.Warning, error) {
	res, err := parsing.LoadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import profile: %w", err)
	}
	p, err := s.Create(ctx, "", res.Data, "import:"+filepath.Base(filePath))
	if err != nil {
		return nil, res.Warnings, err
	}
	return p, res.Warnings, nil
}

// Create stores data as version 1 of a new profile. An empty owner falls
// back to the candidate's full name.
func (s *Service) Create(ctx context.Context, owner string, data *types.CVData, source string) (*Profile, error) {
	if data == nil {
		return nil, errors.New("profile data is required")
	}
	cv := *data
	cv.Normalize()
	if owner == "" {
		owner = cv.PersonalInfo.Name.Full
	}
	if source == "" {
		source = "manual"
	}

	now := s.now().UTC()
	p := &Profile{
		ID:      uuid.New().String(),
		Owner:   owner,
		Version: 1,
		Source:  source,
		Reason:  "Initial profile creation",
		Created: now,
		Updated: now,
		Data:    &cv,
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("created profile", zap.String("id", p.ID), zap.String("owner", p.Owner))
	return p, nil
}

// Update stores data as the next version of an existing profile
func (s *Service) Update(ctx context.Context, id string, data *types.CVData, reason string) (*Profile, error) {
	if data == nil {
		return nil, errors.New("profile data is required")
	}
	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cv := *data
	cv.Normalize()

	p := *prev
	p.Version = prev.Version + 1
	p.Reason = reason
	p.Updated = s.now().UTC()
	p.Data = &cv
	p.Changes = Diff(prev.Data, &cv)
	if err := s.save(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info("updated profile", zap.String("id", id), zap.Int("version", p.Version), zap.Int("changes", len(p.Changes)))
	return &p, nil
}

func (s *Service) save(ctx context.Context, p *Profile) error {
	cvJSON, err := json.Marshal(p.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal profile data: %w", err)
	}
	if err := schemas.ValidateCVData(cvJSON); err != nil {
		return fmt.Errorf("profile data failed validation: %w", err)
	}

	doc, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.store.Write(ctx, versionKey(p.ID, p.Version), doc); err != nil {
		return fmt.Errorf("failed to save profile version: %w", err)
	}
	if err := s.store.Write(ctx, currentKey(p.ID), doc); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Get returns the current version of a profile
func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	return s.load(ctx, id, currentKey(id))
}

// GetVersion returns a specific version of a profile
func (s *Service) GetVersion(ctx context.Context, id string, version int) (*Profile, error) {
	return s.load(ctx, id, versionKey(id, version))
}

func (s *Service) load(ctx context.Context, id, key string) (*Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &NotFoundError{ID: id}
	}
	data, err := s.store.Read(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", id, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	if p.Data == nil {
		p.Data = &types.CVData{}
	}
	p.Data.Normalize()
	return &p, nil
}

// Versions lists the stored version numbers of a profile in ascending order
func (s *Service) Versions(ctx context.Context, id string) ([]int, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	prefix := keyPrefix + id + "/v"
	var out []int
	for _, k := range keys {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(k, prefix), ".json"))
		if err == nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	sort.Ints(out)
	return out, nil
}

// List returns every profile's current version, sorted by owner then id
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	out := []Summary{}
	for _, k := range keys {
		rest := strings.TrimPrefix(k, keyPrefix)
		if rest == k || strings.Contains(rest, "/") || !strings.HasSuffix(rest, ".json") {
			continue
		}
		p, err := s.Get(ctx, strings.TrimSuffix(rest, ".json"))
		if err != nil {
			s.logger.Warn("skipping unreadable profile", zap.String("key", k), zap.Error(err))
			continue
		}
		out = append(out, Summary{ID: p.ID, Owner: p.Owner, Version: p.Version, Updated: p.Updated})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a profile and all of its versions
func (s *Service) Delete(ctx context.Context, id string) error {
	versions, err := s.Versions(ctx, id)
	if err != nil {
		return err
	}
	for _, n := range versions {
		if err := s.store.Delete(ctx, versionKey(id, n)); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete profile version %d: %w", n, err)
		}
	}
	if err := s.store.Delete(ctx, currentKey(id)); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	s.logger.Info("deleted profile", zap.String("id", id), zap.Int("versions", len(versions)))
	return nil
}
