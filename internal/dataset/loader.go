package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hayatotakai/oilprops/internal/fluids"
	"github.com/hayatotakai/oilprops/pkg/models"
)

// ErrLoadFailure indicates the dataset source was unreachable or unparsable
var ErrLoadFailure = errors.New("dataset load failure")

// Source produces an immutable dataset snapshot. Queries never touch the
// source directly; the snapshot is loaded explicitly up front and injected
// into the property service.
type Source interface {
	Load(ctx context.Context) (*fluids.Dataset, error)
}

// fluidRecordWire matches the published fluid_data.json layout
type fluidRecordWire struct {
	DensityAt15C    float64                 `json:"DensityAt15C"`
	ViscosityPoints []models.ViscosityPoint `json:"Kinematic Viscosity Limits"`
}

// Decode parses the fluid dataset wire format. Records with non-positive
// density are skipped with a warning rather than failing the whole load.
func Decode(r io.Reader) (*fluids.Dataset, error) {
	var wire map[string]fluidRecordWire
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLoadFailure, err)
	}

	records := make([]models.FluidRecord, 0, len(wire))
	for name, w := range wire {
		if w.DensityAt15C <= 0 {
			log.Warn().
				Str("fluid", name).
				Float64("density", w.DensityAt15C).
				Msg("Skipping fluid record with non-positive density")
			continue
		}
		records = append(records, models.FluidRecord{
			Name:            name,
			DensityAt15C:    w.DensityAt15C,
			ViscosityPoints: w.ViscosityPoints,
		})
	}

	return fluids.NewDataset(records), nil
}

// HTTPSource fetches the dataset from a URL
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source that fetches the dataset from the given URL
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches and decodes the dataset
func (s *HTTPSource) Load(ctx context.Context) (*fluids.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrLoadFailure, s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: status %d", ErrLoadFailure, s.url, resp.StatusCode)
	}

	ds, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", s.url).Int("fluids", ds.Len()).Msg("Fluid dataset loaded")
	return ds, nil
}

// FileSource reads the dataset from a local JSON file
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by a local file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the dataset file
func (s *FileSource) Load(ctx context.Context) (*fluids.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrLoadFailure, s.path, err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", s.path).Int("fluids", ds.Len()).Msg("Fluid dataset loaded")
	return ds, nil
}

// CachedSource wraps a Source with a single-flight guard: the underlying
// source is consulted at most once per process, concurrent first loads cannot
// double-fetch, and a failed load stays failed for subsequent calls instead
// of retrying per query.
type CachedSource struct {
	src  Source
	once sync.Once
	ds   *fluids.Dataset
	err  error
}

// NewCachedSource wraps src with load-once semantics
func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{src: src}
}

// Load returns the cached snapshot, loading it on first call
func (c *CachedSource) Load(ctx context.Context) (*fluids.Dataset, error) {
	c.once.Do(func() {
		c.ds, c.err = c.src.Load(ctx)
		if c.err != nil {
			log.Error().Err(c.err).Msg("Fluid dataset load failed, queries will keep failing until restart")
		}
	})
	return c.ds, c.err
}
