package gazetteer

import (
	"encoding/csv"
	"errors"
	"event-naming-service/internal/domain"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// RequiredColumns lists the header columns every gazetteer file must carry.
var RequiredColumns = []string{"name", "state", "country", "latitude", "longitude", "population"}

// row is decoded verbatim; typed parsing happens in toLocation so each
// failure can name its field.
type row struct {
	Name       string `csv:"name"`
	State      string `csv:"state"`
	Country    string `csv:"country"`
	Latitude   string `csv:"latitude"`
	Longitude  string `csv:"longitude"`
	Population string `csv:"population"`
}

// LoadStats summarises a load. Skipped rows are also logged as they occur.
type LoadStats struct {
	Rows       int
	Loaded     int
	BelowFloor int
	Skipped    []*domain.RowValidationError
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, minPopulation int64, logger *zap.Logger) (domain.Gazetteer, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		reason := "cannot open file"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "file does not exist"
		}
		return nil, LoadStats{}, &domain.GazetteerError{Path: path, Reason: reason, Err: err}
	}
	defer f.Close()

	return Load(f, path, minPopulation, logger)
}

// Load parses a comma-separated gazetteer.
//
// Rows that fail validation are skipped and reported; rows with population
// below minPopulation are dropped. Load fails only when the input cannot be
// read, the header lacks a required column, or nothing usable remains.
// source names the input in errors and logs.
func Load(r io.Reader, source string, minPopulation int64, logger *zap.Logger) (domain.Gazetteer, LoadStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("gazetteer", source))

	var stats LoadStats

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, &domain.GazetteerError{Path: source, Reason: "file is empty"}
	}
	if err != nil {
		return nil, stats, &domain.GazetteerError{Path: source, Reason: "cannot read header", Err: err}
	}

	header = normalizeHeader(header)
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, stats, &domain.GazetteerError{
			Path:   source,
			Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, stats, &domain.GazetteerError{Path: source, Reason: "cannot read header", Err: err}
	}

	skip := func(rerr *domain.RowValidationError) {
		stats.Skipped = append(stats.Skipped, rerr)
		log.Warn("gazetteer row skipped",
			zap.Int("line", rerr.Line),
			zap.String("field", rerr.Field),
			zap.String("value", rerr.Value),
			zap.Error(rerr.Err),
		)
	}

	gaz := make(domain.Gazetteer, 0, 256)
	for {
		var rec row
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, stats, &domain.GazetteerError{Path: source, Reason: "cannot read rows", Err: err}
			}
			stats.Rows++
			skip(&domain.RowValidationError{Line: pe.StartLine, Field: "record", Err: pe.Err})
			continue
		}
		stats.Rows++

		line, _ := cr.FieldPos(0)
		loc, rerr := toLocation(rec, line)
		if rerr != nil {
			skip(rerr)
			continue
		}

		if loc.Population < minPopulation {
			stats.BelowFloor++
			continue
		}
		gaz = append(gaz, loc)
	}

	stats.Loaded = len(gaz)
	if len(gaz) == 0 {
		reason := fmt.Sprintf("no usable rows (%d read, %d invalid, %d below population %d)",
			stats.Rows, len(stats.Skipped), stats.BelowFloor, minPopulation)
		return nil, stats, &domain.GazetteerError{Path: source, Reason: reason}
	}

	log.Info("gazetteer loaded",
		zap.Int("locations", stats.Loaded),
		zap.Int("skipped", len(stats.Skipped)),
		zap.Int("below_population", stats.BelowFloor),
		zap.Int64("min_population", minPopulation),
	)

	return gaz, stats, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

func missingColumns(header []string) []string {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

var (
	errEmpty       = errors.New("must not be empty")
	errNotNumber   = errors.New("not a decimal number")
	errNotInteger  = errors.New("not an integer")
	errNegativePop = errors.New("must not be negative")
)

// clean trims a text field and composes it to NFC so that equal names
// compare equal regardless of how the file encoded accents.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func toLocation(rec row, line int) (domain.ReferenceLocation, *domain.RowValidationError) {
	fail := func(field, value string, err error) (domain.ReferenceLocation, *domain.RowValidationError) {
		return domain.ReferenceLocation{}, &domain.RowValidationError{Line: line, Field: field, Value: value, Err: err}
	}

	name := clean(rec.Name)
	if name == "" {
		return fail("name", rec.Name, errEmpty)
	}
	country := clean(rec.Country)
	if country == "" {
		return fail("country", rec.Country, errEmpty)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(rec.Latitude), 64)
	if err != nil {
		return fail("latitude", rec.Latitude, errNotNumber)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec.Longitude), 64)
	if err != nil {
		return fail("longitude", rec.Longitude, errNotNumber)
	}
	coords, err := domain.NewCoordinates(lat, lon)
	if err != nil {
		var ce *domain.CoordinateError
		if errors.As(err, &ce) && ce.Field == "longitude" {
			return fail("longitude", rec.Longitude, err)
		}
		return fail("latitude", rec.Latitude, err)
	}

	pop, err := strconv.ParseInt(strings.TrimSpace(rec.Population), 10, 64)
	if err != nil {
		return fail("population", rec.Population, errNotInteger)
	}
	if pop < 0 {
		return fail("population", rec.Population, errNegativePop)
	}

	return domain.ReferenceLocation{
		Name:        name,
		State:       clean(rec.State),
		Country:     country,
		Coordinates: coords,
		Population:  pop,
	}, nil
}
