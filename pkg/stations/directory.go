package stations

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

//go:embed station_codes.csv
var defaultStationCodes []byte

var ErrInvalidFormat = errors.New("station code must be exactly 3 characters")
var ErrNotFound = errors.New("station code not found")

const CodeLength = 3

type stationRecord struct {
	StationName string `csv:"Station Name"`
	CRSCode     string `csv:"CRS Code"`
}

// Directory maps three letter CRS codes to full station names. It is read only once loaded.
type Directory struct {
	names map[string]string
}

// Load reads a station table with "Station Name" and "CRS Code" header columns.
// Rows with an empty name are skipped and a repeated code keeps the last row seen.
func Load(source io.Reader) (*Directory, error) {
	contents, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	contents = bytes.TrimPrefix(contents, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(contents))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []*stationRecord
	if err := gocsv.UnmarshalCSV(reader, &records); err != nil {
		return nil, fmt.Errorf("failed to parse station table: %w", err)
	}

	directory := &Directory{
		names: map[string]string{},
	}

	for _, record := range records {
		name := strings.TrimSpace(record.StationName)
		code := strings.TrimSpace(record.CRSCode)

		if name == "" {
			continue
		}

		directory.names[code] = name
	}

	log.Debug().Int("stations", len(directory.names)).Msg("Loaded station directory")

	return directory, nil
}

func LoadFile(path string) (*Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// LoadDefault loads the station table bundled with the binary
func LoadDefault() (*Directory, error) {
	return Load(bytes.NewReader(defaultStationCodes))
}

// Open loads the table at path, or the bundled table when path is empty
func Open(path string) (*Directory, error) {
	if path == "" {
		return LoadDefault()
	}

	return LoadFile(path)
}

func (d *Directory) Lookup(code string) (string, error) {
	name, ok := d.names[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, code)
	}

	return name, nil
}

func (d *Directory) Validate(code string) error {
	if len(code) != CodeLength {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}

	_, err := d.Lookup(code)
	return err
}

func (d *Directory) Len() int {
	return len(d.names)
}

// Codes returns every known code in alphabetical order
func (d *Directory) Codes() []string {
	codes := make([]string, 0, len(d.names))
	for code := range d.names {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	return codes
}
