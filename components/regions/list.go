package regions

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-formation/pkg/options"
)

//go:embed data/*.txt
var dataFS embed.FS

// Set names one of the embedded region lists.
type Set string

const (
	USStates    Set = "states"
	CAProvinces Set = "provinces"
	Countries   Set = "countries"
)

var setFiles = map[Set]string{
	USStates:    "data/us_states.txt",
	CAProvinces: "data/ca_provinces.txt",
	Countries:   "data/countries.txt",
}

// Region is one entry of a list. Countries carry no code.
type Region struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

type loaded struct {
	once    sync.Once
	regions []Region
	err     error
}

var cache = map[Set]*loaded{
	USStates:    {},
	CAProvinces: {},
	Countries:   {},
}

// Default returns a copy of the embedded list for set, in file order.
func Default(set Set) ([]Region, error) {
	entry, ok := cache[set]
	if !ok {
		return nil, fmt.Errorf("regions: unknown set %q", set)
	}
	entry.once.Do(func() {
		f, err := dataFS.Open(setFiles[set])
		if err != nil {
			entry.err = err
			return
		}
		defer func() { _ = f.Close() }()

		entry.regions, entry.err = Load(f)
	})

	if entry.err != nil {
		return nil, entry.err
	}
	return append([]Region{}, entry.regions...), nil
}

// Load parses one region per line, either "CODE|Name" or "Name". Blank
// lines, comments and duplicates are skipped; order is kept.
func Load(r io.Reader) ([]Region, error) {
	if r == nil {
		return nil, fmt.Errorf("regions: missing reader")
	}

	scanner := bufio.NewScanner(r)
	regions := make([]Region, 0, 256)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		region := Region{Name: line}
		if code, name, ok := strings.Cut(line, "|"); ok {
			region = Region{Code: strings.TrimSpace(code), Name: strings.TrimSpace(name)}
		}
		if region.Name == "" {
			continue
		}
		key := region.Code + "|" + region.Name
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		regions = append(regions, region)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return regions, nil
}

// ToOptions converts regions into an option list. With useCode the code is the
// option value; otherwise, and for regions without a code, the name is.
func ToOptions(regions []Region, useCode bool) options.List {
	out := make(options.List, 0, len(regions))
	for _, region := range regions {
		out = append(out, region.Option(useCode))
	}
	return out
}

// Option converts one region into a select option.
func (r Region) Option(useCode bool) options.Option {
	if useCode && r.Code != "" {
		return options.Pair(r.Code, r.Name)
	}
	return options.Pair(r.Name, r.Name)
}

// States lists the US states and territories.
func States(useCode bool) (options.List, error) {
	return setOptions(USStates, useCode)
}

// Provinces lists the Canadian provinces and territories.
func Provinces(useCode bool) (options.List, error) {
	return setOptions(CAProvinces, useCode)
}

// CountryList lists the countries, Canada and the United States first.
func CountryList() (options.List, error) {
	return setOptions(Countries, false)
}

func setOptions(set Set, useCode bool) (options.List, error) {
	regions, err := Default(set)
	if err != nil {
		return nil, err
	}
	return ToOptions(regions, useCode), nil
}
