package reconcile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dweagle/extras/internal/fileutil"
	"github.com/dweagle/extras/internal/media"
)

// Document sections as they appear in the file.
const (
	sectionMovies      = "movies"
	sectionSeries      = "series"
	sectionCollections = "collections"
)

// Item keys owned by this package. Anything else is carried through untouched.
const (
	keyTitle          = "title"
	keyYear           = "year"
	keyMissingSeasons = "missing_seasons"
	keyTMDBID         = "tmdbId"
	keyTMDBLink       = "tmdbLink"
	keyTVDBID         = "tvdbId"
	keyTVDBLink       = "tvdbLink"
	keyMatchSource    = "matchSource"
)

// Item is one entry of the input document.
type Item struct {
	Title          string
	Year           int
	MissingSeasons []any

	TMDBID      int64
	TMDBLink    string
	TVDBID      int64
	TVDBLink    string
	MatchSource string

	Extra map[string]any
}

// Document is the reconciliation input and output.
type Document struct {
	Movies      []*Item
	Series      []*Item
	Collections []*Item
	Extra       map[string]any
}

// Section returns the items for a media type.
func (d *Document) Section(t media.Type) []*Item {
	switch t {
	case media.TypeMovie:
		return d.Movies
	case media.TypeSeries:
		return d.Series
	case media.TypeCollection:
		return d.Collections
	default:
		return nil
	}
}

// Matched reports whether the item carries a resolved identity.
func (i *Item) Matched() bool { return i.TMDBID > 0 }

// ClearMatch drops any identity left over from a previous run.
func (i *Item) ClearMatch() {
	i.TMDBID, i.TVDBID = 0, 0
	i.TMDBLink, i.TVDBLink, i.MatchSource = "", "", ""
}

// ApplyMatch records a match and its links. Collections never carry TVDB data.
func (i *Item) ApplyMatch(t media.Type, res *media.MatchResult) {
	i.ClearMatch()
	if res == nil || res.PrimaryID <= 0 {
		return
	}
	i.TMDBID = res.PrimaryID
	i.TMDBLink = media.TMDBLink(t, res.PrimaryID)
	i.MatchSource = string(res.Source)
	if t.IsCollection() {
		return
	}
	i.TVDBID = res.SecondaryID
	i.TVDBLink = media.TVDBLink(res.SecondaryID)
}

// LoadDocument reads a JSON or YAML document; the format follows the file
// extension (.yaml/.yml, anything else is JSON).
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input document: %w", err)
	}
	var raw map[string]any
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse input document %s: %w", path, err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse input document %s: %w", path, err)
		}
	}
	return documentFromMap(raw)
}

// SaveDocument writes doc atomically in the format implied by path.
func SaveDocument(path string, doc *Document) error {
	if doc == nil {
		return errors.New("save document: nil document")
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(doc.toMap())
	} else {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc.toMap())
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode output document: %w", err)
	}
	if err := fileutil.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write output document %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func documentFromMap(raw map[string]any) (*Document, error) {
	doc := &Document{Extra: make(map[string]any)}
	for key, value := range raw {
		var target *[]*Item
		switch key {
		case sectionMovies:
			target = &doc.Movies
		case sectionSeries:
			target = &doc.Series
		case sectionCollections:
			target = &doc.Collections
		default:
			doc.Extra[key] = value
			continue
		}
		if value == nil {
			continue
		}
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected a list, got %T", key, value)
		}
		items := make([]*Item, 0, len(list))
		for idx, entry := range list {
			fields, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: expected an object, got %T", key, idx, entry)
			}
			item, err := itemFromMap(fields)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", key, idx, err)
			}
			items = append(items, item)
		}
		*target = items
	}
	return doc, nil
}

func itemFromMap(fields map[string]any) (*Item, error) {
	item := &Item{Extra: make(map[string]any)}
	for key, value := range fields {
		switch key {
		case keyTitle:
			if value != nil {
				item.Title = strings.TrimSpace(fmt.Sprint(value))
			}
		case keyYear:
			year, err := parseYear(value)
			if err != nil {
				return nil, err
			}
			item.Year = year
		case keyMissingSeasons:
			if list, ok := value.([]any); ok {
				item.MissingSeasons = list
			}
		case keyTMDBID:
			item.TMDBID = parseID(value)
		case keyTVDBID:
			item.TVDBID = parseID(value)
		case keyTMDBLink:
			item.TMDBLink, _ = value.(string)
		case keyTVDBLink:
			item.TVDBLink, _ = value.(string)
		case keyMatchSource:
			item.MatchSource, _ = value.(string)
		default:
			item.Extra[key] = value
		}
	}
	if item.Title == "" {
		return nil, errors.New("title is required")
	}
	return item, nil
}

// parseYear accepts a number, a numeric string, an empty string or null.
func parseYear(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return max(v, 0), nil
	case int64:
		return max(int(v), 0), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("year: %v is not a whole number", v)
		}
		return max(int(v), 0), nil
	case json.Number:
		return parseYear(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return max(n, 0), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return parseYear(f)
		}
		return 0, fmt.Errorf("year: %q is not a number", v)
	default:
		return 0, fmt.Errorf("year: unsupported value of type %T", value)
	}
}

func parseID(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	default:
		return 0
	}
}

func (d *Document) toMap() map[string]any {
	out := make(map[string]any, len(d.Extra)+3)
	for k, v := range d.Extra {
		out[k] = v
	}
	out[sectionMovies] = itemsToMaps(d.Movies)
	out[sectionSeries] = itemsToMaps(d.Series)
	out[sectionCollections] = itemsToMaps(d.Collections)
	return out
}

func itemsToMaps(items []*Item) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.toMap())
	}
	return out
}

func (i *Item) toMap() map[string]any {
	out := make(map[string]any, len(i.Extra)+8)
	for k, v := range i.Extra {
		out[k] = v
	}
	out[keyTitle] = i.Title
	if i.Year > 0 {
		out[keyYear] = i.Year
	} else {
		out[keyYear] = nil
	}
	if i.MissingSeasons != nil {
		out[keyMissingSeasons] = i.MissingSeasons
	}
	if i.TMDBID > 0 {
		out[keyTMDBID] = i.TMDBID
		out[keyTMDBLink] = i.TMDBLink
		out[keyMatchSource] = i.MatchSource
	}
	if i.TVDBID > 0 {
		out[keyTVDBID] = i.TVDBID
		out[keyTVDBLink] = i.TVDBLink
	}
	return out
}
