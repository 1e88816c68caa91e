package pgn

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vytor/openingroi/internal/models"
)

var tagRe = regexp.MustCompile(`^\[(\w+)\s+"([^"]*)"\]$`)

// Headers holds the tag pairs of a PGN.
type Headers map[string]string

// ParseHeaders reads the tag section of a PGN. Lines that are not well formed
// tag pairs are ignored.
func ParseHeaders(text string) Headers {
	h := Headers{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		if m := tagRe.FindStringSubmatch(line); m != nil {
			h[m[1]] = strings.TrimSpace(m[2])
		}
	}
	return h
}

// Rating reads an Elo tag such as WhiteElo. Unknown ("?", "-") or out-of-range
// values give nil.
func (h Headers) Rating(tag string) *int {
	v, err := strconv.Atoi(h[tag])
	if err != nil || !models.ValidRating(v) {
		return nil
	}
	return &v
}

// Result reads the Result tag. An unfinished game ("*") is an error.
func (h Headers) Result() (models.Result, error) {
	return models.ParseResult(h["Result"])
}

// Opening returns the ECO tag and the opening name, taken from the Opening tag
// or derived from ECOUrl.
func (h Headers) Opening() (code, name string) {
	code = h["ECO"]
	name = h["Opening"]
	if name == "" {
		name = OpeningNameFromURL(h["ECOUrl"])
	}
	return code, name
}

var gameIDRe = regexp.MustCompile(`/game/[^/]+/([0-9]+)`)

// ExtractGameID returns the numeric id of a chess.com game URL, or the URL itself
// when it has none.
func ExtractGameID(url string) string {
	if m := gameIDRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return url
}
