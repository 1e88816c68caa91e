package pgn

import (
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var (
	bookOnce sync.Once
	book     *opening.BookECO
)

func ecoBook() *opening.BookECO {
	bookOnce.Do(func() {
		book = opening.NewBookECO()
	})
	return book
}

// DetectOpening replays the movetext of a PGN and looks the line up in the ECO
// book. ok is false when the PGN cannot be parsed or no book line matches.
func DetectOpening(pgnText string) (code, name string, ok bool) {
	if strings.TrimSpace(pgnText) == "" {
		return "", "", false
	}
	pgnOpt, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return "", "", false
	}
	game := chess.NewGame(pgnOpt)

	found := ecoBook().Find(game.Moves())
	if found == nil {
		return "", "", false
	}
	return found.Code(), found.Title(), true
}

// OpeningNameFromURL turns a chess.com ECOUrl such as
// https://www.chess.com/openings/Sicilian-Defense-Closed into "Sicilian Defense Closed".
func OpeningNameFromURL(ecoURL string) string {
	if ecoURL == "" {
		return ""
	}
	u, err := url.Parse(ecoURL)
	if err != nil || !strings.Contains(u.Path, "/openings/") {
		return ""
	}
	slug := path.Base(strings.TrimSuffix(u.Path, "/"))
	if slug == "." || slug == "/" || slug == "openings" {
		return ""
	}
	return strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), " ")
}
