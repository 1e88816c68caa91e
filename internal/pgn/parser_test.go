package pgn_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/pgn"
)

const najdorfPGN = `[Event "Rated Blitz game"]
[Result "1/2-1/2"]
[WhiteElo "1847"]
[BlackElo "?"]
[ECO "B90"]
[Opening "Sicilian Defense: Najdorf Variation"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 1/2-1/2`

func TestParseHeaders(t *testing.T) {
	h := pgn.ParseHeaders(najdorfPGN)

	assert.Equal(t, "B90", h["ECO"])
	assert.Equal(t, "1847", h["WhiteElo"])
	assert.Equal(t, "?", h["BlackElo"])
	assert.NotContains(t, h, "1. e4")
}

func TestParseHeaders_CRLFAndIndentation(t *testing.T) {
	h := pgn.ParseHeaders("  [ECO \"A45\"]\r\n[Result \"0-1\"]\r\n\r\n1. d4 Nf6 0-1")

	assert.Equal(t, "A45", h["ECO"])
	assert.Equal(t, "0-1", h["Result"])
}

func TestParseHeaders_IgnoresMalformedTags(t *testing.T) {
	h := pgn.ParseHeaders("[ECO C50]\n[Opening \"Italian Game\"] trailing\n[WhiteElo \"1500\"]")

	assert.Equal(t, pgn.Headers{"WhiteElo": "1500"}, h)
	assert.Empty(t, pgn.ParseHeaders(""))
	assert.Empty(t, pgn.ParseHeaders("1. e4 e5 2. Nf3 Nc6"))
}

func TestHeaders_Rating(t *testing.T) {
	tests := []struct {
		value    string
		expected *int
	}{
		{"1847", intPtr(1847)},
		{"0", intPtr(0)},
		{"4000", intPtr(4000)},
		{"?", nil},
		{"-", nil},
		{"", nil},
		{"-50", nil},
		{"4001", nil},
		{"99999999999999999999", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			h := pgn.Headers{"WhiteElo": tt.value}
			assert.Equal(t, tt.expected, h.Rating("WhiteElo"))
		})
	}
	assert.Nil(t, pgn.Headers{}.Rating("BlackElo"))
}

func TestHeaders_Result(t *testing.T) {
	tests := []struct {
		value    string
		expected models.Result
	}{
		{"1-0", models.ResultWhite},
		{"0-1", models.ResultBlack},
		{"1/2-1/2", models.ResultDraw},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r, err := pgn.Headers{"Result": tt.value}.Result()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}

	_, err := pgn.Headers{"Result": "*"}.Result()
	assert.Error(t, err)
	_, err = pgn.Headers{}.Result()
	assert.Error(t, err)
}

func TestHeaders_Opening(t *testing.T) {
	code, name := pgn.ParseHeaders(najdorfPGN).Opening()
	assert.Equal(t, "B90", code)
	assert.Equal(t, "Sicilian Defense: Najdorf Variation", name)

	code, name = pgn.Headers{
		"ECO":    "C50",
		"ECOUrl": "https://www.chess.com/openings/Italian-Game-Giuoco-Piano",
	}.Opening()
	assert.Equal(t, "C50", code)
	assert.Equal(t, "Italian Game Giuoco Piano", name)

	code, name = pgn.Headers{}.Opening()
	assert.Empty(t, code)
	assert.Empty(t, name)
}

func TestExtractGameID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.chess.com/game/live/424242", "424242"},
		{"https://www.chess.com/game/daily/7", "7"},
		{"https://www.chess.com/game/live/424242/analysis", "424242"},
		{"https://www.chess.com/game/live/alice/424242", "https://www.chess.com/game/live/alice/424242"},
		{"https://www.chess.com/game/live", "https://www.chess.com/game/live"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, pgn.ExtractGameID(tt.url))
		})
	}
}

func intPtr(v int) *int { return &v }

func TestDetectOpening(t *testing.T) {
	pgnText := `[Event "Live Chess"]
[Result "1-0"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 1-0`

	code, name, ok := pgn.DetectOpening(pgnText)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(code, "B"), "code %s should be a Sicilian ECO", code)
	assert.Contains(t, name, "Sicilian")
}

func TestDetectOpening_Blank(t *testing.T) {
	_, _, ok := pgn.DetectOpening("")
	assert.False(t, ok)

	_, _, ok = pgn.DetectOpening("   \n")
	assert.False(t, ok)
}

func TestOpeningNameFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.chess.com/openings/Sicilian-Defense-Closed", "Sicilian Defense Closed"},
		{"https://www.chess.com/openings/Italian-Game/", "Italian Game"},
		{"https://www.chess.com/game/live/123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, pgn.OpeningNameFromURL(tt.url))
		})
	}
}
