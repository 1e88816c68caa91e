package chesscom_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/openingroi/internal/chesscom"
)

func TestClient_FetchArchives(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player/hikaru/games/archives", r.URL.Path)
		fmt.Fprintf(w, `{"archives":["%[1]s/player/hikaru/games/2024/01","%[1]s/player/hikaru/games/2024/02"]}`, srv.URL)
	}))
	defer srv.Close()

	client := chesscom.New(chesscom.WithBaseURL(srv.URL+"/"), chesscom.WithTimeout(time.Second))
	archives, err := client.FetchArchives(context.Background(), "Hikaru")
	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/player/hikaru/games/2024/01",
		srv.URL + "/player/hikaru/games/2024/02",
	}, archives)
}

func TestClient_FetchMonthly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"games":[{
			"url":"https://www.chess.com/game/live/111",
			"pgn":"[Result \"1-0\"]",
			"time_class":"blitz",
			"end_time":1700000000,
			"white":{"username":"a","rating":1500,"result":"win"},
			"black":{"username":"b","rating":1480,"result":"resigned"}
		}]}`)
	}))
	defer srv.Close()

	client := chesscom.New(chesscom.WithBaseURL(srv.URL))
	games, err := client.FetchMonthly(context.Background(), srv.URL+"/player/a/games/2024/01")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 1500, games[0].White.Rating)
	assert.Equal(t, "resigned", games[0].Black.Result)
	assert.Equal(t, int64(1700000000), games[0].EndTime)
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := chesscom.New(chesscom.WithBaseURL(srv.URL))
	_, err := client.FetchArchives(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := chesscom.New(chesscom.WithBaseURL(srv.URL), chesscom.WithTimeout(20*time.Millisecond))
	_, err := client.FetchMonthly(context.Background(), srv.URL)
	assert.Error(t, err)
}
