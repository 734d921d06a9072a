package uust

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchWeek(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"week":      r.PostFormValue("week"),
			"group_id":  r.PostFormValue("group_id"),
			"funct":     r.PostFormValue("funct"),
			"show_temp": r.PostFormValue("show_temp"),
		}
		w.Write([]byte("$('#1_1_group').append('Ответ сервера');"))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{Url: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	body, err := client.FetchWeek(ctx, 10990, 7)
	require.NoError(t, err)
	require.Contains(t, body, "append")

	require.Equal(t, map[string]string{
		"week":      "7",
		"group_id":  "10990",
		"funct":     "group",
		"show_temp": "0",
	}, gotForm)
}

func TestFetchWeekErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{Url: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := client.FetchWeek(ctx, 10990, 1)
	require.Error(t, err)
}

func TestFetchWeekTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(ClientOptions{Url: server.URL, Timeout: time.Millisecond * 100})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := client.FetchWeek(ctx, 10990, 1)
	require.Error(t, err)
}
