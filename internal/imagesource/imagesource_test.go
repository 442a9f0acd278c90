package imagesource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

type fakeSearcher struct {
	urls  []string
	err   error
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, count int) ([]string, error) {
	f.calls++
	return f.urls, f.err
}

func TestResolverSearch_FallbackOnError(t *testing.T) {
	r := NewResolver(&fakeSearcher{err: errors.New("network down")})

	res := r.Search(context.Background(), "x", 5)
	if !res.Fallback {
		t.Error("expected Fallback to be set")
	}
	if res.Cause == nil {
		t.Error("expected Cause to be recorded")
	}
	if !reflect.DeepEqual(res.URLs, fallbackURLs) {
		t.Errorf("URLs = %v, want the fallback list", res.URLs)
	}
	if len(res.URLs) != 5 {
		t.Errorf("got %d URLs, want 5", len(res.URLs))
	}
}

func TestResolverSearch_NilSearcher(t *testing.T) {
	res := NewResolver(nil).Search(context.Background(), "x", 3)
	if !res.Fallback || !errors.Is(res.Cause, ErrNoAccessKey) {
		t.Errorf("got %+v, want fallback with ErrNoAccessKey", res)
	}
}

func TestResolverSearch_PassesThroughResults(t *testing.T) {
	want := []string{"https://a/1.jpg", "https://a/2.jpg"}
	r := NewResolver(&fakeSearcher{urls: want})

	res := r.Search(context.Background(), "cats", 2)
	if res.Fallback || res.Cause != nil {
		t.Errorf("unexpected fallback: %+v", res)
	}
	if !reflect.DeepEqual(res.URLs, want) {
		t.Errorf("URLs = %v, want %v", res.URLs, want)
	}
}

func TestFallbackURLs_ReturnsCopy(t *testing.T) {
	a := FallbackURLs()
	a[0] = "mutated"
	if FallbackURLs()[0] == "mutated" {
		t.Error("FallbackURLs exposes the package slice")
	}
}

func TestUnsplashSearcher(t *testing.T) {
	var gotAuth, gotQuery, gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotPerPage = r.URL.Query().Get("per_page")
		io.WriteString(w, `{"total":2,"results":[{"urls":{"regular":"https://img/1"}},{"urls":{"regular":"https://img/2"}}]}`)
	}))
	defer srv.Close()

	s := NewUnsplashSearcher(UnsplashOptions{Endpoint: srv.URL, AccessKey: "abc", HTTPClient: srv.Client()})
	urls, err := s.Search(context.Background(), "tech desk", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !reflect.DeepEqual(urls, []string{"https://img/1", "https://img/2"}) {
		t.Errorf("urls = %v", urls)
	}
	if gotAuth != "Client-ID abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery != "tech desk" || gotPerPage != "2" {
		t.Errorf("query = %q per_page = %q", gotQuery, gotPerPage)
	}
}

func TestUnsplashSearcher_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"missing results", http.StatusOK, `{"errors":["OAuth error"]}`},
		{"malformed json", http.StatusOK, `{"results":`},
		{"server error", http.StatusInternalServerError, `boom`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			s := NewUnsplashSearcher(UnsplashOptions{Endpoint: srv.URL, AccessKey: "abc", HTTPClient: srv.Client()})
			if _, err := s.Search(context.Background(), "q", 5); err == nil {
				t.Fatal("expected an error")
			}

			res := NewResolver(s).Search(context.Background(), "q", 5)
			if !res.Fallback || len(res.URLs) != 5 {
				t.Errorf("resolver result = %+v, want 5 fallback URLs", res)
			}
		})
	}
}

func TestUnsplashSearcher_NoKey(t *testing.T) {
	s := NewUnsplashSearcher(UnsplashOptions{})
	if _, err := s.Search(context.Background(), "q", 5); !errors.Is(err, ErrNoAccessKey) {
		t.Errorf("err = %v, want ErrNoAccessKey", err)
	}
}

func TestDownloaderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/small":
			io.WriteString(w, "pixels")
		case "/big":
			io.WriteString(w, strings.Repeat("x", 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := NewDownloader(srv.Client(), 32)
	data, err := d.Fetch(context.Background(), srv.URL+"/small")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("data = %q", data)
	}

	for _, path := range []string{"/big", "/missing"} {
		if _, err := d.Fetch(context.Background(), srv.URL+path); err == nil {
			t.Errorf("Fetch(%s): expected error", path)
		}
	}
}

func TestDownloaderFetch_RejectsScheme(t *testing.T) {
	d := NewDownloader(nil, 0)
	for _, u := range []string{"file:///etc/passwd", "ftp://host/x.png", "::bad"} {
		if _, err := d.Fetch(context.Background(), u); err == nil {
			t.Errorf("Fetch(%q): expected error", u)
		}
	}
}
